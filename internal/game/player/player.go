package player

import (
	"errors"

	"trucogauderio/internal/game/card"
)

// HandSize é o tamanho fixo da mão em cada distribuição.
const HandSize = 3

var (
	ErrIndexOutOfRange   = errors.New("card index out of range")
	ErrCardAlreadyPlayed = errors.New("card already played")
)

// Hand é a mão de uma distribuição: 3 cartas e o registro de quais índices
// já foram jogados. O registro é por índice, não por carta, porque a mesma
// força pode aparecer nas duas mãos da distribuição.
type Hand struct {
	cards  [HandSize]card.Card
	played [HandSize]bool
}

func NewHand(cards [HandSize]card.Card) *Hand {
	return &Hand{cards: cards}
}

// Cards devolve as 3 cartas distribuídas, jogadas ou não.
func (h *Hand) Cards() [HandSize]card.Card {
	return h.cards
}

// Played informa se o índice (0-based) já foi jogado.
func (h *Hand) Played(i int) bool {
	if i < 0 || i >= HandSize {
		return false
	}
	return h.played[i]
}

// Remaining conta as cartas ainda não jogadas.
func (h *Hand) Remaining() int {
	n := 0
	for _, p := range h.played {
		if !p {
			n++
		}
	}
	return n
}

// Play marca o índice (0-based) como jogado e devolve a carta.
func (h *Hand) Play(i int) (card.Card, error) {
	if i < 0 || i >= HandSize {
		return card.Card{}, ErrIndexOutOfRange
	}
	if h.played[i] {
		return card.Card{}, ErrCardAlreadyPlayed
	}
	h.played[i] = true
	return h.cards[i], nil
}

// Player é o estado de um jogador durante a ocupação de uma sala.
// MatchPoints atravessa as distribuições de uma mesma partida;
// o resto é recalculado a cada distribuição.
type Player struct {
	MatchPoints  int
	EnvidoPoints int
	HasFlor      bool

	hand *Hand
}

func NewPlayer() *Player {
	return &Player{}
}

// StartMatch zera o placar do jogador para uma nova partida.
func (p *Player) StartMatch() {
	p.MatchPoints = 0
	p.hand = nil
	p.EnvidoPoints = 0
	p.HasFlor = false
}

// StartDeal entrega uma nova mão ao jogador e fixa os valores derivados
// dela: os pontos de envido e a flor valem pela distribuição inteira,
// independente de quais cartas forem jogadas.
func (p *Player) StartDeal(cards [HandSize]card.Card) {
	p.hand = NewHand(cards)
	p.EnvidoPoints = card.HandEnvido(cards)
	p.HasFlor = card.HasFlor(cards)
}

func (p *Player) Hand() *Hand {
	return p.hand
}

// AddPoints soma pontos ao placar da partida. Nunca subtrai.
func (p *Player) AddPoints(n int) {
	if n > 0 {
		p.MatchPoints += n
	}
}
