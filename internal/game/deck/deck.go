package deck

import (
	"math/rand/v2"

	"trucogauderio/internal/game/card"
)

// Size é o tamanho do baralho de truco: 40 cartas, sem 8s, 9s e coringas.
const Size = 40

// Ordered é o baralho fixo, da carta mais forte para a mais fraca.
// A tabela é compartilhada e somente leitura.
var Ordered = [Size]card.Card{
	{Rank: 1, Suit: card.Espadas}, // Ás de Espadas
	{Rank: 1, Suit: card.Paus},    // Ás de Paus
	{Rank: 7, Suit: card.Espadas},
	{Rank: 7, Suit: card.Ouros},
	{Rank: 3, Suit: card.Espadas}, {Rank: 3, Suit: card.Paus}, {Rank: 3, Suit: card.Ouros}, {Rank: 3, Suit: card.Copas},
	{Rank: 2, Suit: card.Espadas}, {Rank: 2, Suit: card.Paus}, {Rank: 2, Suit: card.Ouros}, {Rank: 2, Suit: card.Copas},
	{Rank: 1, Suit: card.Ouros}, {Rank: 1, Suit: card.Copas},
	{Rank: 12, Suit: card.Espadas}, {Rank: 12, Suit: card.Paus}, {Rank: 12, Suit: card.Ouros}, {Rank: 12, Suit: card.Copas},
	{Rank: 11, Suit: card.Espadas}, {Rank: 11, Suit: card.Paus}, {Rank: 11, Suit: card.Ouros}, {Rank: 11, Suit: card.Copas},
	{Rank: 10, Suit: card.Espadas}, {Rank: 10, Suit: card.Paus}, {Rank: 10, Suit: card.Ouros}, {Rank: 10, Suit: card.Copas},
	{Rank: 7, Suit: card.Paus}, {Rank: 7, Suit: card.Copas},
	{Rank: 6, Suit: card.Espadas}, {Rank: 6, Suit: card.Paus}, {Rank: 6, Suit: card.Ouros}, {Rank: 6, Suit: card.Copas},
	{Rank: 5, Suit: card.Espadas}, {Rank: 5, Suit: card.Paus}, {Rank: 5, Suit: card.Ouros}, {Rank: 5, Suit: card.Copas},
	{Rank: 4, Suit: card.Espadas}, {Rank: 4, Suit: card.Paus}, {Rank: 4, Suit: card.Ouros}, {Rank: 4, Suit: card.Copas},
}

// Dealer distribui mãos a partir do baralho fixo. Cada sala tem o seu,
// então não há fonte de aleatoriedade compartilhada entre salas.
type Dealer struct {
	rng *rand.Rand
}

func NewDealer(seed uint64) *Dealer {
	return &Dealer{rng: rand.New(rand.NewPCG(seed, 1))}
}

// DealHands sorteia duas mãos de 3 cartas sem nenhuma carta repetida entre
// elas. O sorteio é por amostragem: sorteia um índice do baralho e rejeita
// os que já saíram nesta distribuição.
func (d *Dealer) DealHands() (hand1, hand2 [3]card.Card) {
	var dealt [Size]bool
	draw := func() card.Card {
		for {
			i := d.rng.IntN(Size)
			if dealt[i] {
				continue
			}
			dealt[i] = true
			return Ordered[i]
		}
	}

	for i := 0; i < 3; i++ {
		hand1[i] = draw()
		hand2[i] = draw()
	}
	return hand1, hand2
}
