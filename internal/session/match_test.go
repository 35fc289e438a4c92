package session

import (
	"bytes"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trucogauderio/internal/game/card"
	"trucogauderio/internal/game/player"
	"trucogauderio/internal/network"
)

// fakeConn captura tudo que o motor manda para um jogador. O buffer é
// grande o bastante para uma partida de teste inteira sem bloquear.
type fakeConn struct {
	out chan network.Message

	mu     sync.Mutex
	closed bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{out: make(chan network.Message, 4096)}
}

func (f *fakeConn) Send() chan<- network.Message { return f.out }

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) drain() []network.Message {
	var msgs []network.Message
	for {
		select {
		case m := <-f.out:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

func countErrors(msgs []network.Message) int {
	n := 0
	for _, m := range msgs {
		if m.Type == network.MsgText && strings.HasPrefix(m.Text, "ERRO:") {
			n++
		}
	}
	return n
}

func findByType(msgs []network.Message, t network.MessageType) (network.Message, bool) {
	for _, m := range msgs {
		if m.Type == t {
			return m, true
		}
	}
	return network.Message{}, false
}

// scriptedDealer entrega mãos pré-definidas, uma distribuição por vez.
// Esgotado o roteiro, repete a última.
type scriptedDealer struct {
	deals [][2][player.HandSize]card.Card
	next  int
}

func (d *scriptedDealer) DealHands() ([player.HandSize]card.Card, [player.HandSize]card.Card) {
	i := d.next
	if i >= len(d.deals) {
		i = len(d.deals) - 1
	} else {
		d.next++
	}
	return d.deals[i][0], d.deals[i][1]
}

// newScriptedSession cria uma sessão com o roteiro de ações já entregue e
// o inbox fechado: quando o roteiro acaba, o motor enxerga a desconexão.
func newScriptedSession(tokens ...string) *PlayerSession {
	ps := NewPlayerSession(newFakeConn())
	ps.inbox = make(chan string, len(tokens)+1)
	for _, tok := range tokens {
		ps.inbox <- tok
	}
	ps.CloseInbox()
	return ps
}

func newScriptedMatch(deals [][2][player.HandSize]card.Card, a, b *PlayerSession) *Match {
	return NewMatch(1, [RoomCapacity]*PlayerSession{a, b}, &scriptedDealer{deals: deals})
}

func c(rank int, suit card.Suit) card.Card { return card.Card{Rank: rank, Suit: suit} }

var envidoDeals = [][2][player.HandSize]card.Card{{
	{c(1, card.Paus), c(5, card.Paus), c(12, card.Espadas)},  // envido 26
	{c(7, card.Ouros), c(2, card.Ouros), c(10, card.Copas)}, // envido 29
}}

func TestEnvidoAcceptedAwardsHigherHand(t *testing.T) {
	a := newScriptedSession("E")
	b := newScriptedSession("S")
	m := newScriptedMatch(envidoDeals, a, b)

	err := m.Run()
	require.ErrorIs(t, err, ErrDisconnected)

	assert.Equal(t, 0, a.Player.MatchPoints)
	assert.Equal(t, 2, b.Player.MatchPoints, "quem tem mais envido leva os 2 pontos")
}

func TestEnvidoDeclinedAwardsCaller(t *testing.T) {
	a := newScriptedSession("E")
	b := newScriptedSession("N")
	m := newScriptedMatch(envidoDeals, a, b)

	err := m.Run()
	require.ErrorIs(t, err, ErrDisconnected)

	assert.Equal(t, 1, a.Player.MatchPoints, "recusa do primeiro canto vale 1 ponto")
	assert.Equal(t, 0, b.Player.MatchPoints)
}

func TestFaltaEnvidoClosesMatch(t *testing.T) {
	deals := [][2][player.HandSize]card.Card{{
		{c(7, card.Espadas), c(6, card.Espadas), c(4, card.Ouros)}, // envido 33
		{c(4, card.Paus), c(5, card.Ouros), c(10, card.Copas)},     // envido 5
	}}
	// A canta envido, B aumenta para real, A aumenta para falta, B aceita.
	a := newScriptedSession("E", "E")
	b := newScriptedSession("E", "S")
	m := newScriptedMatch(deals, a, b)

	err := m.Run()
	require.NoError(t, err, "falta envido aceito fecha a partida sem desconexão")

	assert.Equal(t, MatchTargetPoints, a.Player.MatchPoints)
	assert.Equal(t, 0, b.Player.MatchPoints)
	assert.Equal(t, 0, m.winner)

	msgs := a.Conn.(*fakeConn).drain()
	winMsg, ok := findByType(msgs, network.MsgWinner)
	require.True(t, ok, "vencedor precisa receber o anúncio final")
	assert.Contains(t, winMsg.Text, "venceu")
}

func TestTrucoDeclinedAwardsPreRaiseStake(t *testing.T) {
	a := newScriptedSession("T")
	b := newScriptedSession("N")
	m := newScriptedMatch(envidoDeals, a, b)

	err := m.Run()
	require.ErrorIs(t, err, ErrDisconnected)

	assert.Equal(t, 1, a.Player.MatchPoints, "correr do truco entrega o valor anterior ao aumento")
	assert.Equal(t, 0, b.Player.MatchPoints)
}

func TestTrucoRaisedThenDeclined(t *testing.T) {
	// A canta truco, B aumenta para retruco, A corre: B leva os 2 do truco.
	a := newScriptedSession("T", "N")
	b := newScriptedSession("T")
	m := newScriptedMatch(envidoDeals, a, b)

	err := m.Run()
	require.ErrorIs(t, err, ErrDisconnected)

	assert.Equal(t, 0, a.Player.MatchPoints)
	assert.Equal(t, 2, b.Player.MatchPoints)
}

func TestValeQuatroAcceptedDealWorthFour(t *testing.T) {
	deals := [][2][player.HandSize]card.Card{{
		{c(1, card.Espadas), c(1, card.Paus), c(7, card.Espadas)},
		{c(4, card.Copas), c(4, card.Paus), c(4, card.Ouros)},
	}}
	// Escalada completa: truco, retruco, vale quatro, aceite. Depois A
	// ganha as duas primeiras rodadas com as manilhas.
	a := newScriptedSession("T", "T", "1", "2")
	b := newScriptedSession("T", "S", "1", "2")
	m := newScriptedMatch(deals, a, b)

	err := m.Run()
	require.ErrorIs(t, err, ErrDisconnected)

	assert.Equal(t, 4, a.Player.MatchPoints, "distribuição aceita no vale quatro vale 4 pontos")
	assert.Equal(t, 0, b.Player.MatchPoints)
}

func TestAllTricksTiedGoesToDealOpener(t *testing.T) {
	deals := [][2][player.HandSize]card.Card{{
		{c(3, card.Espadas), c(2, card.Espadas), c(5, card.Espadas)},
		{c(3, card.Paus), c(2, card.Paus), c(5, card.Paus)},
	}}
	a := newScriptedSession("1", "2", "3")
	b := newScriptedSession("1", "2", "3")
	m := newScriptedMatch(deals, a, b)

	err := m.Run()
	require.ErrorIs(t, err, ErrDisconnected)

	assert.Equal(t, 1, a.Player.MatchPoints, "empate nas três rodadas favorece quem abriu")
	assert.Equal(t, 0, b.Player.MatchPoints)
}

func TestInvalidInputDoesNotConsumeTurn(t *testing.T) {
	deals := [][2][player.HandSize]card.Card{{
		{c(1, card.Espadas), c(2, card.Ouros), c(5, card.Copas)},
		{c(4, card.Copas), c(4, card.Paus), c(4, card.Ouros)},
	}}
	// A erra duas vezes (índice fora da mão e comando desconhecido) e só
	// então joga; a rodada acontece normalmente.
	a := newScriptedSession("9", "xyz", "1")
	b := newScriptedSession("1")
	m := newScriptedMatch(deals, a, b)

	err := m.Run()
	require.ErrorIs(t, err, ErrDisconnected)

	assert.Equal(t, 1, m.trickWins[0], "a manilha de A leva a rodada")
	msgs := a.Conn.(*fakeConn).drain()
	assert.Equal(t, 2, countErrors(msgs), "cada entrada inválida gera um aviso de erro")
}

func TestEnvidoRejectedAfterFirstCard(t *testing.T) {
	deals := [][2][player.HandSize]card.Card{{
		{c(1, card.Espadas), c(2, card.Ouros), c(5, card.Copas)},
		{c(4, card.Copas), c(4, card.Paus), c(4, card.Ouros)},
	}}
	a := newScriptedSession("1")
	b := newScriptedSession("E", "1")
	m := newScriptedMatch(deals, a, b)

	err := m.Run()
	require.ErrorIs(t, err, ErrDisconnected)

	msgs := b.Conn.(*fakeConn).drain()
	assert.Equal(t, 1, countErrors(msgs))
	assert.Equal(t, 2, m.playedInDeal, "a jogada de B depois do aviso vale normalmente")
}

func TestBroadcastToDisconnectedPlayerAbortsOnlyMatch(t *testing.T) {
	deals := [][2][player.HandSize]card.Card{{
		{c(1, card.Espadas), c(2, card.Ouros), c(5, card.Copas)},
		{c(4, card.Copas), c(4, card.Paus), c(4, card.Ouros)},
	}}
	// A conexão de A já caiu: ninguém drena o canal de saída dela. Os
	// broadcasts seguintes (mesa da jogada de B) não podem travar nem
	// derrubar a goroutine da sala; a partida aborta no próximo Receive.
	a := NewPlayerSession(&fakeConn{out: make(chan network.Message)})
	a.inbox = make(chan string, 1)
	a.inbox <- "1"
	a.CloseInbox()
	b := newScriptedSession("1")
	m := newScriptedMatch(deals, a, b)

	done := make(chan error, 1)
	go func() { done <- m.Run() }()

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrDisconnected)
	case <-time.After(2 * time.Second):
		t.Fatal("a partida travou transmitindo para um jogador desconectado")
	}

	assert.NotEmpty(t, b.Conn.(*fakeConn).drain(),
		"o jogador vivo continua recebendo até o abort")
}

func TestMatchLogsIdentifySeat(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	a := newScriptedSession("1")
	b := newScriptedSession("1")
	m := newScriptedMatch(envidoDeals, a, b)
	_ = m.Run()

	logs := buf.String()
	assert.Contains(t, logs, "jogador 0 (", "o assento acompanha o ID nos logs")
	assert.Contains(t, logs, "jogador 1 (")
}

func TestDisconnectMidMatchAborts(t *testing.T) {
	a := newScriptedSession() // desconecta antes de agir
	b := newScriptedSession()
	m := newScriptedMatch(envidoDeals, a, b)

	err := m.Run()
	require.ErrorIs(t, err, ErrDisconnected)
	assert.Equal(t, -1, m.winner)
}
