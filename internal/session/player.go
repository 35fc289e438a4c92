package session

import (
	"errors"
	"log"

	"sync"

	"github.com/google/uuid"

	"trucogauderio/internal/game/player"
	"trucogauderio/internal/network"
)

// ErrDisconnected indica que a conexão do jogador caiu. Para o motor da
// partida isso é fatal: não existe reconexão.
var ErrDisconnected = errors.New("player disconnected")

// Conn é o que a sessão precisa de uma conexão de rede.
// *network.Client implementa; os testes usam uma conexão de mentira.
type Conn interface {
	Send() chan<- network.Message
	Close() error
}

// PlayerSession representa um jogador único conectado ao servidor, da
// entrada na sala até a desconexão.
type PlayerSession struct {
	ID     string
	Conn   Conn
	Player *player.Player

	mu     sync.Mutex
	closed bool
	inbox  chan string
}

// NewPlayerSession cria e inicializa uma nova sessão de jogador.
func NewPlayerSession(conn Conn) *PlayerSession {
	return &PlayerSession{
		ID:     uuid.NewString(),
		Conn:   conn,
		Player: player.NewPlayer(),
		inbox:  make(chan string, 8),
	}
}

// SendMessage implementa message.MessageSender. A entrega nunca bloqueia a
// goroutine da sala: um cliente que parou de drenar o canal de saída (o
// buffer de 256 só enche em conexão morta) perde mensagens em vez de travar
// a partida. O abort acontece no próximo Receive, quando o inbox fechado
// sinaliza a desconexão.
func (ps *PlayerSession) SendMessage(msg network.Message) {
	select {
	case ps.Conn.Send() <- msg:
	default:
		log.Printf("[Session %s] canal de saída cheio, mensagem descartada", ps.ID)
	}
}

// Deliver entrega uma ação vinda da rede para o motor da partida.
// Não bloqueia o Hub: se o jogador digitar mais rápido do que o motor
// consome, a ação excedente é descartada.
func (ps *PlayerSession) Deliver(action string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.closed {
		return
	}
	select {
	case ps.inbox <- action:
	default:
		log.Printf("[Session %s] inbox cheio, ação descartada", ps.ID)
	}
}

// CloseInbox encerra a entrega de ações. É o sinal de desconexão que o
// motor enxerga no próximo Receive.
func (ps *PlayerSession) CloseInbox() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if !ps.closed {
		ps.closed = true
		close(ps.inbox)
	}
}

// Receive bloqueia até a próxima ação do jogador.
// Retorna ErrDisconnected quando a conexão caiu.
func (ps *PlayerSession) Receive() (string, error) {
	action, ok := <-ps.inbox
	if !ok {
		return "", ErrDisconnected
	}
	return action, nil
}
