package session

import (
	"log"
	"strings"
	"sync"

	"trucogauderio/internal/network"
	"trucogauderio/internal/session/message"
)

// Manager implementa a interface network.EventHandler. Ele é o dono das
// salas: atribui cada conexão nova à primeira sala com vaga e roteia as
// ações recebidas para a sessão certa. Toda mutação de sala passa pelo
// único mutex daqui — é o único ponto de contenção do servidor inteiro.
type Manager struct {
	mu       sync.Mutex
	rooms    []*Room
	sessions map[Conn]*PlayerSession
}

// NewManager cria o conjunto fixo de salas e dispara a goroutine de cada
// uma. As salas vivem pela vida inteira do processo.
func NewManager(roomCount int) *Manager {
	m := &Manager{
		sessions: make(map[Conn]*PlayerSession),
	}
	for i := 0; i < roomCount; i++ {
		r := newRoom(i + 1)
		m.rooms = append(m.rooms, r)
		go r.run(m)
	}
	log.Printf("[Manager] %d sala(s) criadas", roomCount)
	return m
}

// OnConnect cria a sessão e tenta colocar o jogador em uma sala.
// Sem vaga em nenhuma sala, o jogador recebe o aviso e a conexão cai:
// não existe fila de espera.
func (m *Manager) OnConnect(c *network.Client) {
	ps := NewPlayerSession(c)

	m.mu.Lock()
	m.sessions[c] = ps
	m.mu.Unlock()

	if room := m.assign(ps); room != nil {
		log.Printf("[Manager] jogador %s entrou na sala %d", ps.ID, room.ID)
		return
	}

	log.Printf("[Manager] sem vaga para o jogador %s, recusando", ps.ID)
	message.SendText(ps, "Nenhuma sala disponível. Tente novamente mais tarde.")
	c.Close()
}

// assign percorre as salas em ordem fixa e devolve a primeira com vaga,
// já com o jogador dentro; nil quando todas estão cheias. Se a sala encher
// com este jogador, o portão de largada é aberto exatamente uma vez.
func (m *Manager) assign(ps *PlayerSession) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.rooms {
		if r.full() {
			continue
		}
		r.players = append(r.players, ps)
		message.SendRoomJoin(ps, "Você entrou na sala %d. Aguardando outro jogador...", r.ID)
		if r.full() {
			close(r.start)
		}
		return r
	}
	return nil
}

// resetRoom devolve a sala ao estado de espera depois de uma partida:
// derruba as duas conexões, esvazia a sala e instala um portão novo.
func (m *Manager) resetRoom(r *Room) {
	m.mu.Lock()
	players := r.players
	r.players = nil
	r.start = make(chan struct{})
	m.mu.Unlock()

	for _, ps := range players {
		ps.CloseInbox()
		ps.Conn.Close()
	}
	log.Printf("[Room %d] sala liberada para novos jogadores", r.ID)
}

// OnDisconnect encerra a sessão. Se o jogador estava esperando em uma sala
// ainda incompleta, ele sai da vaga; se estava em partida, o inbox fechado
// derruba a partida no próximo receive do motor.
func (m *Manager) OnDisconnect(c *network.Client) {
	m.mu.Lock()
	ps := m.sessions[c]
	delete(m.sessions, c)
	if ps != nil {
		for _, r := range m.rooms {
			if !r.full() {
				r.remove(ps)
			}
		}
	}
	m.mu.Unlock()

	if ps != nil {
		ps.CloseInbox()
		log.Printf("[Manager] jogador %s desconectado", ps.ID)
	}
}

// OnMessage roteia uma ação de jogo para o inbox da sessão. Qualquer outro
// tipo de mensagem no sentido cliente -> servidor é ignorado.
func (m *Manager) OnMessage(c *network.Client, msg network.Message) {
	if msg.Type != network.MsgGameAction {
		return
	}

	m.mu.Lock()
	ps := m.sessions[c]
	m.mu.Unlock()

	if ps != nil {
		ps.Deliver(strings.TrimSpace(msg.Text))
	}
}
