package session

import (
	"log"
	"time"

	"trucogauderio/internal/game/deck"
)

// RoomCapacity é fixa: truco de dois.
const RoomCapacity = 2

// Room é uma vaga de pareamento de capacidade fixa. A lista de jogadores e
// o portão de largada são mutados SOMENTE sob o mutex do Manager; depois
// que o portão abre, a goroutine da sala é a única dona do estado de jogo.
type Room struct {
	ID      int
	players []*PlayerSession

	// start é o portão de largada da sala: um canal de uso único que o
	// Manager fecha exatamente uma vez, quando a sala enche. A cada nova
	// partida o Manager instala um canal novo.
	start chan struct{}
}

func newRoom(id int) *Room {
	return &Room{ID: id, start: make(chan struct{})}
}

// full informa se a sala está cheia. Chamar só com o mutex do Manager.
func (r *Room) full() bool {
	return len(r.players) >= RoomCapacity
}

// remove tira um jogador que desistiu antes da sala encher.
// Chamar só com o mutex do Manager.
func (r *Room) remove(ps *PlayerSession) {
	for i, p := range r.players {
		if p == ps {
			r.players = append(r.players[:i], r.players[i+1:]...)
			log.Printf("[Room %d] jogador %s saiu antes da partida começar", r.ID, ps.ID)
			return
		}
	}
}

// run é a goroutine dedicada da sala, viva pela vida inteira do servidor.
// Ela dorme no portão de largada, roda uma partida completa e devolve a
// sala para o Manager aceitar novos jogadores.
func (r *Room) run(m *Manager) {
	for {
		m.mu.Lock()
		gate := r.start
		m.mu.Unlock()

		<-gate

		m.mu.Lock()
		players := [RoomCapacity]*PlayerSession{r.players[0], r.players[1]}
		m.mu.Unlock()

		log.Printf("[Room %d] sala cheia, começando a partida", r.ID)

		match := NewMatch(r.ID, players, deck.NewDealer(uint64(time.Now().UnixNano())))
		if err := match.Run(); err != nil {
			log.Printf("[Room %d] partida abortada: %v", r.ID, err)
		} else {
			log.Printf("[Room %d] partida encerrada", r.ID)
		}

		m.resetRoom(r)
	}
}
