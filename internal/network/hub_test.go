package network

import (
	"testing"
	"time"
)

// disconnectSignal avisa o teste quando o desregistro terminou.
type disconnectSignal struct {
	disconnected chan struct{}
}

func (h *disconnectSignal) OnConnect(*Client)          {}
func (h *disconnectSignal) OnDisconnect(*Client)       { close(h.disconnected) }
func (h *disconnectSignal) OnMessage(*Client, Message) {}

// A goroutine da sala pode estar no meio de um broadcast quando a
// desconexão chega: o canal de saída tem que continuar aberto, senão o
// envio atrasado derruba o processo inteiro e não só a partida.
func TestLateSendAfterUnregister(t *testing.T) {
	handler := &disconnectSignal{disconnected: make(chan struct{})}
	h := NewHub(handler)
	go h.Run()

	c := &Client{hub: h, send: make(chan Message, 1), done: make(chan struct{})}
	h.register <- c
	h.unregister <- c
	<-handler.disconnected

	sent := make(chan struct{})
	go func() {
		defer close(sent)
		c.send <- NewTextMessage("broadcast atrasado")
	}()

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("envio depois do desregistro não deveria bloquear")
	}
}
