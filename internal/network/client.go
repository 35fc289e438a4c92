package network

import (
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Tempo para aguardar por uma escrita na conexão.
	writeWait = 10 * time.Second

	// Tempo máximo para aguardar por uma resposta de pong do cliente.
	pongWait = 60 * time.Second

	// Frequência com que enviamos pings para o cliente. Deve ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Client é a representação de um jogador conectado do ponto de vista do servidor.
// Ele agrupa a conexão e o canal de saída.
type Client struct {
	// A conexão com o jogador.
	conn *websocket.Conn

	// Uma referência ao Hub central. O cliente usa isso para se (des)registrar.
	hub *Hub

	// Canal bufferizado para mensagens de saída. O resto do servidor escreve
	// aqui e a goroutine writeLoop entrega. O buffer evita que a sala bloqueie
	// se o cliente estiver lento. O canal nunca é fechado: o encerramento
	// do writeLoop é sinalizado por done.
	send chan Message

	// done sinaliza o encerramento pelo lado da escrita. Fechado uma única
	// vez por Close; o writeLoop descarrega a fila antes de derrubar a conexão.
	done      chan struct{}
	closeOnce sync.Once
}

// Conn retorna a conexão net.Conn subjacente do cliente.
func (c *Client) Conn() net.Conn {
	return c.conn.UnderlyingConn()
}

// Send é o único jeito seguro de mandar uma mensagem para este cliente.
func (c *Client) Send() chan<- Message {
	return c.send
}

// Close encerra o cliente pelo lado da escrita: o writeLoop entrega o que
// ainda está na fila, manda o frame de close e derruba a conexão. O readLoop
// percebe e cuida do desregistro no Hub.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		// Acorda o writeLoop na hora em vez de esperar o próximo ping falhar.
		c.Close()
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	// O handler de pong renova o deadline de leitura, mantendo a conexão viva.
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Network] Erro inesperado no cliente %s: %v", c.conn.RemoteAddr(), err)
			}
			// Para qualquer erro (desconexão normal ou anormal), saímos do loop.
			break
		}

		c.hub.incoming <- clientMessage{client: c, msg: msg}
	}
}

// writeLoop bombeia mensagens do canal 'send' do cliente para a conexão.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("[Network] Erro de escrita no cliente %s: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return // Se o ping falhar, a conexão está morta.
			}

		case <-c.done:
			c.flush()
			return
		}
	}
}

// flush entrega o que restou na fila e despede com o frame de close. Sem
// isso o anúncio final da partida poderia se perder na desconexão.
func (c *Client) flush() {
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		default:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
