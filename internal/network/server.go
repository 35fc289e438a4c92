package network

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Server é a estrutura principal do servidor de rede. Ele gerencia um Hub.
type Server struct {
	hub *Hub
}

// upgrader armazena as configurações para promover uma conexão HTTP para WebSocket.
var upgrader = websocket.Upgrader{
	// Para desenvolvimento, aceitamos qualquer origem.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewServer aceita um EventHandler e o injeta no Hub.
// Este é o ponto de injeção da lógica do jogo.
func NewServer(handler EventHandler) *Server {
	return &Server{
		hub: NewHub(handler),
	}
}

// wsHandler é o ponto de entrada para conexões de clientes. Ele promove a
// requisição HTTP para uma conexão WebSocket persistente.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Network] Erro ao fazer upgrade da conexão: %v", err)
		return
	}

	client := &Client{
		conn: conn,
		hub:  s.hub,
		send: make(chan Message, 256),
		done: make(chan struct{}),
	}

	client.hub.register <- client

	go client.writeLoop()
	go client.readLoop()
}

// healthHandler responde ao health check usado pelo registro no Consul.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// Listen inicia o Hub e o servidor HTTP com as rotas do WebSocket e do
// health check. É bloqueante.
func (s *Server) Listen(address string) error {
	go s.hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.wsHandler)
	mux.HandleFunc("/health", s.healthHandler)

	log.Printf("[Network] Servidor escutando em ws://%s/ws", address)

	return http.ListenAndServe(address, mux)
}
