package main

import (
	"bufio"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"

	"trucogauderio/internal/network"
)

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	addr := "localhost:8080"
	if envAddr := os.Getenv("TRUCO_SERVER_ADDR"); envAddr != "" {
		addr = envAddr
	}

	fmt.Println("🃏 TRUCO GAUDÉRIO - Cliente")
	fmt.Println("============================")
	fmt.Println()

	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	fmt.Println("🔄 Conectando ao servidor...")

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("❌ Falha na conexão com %s: %v", addr, err)
	}
	defer conn.Close()

	fmt.Println("✅ Conectado ao servidor!")
	fmt.Println("⏳ Aguardando outro jogador...")
	fmt.Println()

	done := make(chan struct{})
	go readLoop(conn, done)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			msg := network.NewGameActionMessage(input)
			if err := conn.WriteJSON(msg); err != nil {
				fmt.Println("❌ Erro ao enviar mensagem.")
				return
			}
		}
	}()

	select {
	case <-done:
		fmt.Println("\n👋 Desconectado do servidor.")
	case <-interrupt:
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		fmt.Println("\n👋 Até a próxima!")
	}
}

// readLoop imprime cada mensagem do servidor de acordo com o tipo.
func readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			fmt.Println("\n❌ Conexão perdida com o servidor.")
			return
		}

		switch msg.Type {
		case network.MsgWinner:
			fmt.Printf("\n🏆 %s\n", msg.Text)
			return

		case network.MsgScoreboard:
			fmt.Printf("📊 %s\n", msg.Text)

		case network.MsgHand:
			fmt.Printf("🂠 %s\n", msg.Text)

		case network.MsgTable:
			fmt.Printf("🎴 %s\n", msg.Text)

		case network.MsgYourTurn:
			fmt.Printf("\n👉 %s\n> ", msg.Text)

		case network.MsgRoomJoin:
			fmt.Printf("✅ %s\n", msg.Text)

		default:
			fmt.Println(msg.Text)
		}
	}
}
