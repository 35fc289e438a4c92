package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config agrupa tudo que o servidor lê do ambiente.
type Config struct {
	// ListenAddr é o endereço HTTP/WebSocket do servidor, ex: ":8080".
	ListenAddr string

	// Rooms é a quantidade fixa de salas criadas na subida do processo.
	Rooms int

	// ConsulAddr habilita o registro no Consul quando preenchido
	// (CONSUL_HTTP_ADDR). Vazio = servidor avulso, sem registro.
	ConsulAddr string
}

const (
	defaultListenAddr = ":8080"
	defaultRooms      = 2
)

// Load lê a configuração do ambiente, com um .env opcional no diretório
// de trabalho para desenvolvimento local.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[Config] .env carregado")
	}

	cfg := Config{
		ListenAddr: defaultListenAddr,
		Rooms:      defaultRooms,
		ConsulAddr: os.Getenv("CONSUL_HTTP_ADDR"),
	}

	if addr := os.Getenv("TRUCO_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}

	if rooms := os.Getenv("TRUCO_ROOMS"); rooms != "" {
		n, err := strconv.Atoi(rooms)
		if err != nil || n < 1 {
			log.Printf("[Config] TRUCO_ROOMS inválido (%q), usando %d", rooms, defaultRooms)
		} else {
			cfg.Rooms = n
		}
	}

	return cfg
}
