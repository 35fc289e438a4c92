package main

import (
	"log"

	"trucogauderio/internal/cluster"
	"trucogauderio/internal/config"
	"trucogauderio/internal/network"
	"trucogauderio/internal/session"
)

func main() {
	cfg := config.Load()

	// O Manager é a lógica do jogo: ele implementa network.EventHandler
	// e é injetado no servidor de rede.
	manager := session.NewManager(cfg.Rooms)
	server := network.NewServer(manager)

	if cfg.ConsulAddr != "" {
		if err := cluster.RegisterService(cfg.ConsulAddr, "truco-server", cfg.ListenAddr); err != nil {
			log.Printf("AVISO: registro no Consul falhou: %v", err)
		} else {
			log.Println("Serviço registrado no Consul")
		}
	}

	if err := server.Listen(cfg.ListenAddr); err != nil {
		log.Fatalf("Não foi possível iniciar o servidor: %v", err)
	}
}
