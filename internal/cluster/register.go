package cluster

import (
	"fmt"
	"os"
	"strings"

	consul "github.com/hashicorp/consul/api"
)

// RegisterService registra o servidor de truco no Consul, com um health
// check HTTP apontando para o /health do próprio servidor. O endereço do
// agente vem de consulAddr (CONSUL_HTTP_ADDR); o chamador decide se o
// registro é obrigatório.
func RegisterService(consulAddr, serviceName, listenAddr string) error {
	cfg := consul.DefaultConfig()
	cfg.Address = consulAddr

	client, err := consul.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("criando cliente Consul: %w", err)
	}

	// O hostname dá um ID de serviço único por instância.
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}

	port := servicePort(listenAddr)

	registration := &consul.AgentServiceRegistration{
		ID:   fmt.Sprintf("%s-%s", serviceName, hostname),
		Name: serviceName,
		Port: port,
		Check: &consul.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", hostname, port),
			Timeout:  "5s",
			Interval: "10s",
			// Desregistra sozinho se a instância ficar crítica por muito tempo.
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("registrando serviço no Consul: %w", err)
	}
	return nil
}

// servicePort extrai a porta de um endereço de escuta como ":8080" ou
// "0.0.0.0:8080". Sem porta reconhecível, assume 80.
func servicePort(listenAddr string) int {
	i := strings.LastIndex(listenAddr, ":")
	if i < 0 {
		return 80
	}
	port := 0
	if _, err := fmt.Sscanf(listenAddr[i+1:], "%d", &port); err != nil || port == 0 {
		return 80
	}
	return port
}
