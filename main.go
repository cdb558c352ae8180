package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"potlogic/engine"
	"potlogic/server"
)

// Standalone analysis socket for local frontends. The full HTTP/WebSocket
// API lives in cmd/server.
func main() {
	addr := os.Getenv("ANALYSIS_ADDR")
	if addr == "" {
		addr = ":8081"
	}

	eng := engine.NewEngine(engine.DefaultConfig(), nil)
	tcpServer := server.NewTCPServer(addr, eng)

	go func() {
		log.Printf("Analysis engine starting on %s", addr)
		if err := tcpServer.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	tcpServer.Stop()
}
