package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"sync"

	"potlogic/engine"
	"potlogic/models"
)

// TCPServer serves line-delimited JSON analysis commands on a local
// socket. Each line is one Command; each reply is one Response. Intended
// for desktop frontends that keep a persistent local connection instead
// of talking HTTP.
type TCPServer struct {
	address  string
	listener net.Listener
	handler  *CommandHandler
	mu       sync.Mutex
	stopChan chan struct{}
}

func NewTCPServer(address string, eng *engine.Engine) *TCPServer {
	return &TCPServer{
		address:  address,
		handler:  NewCommandHandler(eng),
		stopChan: make(chan struct{}),
	}
}

func (s *TCPServer) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to start server: %v", err)
	}

	s.listener = listener
	log.Printf("[TCP] Analysis socket listening on %s", s.address)

	for {
		select {
		case <-s.stopChan:
			return nil
		default:
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.stopChan:
					return nil
				default:
				}
				log.Printf("[TCP] Error accepting connection: %v", err)
				continue
			}

			log.Printf("[TCP] Client connected from %s", conn.RemoteAddr().String())
			go s.handleConnection(conn)
		}
	}
}

func (s *TCPServer) handleConnection(conn net.Conn) {
	defer func() {
		conn.Close()
		log.Printf("[TCP] Client disconnected")
	}()

	ctx := context.Background()
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()

		var cmd models.Command
		if err := json.Unmarshal(line, &cmd); err != nil {
			s.sendResponse(conn, models.Response{
				Success: false,
				Error:   fmt.Sprintf("invalid JSON: %v", err),
				Kind:    engine.KindParse,
			})
			continue
		}

		response := s.handler.Handle(ctx, cmd)
		s.sendResponse(conn, response)
	}

	if err := scanner.Err(); err != nil {
		log.Printf("[TCP] Scanner error: %v", err)
	}
}

func (s *TCPServer) sendResponse(conn net.Conn, response models.Response) {
	data, err := json.Marshal(response)
	if err != nil {
		log.Printf("[TCP] Error marshaling response: %v", err)
		return
	}

	data = append(data, '\n')

	if _, err = conn.Write(data); err != nil {
		log.Printf("[TCP] Error writing response: %v", err)
	}
}

func (s *TCPServer) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		s.listener.Close()
	}
}
