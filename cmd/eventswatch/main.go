package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"github.com/satriahrh/pdfvoice/domain"
)

type incoming struct {
	Type      string       `json:"type"`
	Timestamp string       `json:"timestamp"`
	Message   string       `json:"message,omitempty"`
	Event     domain.Event `json:"event"`
}

func main() {
	host := flag.String("host", "localhost:8080", "server host:port")
	secure := flag.Bool("tls", false, "connect with wss")
	flag.Parse()

	scheme := "ws"
	if *secure {
		scheme = "wss"
	}
	wsURL := url.URL{Scheme: scheme, Host: *host, Path: "/ws/events"}

	fmt.Printf("Connecting to: %s\n", wsURL.String())

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		if resp != nil {
			log.Fatalf("WebSocket connection failed with status %d: %v", resp.StatusCode, err)
		}
		log.Fatalf("WebSocket connection failed: %v", err)
	}
	defer conn.Close()

	fmt.Println("Connected, sending ping...")
	if err := conn.WriteJSON(map[string]string{"type": "ping"}); err != nil {
		log.Fatalf("Failed to send ping: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.Printf("Read failed: %v", err)
				}
				return
			}
			printMessage(data)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	select {
	case <-done:
	case <-interrupt:
		fmt.Println("Closing connection...")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func printMessage(data []byte) {
	var msg incoming
	if err := json.Unmarshal(data, &msg); err != nil {
		fmt.Printf("? %s\n", string(data))
		return
	}

	switch msg.Type {
	case "pong":
		fmt.Printf("pong at %s\n", msg.Timestamp)
	case "error":
		fmt.Printf("server error: %s\n", msg.Message)
	case "event":
		printEvent(msg.Event)
	default:
		fmt.Printf("%s: %s\n", msg.Type, string(data))
	}
}

func printEvent(event domain.Event) {
	ts := event.Timestamp.Local().Format(time.Kitchen)
	switch event.Type {
	case domain.EventAudioReady:
		fmt.Printf("[%s] audio ready: %s (%.1fs)\n", ts, event.Filename, event.DurationSeconds)
	case domain.EventConversionFailed:
		fmt.Printf("[%s] conversion failed: %s: %s\n", ts, event.Filename, event.Error)
	case domain.EventQRGenerated:
		fmt.Printf("[%s] qr generated: %s (%s)\n", ts, event.Filename, event.ContentType)
	default:
		fmt.Printf("[%s] %s\n", ts, event.Type)
	}
}
