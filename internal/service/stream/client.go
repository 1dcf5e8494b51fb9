package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"TrendPulse/internal/domain/models"
	drepo "TrendPulse/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements a SnapshotStream over the collaborator's WebSocket feed.
// The feed pushes full indicator snapshots whenever the upstream pipeline
// finishes recomputing an instrument.
type Client struct {
	url            string
	tickers        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	// mu guards conn and connected; Reconnect swaps the connection while the
	// ping and read goroutines are still running.
	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
}

// New creates a new snapshot stream client.
func New(url string, tickers []string, reconnectDelay, pingInterval time.Duration) drepo.SnapshotStream {
	return &Client{
		url:            url,
		tickers:        tickers,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

func (c *Client) current() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("stream connect: %w", err)
	}
	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()
	log.Printf("stream: connected")
	return nil
}

// Subscribe subscribes to configured tickers.
func (c *Client) Subscribe(ctx context.Context) error {
	conn := c.current()
	if conn == nil {
		return fmt.Errorf("stream not connected")
	}
	for _, t := range c.tickers {
		msg := map[string]string{"type": "subscribe", "ticker": t}
		if err := conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", t, err)
		}
		log.Printf("stream: subscribed %s", t)
	}
	return nil
}

type feedMessage struct {
	Type string                  `json:"type"`
	Data *models.SnapshotPayload `json:"data"`
}

// Read streams snapshot payloads and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.SnapshotPayload, <-chan error) {
	snapshots := make(chan *models.SnapshotPayload, 64)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if conn := c.current(); conn != nil {
					_ = conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(snapshots)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				conn := c.current()
				if conn == nil {
					errs <- fmt.Errorf("stream conn nil")
					return
				}
				_, b, err := conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("stream read: %w", err)
					return
				}
				var m feedMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-snapshot frames
					continue
				}
				if m.Type != "snapshot" || m.Data == nil {
					continue
				}
				select {
				case snapshots <- m.Data:
				default:
					// drop on backpressure; a fresher snapshot follows soon
				}
			}
		}
	}()

	return snapshots, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.connected = false
	c.mu.Unlock()
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}
