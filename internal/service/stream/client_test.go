package stream

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestSubscribeRequiresConnection(t *testing.T) {
	c := New("ws://localhost:0/feed", []string{"AAPL"}, time.Millisecond, time.Second)
	if err := c.Subscribe(context.Background()); err == nil {
		t.Fatalf("expected error subscribing before connect")
	}
}

func TestCloseIsSafeConcurrently(t *testing.T) {
	c := New("ws://localhost:0/feed", []string{"AAPL"}, time.Millisecond, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Close()
		}()
		go func() {
			defer wg.Done()
			_ = c.IsConnected()
		}()
	}
	wg.Wait()

	if c.IsConnected() {
		t.Fatalf("expected disconnected state after close")
	}
}
