package handlers

import (
	"errors"
	"io"
	"sync"
	"time"

	"blog-backend/internal/metrics"
	"blog-backend/internal/models"
	"blog-backend/internal/utils"
)

const (
	// feedQueueSize bounds the events buffered per subscriber. A subscriber
	// whose queue is full is disconnected.
	feedQueueSize = 64
	feedWriteWait = 10 * time.Second
)

var (
	errNotSubscribed = errors.New("feed: connection not subscribed")
	errQueueFull     = errors.New("feed: subscriber queue full")
)

// jsonWriter is the part of a websocket connection the hub writes to.
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

type subscriber struct {
	UserID string
	Conn   jsonWriter
	send   chan interface{}
}

// writeLoop is the only writer of sub.Conn. It exits once send is closed.
func (sub *subscriber) writeLoop(connID string) {
	broken := false
	for v := range sub.send {
		if broken {
			continue
		}
		if d, ok := sub.Conn.(writeDeadliner); ok {
			_ = d.SetWriteDeadline(time.Now().Add(feedWriteWait))
		}
		if err := sub.Conn.WriteJSON(v); err != nil {
			// The read loop sees the close and unsubscribes.
			utils.LogError(err, "FeedHub.write "+connID)
			closeConn(sub.Conn)
			broken = true
		}
	}
}

func closeConn(conn jsonWriter) {
	if c, ok := conn.(io.Closer); ok {
		_ = c.Close()
	}
}

// FeedHub fans post events out to live feed subscribers. Writes happen on a
// goroutine per subscriber so a stalled reader never blocks publishers.
type FeedHub struct {
	// connID -> subscriber
	subs map[string]*subscriber
	mu   sync.Mutex
}

func NewFeedHub() *FeedHub {
	return &FeedHub{subs: make(map[string]*subscriber)}
}

// Subscribe registers a connection. userID is empty for anonymous readers.
func (h *FeedHub) Subscribe(connID, userID string, conn jsonWriter) {
	sub := &subscriber{UserID: userID, Conn: conn, send: make(chan interface{}, feedQueueSize)}

	h.mu.Lock()
	if old, ok := h.subs[connID]; ok {
		close(old.send)
	} else {
		metrics.FeedSubscribers.Inc()
	}
	h.subs[connID] = sub
	h.mu.Unlock()

	go sub.writeLoop(connID)
}

func (h *FeedHub) Unsubscribe(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(connID)
}

// remove must be called with h.mu held.
func (h *FeedHub) remove(connID string) {
	if sub, ok := h.subs[connID]; ok {
		delete(h.subs, connID)
		close(sub.send)
		metrics.FeedSubscribers.Dec()
	}
}

// Publish queues event for every subscriber and disconnects the ones that
// have fallen too far behind.
func (h *FeedHub) Publish(event models.FeedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for connID, sub := range h.subs {
		select {
		case sub.send <- event:
		default:
			utils.LogError(errQueueFull, "FeedHub.Publish "+connID)
			h.remove(connID)
			closeConn(sub.Conn)
		}
	}
}

// Send queues v for a single subscriber.
func (h *FeedHub) Send(connID string, v interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subs[connID]
	if !ok {
		return errNotSubscribed
	}
	select {
	case sub.send <- v:
		return nil
	default:
		return errQueueFull
	}
}

func (h *FeedHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// CountUserConnections returns how many connections belong to userID.
func (h *FeedHub) CountUserConnections(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := 0
	for _, sub := range h.subs {
		if sub.UserID == userID {
			count++
		}
	}
	return count
}
