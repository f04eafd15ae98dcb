package handlers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/frontlab/todo-api/models"
)

// event is one change notification pushed to SSE subscribers.
type event struct {
	Type string
	Todo models.Todo
}

// Broker fans mutation events out to connected SSE clients. Subscriber
// channels are buffered; a slow client drops events rather than blocking
// the mutating handler.
type Broker struct {
	mu   sync.Mutex
	subs []chan event
}

func NewBroker() *Broker {
	return &Broker{}
}

func (b *Broker) subscribe() chan event {
	ch := make(chan event, 16)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

func (b *Broker) unsubscribe(ch chan event) {
	b.mu.Lock()
	for i, s := range b.subs {
		if s == ch {
			b.subs[i] = nil
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			break
		}
	}
	b.mu.Unlock()
}

// Publish notifies every subscriber of a todo change. Nil brokers are
// ignored so handlers can run without a feed in tests.
func (b *Broker) Publish(eventType string, todo models.Todo) {
	if b == nil {
		return
	}
	b.mu.Lock()
	for _, ch := range b.subs {
		select {
		case ch <- event{Type: eventType, Todo: todo}:
		default:
		}
	}
	b.mu.Unlock()
}

func formatSSEMessage(eventType string, data any) (string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(map[string]any{"data": data}); err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("event: %s\n", eventType))
	sb.WriteString(fmt.Sprintf("retry: %d\n", 15000))
	sb.WriteString(fmt.Sprintf("data: %v\n\n", buf.String()))

	return sb.String(), nil
}

// HandleTodoEvents godoc
// @Summary Stream todo change events over SSE
// @Tags Todos
// @Produce text/event-stream
// @Security ApiKeyAuth
// @Router /todos/events [get]
func (h *TodoHandler) HandleTodoEvents(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	ch := h.events.subscribe()
	notify := c.Context().Done()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.events.unsubscribe(ch)

		keepAliveTickler := time.NewTicker(15 * time.Second)
		defer keepAliveTickler.Stop()

		for {
			select {
			case <-notify:
				return
			case ev := <-ch:
				msg, err := formatSSEMessage(ev.Type, ev.Todo)
				if err != nil {
					log.Printf("Error formatting sse message: %v\n", err)
					continue
				}
				if _, err := fmt.Fprint(w, msg); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepAliveTickler.C:
				fmt.Fprint(w, ":keepalive\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
