package ws

import (
	"net/http"
	"sync"

	"backend/entity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// OrderEvent is pushed to every connected client when an order is
// created or changes status.
type OrderEvent struct {
	Event string        `json:"event"`
	Order *entity.Order `json:"order"`
}

// OrderHub fans order lifecycle events out to websocket clients. It
// implements services.OrderNotifier.
type OrderHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewOrderHub() *OrderHub {
	return &OrderHub{clients: make(map[*websocket.Conn]bool)}
}

// GET /ws/orders
func (h *OrderHub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// clients only listen; reads just detect disconnects
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *OrderHub) broadcast(ev OrderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(ev); err != nil {
			logrus.WithError(err).Warn("ws write failed, dropping client")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *OrderHub) OrderCreated(o *entity.Order) {
	h.broadcast(OrderEvent{Event: "order.created", Order: o})
}

func (h *OrderHub) OrderUpdated(o *entity.Order) {
	h.broadcast(OrderEvent{Event: "order.updated", Order: o})
}
