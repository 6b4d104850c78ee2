// Package kds fans register and back-office events out to connected
// websocket clients.
package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/utils"
)

// Event types
const (
	EventOrderCreated    = "order_created"
	EventOrderUpdate     = "order_update"
	EventCustomerUpdate  = "customer_update"
	EventNotification    = "notification"
	EventDashboardUpdate = "dashboard_update"
)

const (
	// SendBuffer is how many events may queue for one client before it is
	// dropped as too slow.
	SendBuffer = 64
	writeWait  = 10 * time.Second
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client is the write side of one websocket connection.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// *websocket.Conn satisfies this; test clients need not.
type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// Subscriber describes who is listening on a connection.
type Subscriber struct {
	Role     string
	BranchID string
}

// BackOffice reports whether the subscriber sees every branch and customer data.
func (s Subscriber) BackOffice() bool {
	return s.Role == models.RoleSuperAdmin || s.Role == models.RoleManager
}

func (s Subscriber) seesBranch(branchID string) bool {
	return s.BackOffice() || branchID == "" || s.BranchID == branchID
}

type peer struct {
	Subscriber
	send chan []byte
}

// Hub holds connected clients. Each client has its own queue and writer
// goroutine; Broadcast never waits on a socket.
type Hub struct {
	clients map[Client]*peer
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[Client]*peer)}
}

var defaultHub = NewHub()

// Default is the process-wide hub used by the HTTP layer.
func Default() *Hub {
	return defaultHub
}

func (h *Hub) Register(conn Client, sub Subscriber) {
	p := &peer{Subscriber: sub, send: make(chan []byte, SendBuffer)}

	h.mutex.Lock()
	h.clients[conn] = p
	h.mutex.Unlock()

	go h.writeLoop(conn, p)
}

func (h *Hub) writeLoop(conn Client, p *peer) {
	for data := range p.send {
		if d, ok := conn.(writeDeadliner); ok {
			d.SetWriteDeadline(time.Now().Add(writeWait))
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error writing to %s client: %v", p.Role, err)
			h.Unregister(conn)
			return
		}
	}
}

// Unregister removes and closes conn. Calling it twice is harmless.
func (h *Hub) Unregister(conn Client) {
	h.mutex.Lock()
	p, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		close(p.send)
	}
	h.mutex.Unlock()

	if ok {
		conn.Close()
	}
}

func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) BroadcastOrderCreated(order models.Order) {
	h.broadcast(Message{Event: EventOrderCreated, Data: order}, func(s Subscriber) bool {
		return s.seesBranch(order.BranchID)
	})
}

func (h *Hub) BroadcastOrderUpdate(order models.Order) {
	h.broadcast(Message{Event: EventOrderUpdate, Data: order}, func(s Subscriber) bool {
		return s.seesBranch(order.BranchID)
	})
}

// BroadcastCustomerUpdate carries phone numbers, so only back office gets it.
func (h *Hub) BroadcastCustomerUpdate(customer models.Customer) {
	h.broadcast(Message{Event: EventCustomerUpdate, Data: customer}, Subscriber.BackOffice)
}

func (h *Hub) BroadcastNotification(n models.Notification) {
	h.broadcast(Message{Event: EventNotification, Data: n}, func(s Subscriber) bool {
		return s.seesBranch(n.BranchID)
	})
}

func (h *Hub) BroadcastDashboardUpdate(data interface{}) {
	h.broadcast(Message{Event: EventDashboardUpdate, Data: data}, Subscriber.BackOffice)
}

// Broadcast queues msg for every client.
func (h *Hub) Broadcast(msg Message) {
	h.broadcast(msg, nil)
}

// broadcast queues msg for the clients allow accepts. A client whose queue
// is full is dropped.
func (h *Hub) broadcast(msg Message, allow func(Subscriber) bool) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	var slow []Client
	h.mutex.Lock()
	utils.InfoLogger.Debugf("Broadcasting %s to up to %d clients", msg.Event, len(h.clients))
	for conn, p := range h.clients {
		if allow != nil && !allow(p.Subscriber) {
			continue
		}
		select {
		case p.send <- data:
		default:
			utils.ErrorLogger.Printf("Dropping slow %s client, %s not delivered", p.Role, msg.Event)
			delete(h.clients, conn)
			close(p.send)
			slow = append(slow, conn)
		}
	}
	h.mutex.Unlock()

	for _, conn := range slow {
		conn.Close()
	}
}
