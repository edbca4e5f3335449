package handlers

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"flight-planner/models"

	"github.com/gofiber/websocket/v2"
)

type Client struct {
	Conn       *websocket.Conn
	ClientType string // "agent" or "web"
	AgentID    string
}

// ClientManager - websocket hub for flight agents and web clients
type ClientManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan models.WebSocketMessage
	register   chan *Client
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
	started    time.Time
}

// NewClientManager - hub; Start must run for messages to flow
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan models.WebSocketMessage, 100),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn, 16),
		started:    time.Now(),
	}
}

// Start - hub loop
func (manager *ClientManager) Start() {
	for {
		select {
		case client := <-manager.register:
			manager.mutex.Lock()
			manager.clients[client.Conn] = client
			manager.mutex.Unlock()
			log.Printf("client registered: %s (%s)", client.ClientType, client.Conn.RemoteAddr())

		case conn := <-manager.unregister:
			manager.mutex.Lock()
			if client, ok := manager.clients[conn]; ok {
				delete(manager.clients, conn)
				_ = conn.Close()
				log.Printf("client unregistered: %s (%s)", client.ClientType, conn.RemoteAddr())
			}
			manager.mutex.Unlock()

		case message := <-manager.broadcast:
			manager.handleBroadcast(message)
		}
	}
}

// recipient - client type a message type is delivered to
func recipient(messageType string) string {
	switch messageType {
	case models.MessageTypeWaypoints:
		return models.ClientTypeAgent
	case models.MessageTypePathUpdate,
		models.MessageTypePosition,
		models.MessageTypeSystemInfo:
		return models.ClientTypeWeb
	}
	return ""
}

func (manager *ClientManager) handleBroadcast(message models.WebSocketMessage) {
	target := recipient(message.Type)
	if target == "" {
		log.Printf("unknown message type: %s", message.Type)
		return
	}

	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	for conn, client := range manager.clients {
		if client.ClientType != target {
			continue
		}
		if err := conn.WriteJSON(message); err != nil {
			log.Printf("send failed (%s): %v", client.ClientType, err)
			go func(c *websocket.Conn) { manager.unregister <- c }(conn)
		}
	}
}

// BroadcastMessage - queue a message; drops it when the hub is saturated
func (manager *ClientManager) BroadcastMessage(msg models.WebSocketMessage) {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixMilli()
	}
	select {
	case manager.broadcast <- msg:
	default:
		log.Println("⚠️ broadcast channel full, message dropped")
	}
}

// GetClientCount - connected clients per type
func (manager *ClientManager) GetClientCount() map[string]int {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	count := map[string]int{
		models.ClientTypeAgent: 0,
		models.ClientTypeWeb:   0,
	}
	for _, client := range manager.clients {
		count[client.ClientType]++
	}
	return count
}

// WebSocketHandler - websocket endpoints
type WebSocketHandler struct {
	manager *ClientManager
	agents  *AgentManager
}

func NewWebSocketHandler(manager *ClientManager, agents *AgentManager) *WebSocketHandler {
	return &WebSocketHandler{manager: manager, agents: agents}
}

// HandleAgentWebSocket - flight agent connection; ?agent_id= names the agent
func (h *WebSocketHandler) HandleAgentWebSocket(c *websocket.Conn) {
	agentID := c.Query("agent_id", "agent-"+c.RemoteAddr().String())
	if _, err := h.agents.Register(agentID); err != nil {
		log.Printf("agent registration failed: %v", err)
		_ = c.Close()
		return
	}

	h.manager.register <- &Client{Conn: c, ClientType: models.ClientTypeAgent, AgentID: agentID}
	defer func() {
		h.agents.Remove(agentID)
		h.manager.unregister <- c
	}()

	for {
		var msg models.WebSocketMessage
		if err := c.ReadJSON(&msg); err != nil {
			log.Printf("agent %s read error: %v", agentID, err)
			break
		}

		switch msg.Type {
		case models.MessageTypePosition:
			pos, err := decodePosition(msg.Data)
			if err != nil {
				log.Printf("agent %s sent a bad position: %v", agentID, err)
				continue
			}
			if err := h.agents.UpdatePosition(agentID, pos); err != nil {
				log.Printf("⚠️ %v", err)
				continue
			}
			h.manager.BroadcastMessage(models.WebSocketMessage{
				Type: models.MessageTypePosition,
				Data: map[string]interface{}{
					"agent_id": agentID,
					"position": pos,
				},
				Timestamp: msg.Timestamp,
			})
		default:
			log.Printf("agent %s: unknown message type %s", agentID, msg.Type)
		}
	}
}

// HandleWebClientWebSocket - display client connection, receive only
func (h *WebSocketHandler) HandleWebClientWebSocket(c *websocket.Conn) {
	welcome := models.WebSocketMessage{
		Type: models.MessageTypeSystemInfo,
		Data: models.SystemInfo{
			ConnectedClients: h.manager.GetClientCount(),
			Uptime:           int64(time.Since(h.manager.started).Seconds()),
		},
		Timestamp: time.Now().UnixMilli(),
	}
	_ = c.WriteJSON(welcome)

	h.manager.register <- &Client{Conn: c, ClientType: models.ClientTypeWeb}
	defer func() {
		h.manager.unregister <- c
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Printf("web client read error: %v", err)
			break
		}
	}
}

func decodePosition(data interface{}) (models.PositionData, error) {
	var pos models.PositionData
	raw, err := json.Marshal(data)
	if err != nil {
		return pos, err
	}
	err = json.Unmarshal(raw, &pos)
	return pos, err
}
