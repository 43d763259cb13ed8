package websocket

import (
	"net/http"

	"github.com/google/uuid"
)

// HandleConnections upgrades the request and starts the client pumps
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		manager.logger.Error("websocket upgrade from %s: %v", r.RemoteAddr, err)
		return
	}

	client := &Client{
		ID:     uuid.New().String(),
		Socket: conn,
		Send:   make(chan []byte, sendBufferSize),
		quit:   make(chan struct{}),
	}

	select {
	case manager.register <- client:
	case <-manager.done:
		conn.Close()
		return
	}

	controls := manager.controls
	manager.reply(client, Message{Type: TypeControls, ClientID: client.ID, Controls: &controls})

	go client.writePump(manager)
	go client.readPump(manager)
}
