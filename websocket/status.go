package websocket

import (
	"net/http"

	"github.com/go-chi/render"
)

// HandleStatus reports the connected clients
func (manager *Manager) HandleStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": 0,
		"msg":    "ok",
		"data":   map[string]int{"clients": manager.ClientCount()},
	})
}
