package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// writePump is the only writer of the connection
func (c *Client) writePump(manager *Manager) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Socket.Close()
	}()

	for {
		select {
		case message := <-c.Send:
			c.Socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Socket.WriteMessage(websocket.TextMessage, message); err != nil {
				manager.logger.Debug("write to client %s: %v", c.ID, err)
				return
			}

		case <-c.quit:
			// the shutdown notice may still be queued
			if c.drain() {
				c.Socket.SetWriteDeadline(time.Now().Add(writeWait))
				c.Socket.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			}
			return

		case <-ticker.C:
			c.Socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) drain() bool {
	for {
		select {
		case message := <-c.Send:
			c.Socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Socket.WriteMessage(websocket.TextMessage, message); err != nil {
				return false
			}
		default:
			return true
		}
	}
}
