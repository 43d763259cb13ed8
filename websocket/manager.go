package websocket

import (
	"context"
	"encoding/json"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/ETL/utils"
	"github.com/LilVoxy/migration_dashboard/figure"
	"github.com/LilVoxy/migration_dashboard/metrics"
	"github.com/LilVoxy/migration_dashboard/processor"
)

// NewManager creates a manager serving figures from cache
func NewManager(ds *models.Dataset, cache *processor.FigureCache, lenient bool, logger *utils.ETLLogger) *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		cache:      cache,
		controls:   figure.BuildControls(ds),
		lenient:    lenient,
		logger:     logger,
	}
}

// Run owns client registration until ctx is cancelled.
// On cancel every client gets a shutdown message and is closed.
func (manager *Manager) Run(ctx context.Context) {
	defer close(manager.done)

	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client.ID] = client
			count := len(manager.clients)
			manager.mu.Unlock()
			metrics.WSClients.Set(float64(count))
			manager.logger.Info("client %s connected (%d total)", client.ID, count)

		case client := <-manager.unregister:
			manager.remove(client)

		case <-ctx.Done():
			if data, err := json.Marshal(Message{Type: TypeShutdown}); err == nil {
				manager.sendAll(data)
			}
			manager.mu.Lock()
			for id, client := range manager.clients {
				client.close()
				delete(manager.clients, id)
			}
			manager.mu.Unlock()
			metrics.WSClients.Set(0)
			manager.logger.Info("websocket manager stopped")
			return
		}
	}
}

// ClientCount returns the number of registered clients
func (manager *Manager) ClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}

// Done is closed when Run returns
func (manager *Manager) Done() <-chan struct{} {
	return manager.done
}

func (manager *Manager) remove(client *Client) {
	manager.mu.Lock()
	_, ok := manager.clients[client.ID]
	if ok {
		delete(manager.clients, client.ID)
	}
	count := len(manager.clients)
	manager.mu.Unlock()

	if ok {
		client.close()
		metrics.WSClients.Set(float64(count))
		manager.logger.Info("client %s disconnected (%d total)", client.ID, count)
	}
}

// sendAll drops clients whose buffers are full
func (manager *Manager) sendAll(message []byte) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	for id, client := range manager.clients {
		if !client.enqueue(message) {
			client.close()
			delete(manager.clients, id)
			manager.logger.Warn("client %s is not reading, dropped", id)
		}
	}
	metrics.WSClients.Set(float64(len(manager.clients)))
}

// enqueue reports false when the buffer is full or the client is closed
func (c *Client) enqueue(message []byte) bool {
	select {
	case <-c.quit:
		return false
	default:
	}
	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.quit)
	})
}
