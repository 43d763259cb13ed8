package websocket

import (
	"encoding/json"

	"github.com/LilVoxy/migration_dashboard/figure"
	"github.com/LilVoxy/migration_dashboard/metrics"
)

// HandleMessage answers one client message. Undecodable input is logged and ignored.
func (manager *Manager) HandleMessage(client *Client, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		manager.logger.Debug("client %s sent undecodable message: %v", client.ID, err)
		return
	}

	switch msg.Type {
	case TypePing:
		manager.reply(client, Message{Type: TypePong})

	case TypeSelect:
		manager.handleSelect(client, msg.Metric)

	case TypeControls:
		controls := manager.controls
		manager.reply(client, Message{Type: TypeControls, ClientID: client.ID, Controls: &controls})

	default:
		manager.reply(client, Message{Type: TypeError, Error: "unknown message type: " + msg.Type})
	}
}

func (manager *Manager) handleSelect(client *Client, token string) {
	m, fellBack, err := figure.Resolve(token, manager.lenient)
	if err != nil {
		metrics.FigureRequests.WithLabelValues(transportWS, "unknown", metrics.OutcomeRejected).Inc()
		manager.reply(client, Message{Type: TypeError, Metric: token, Error: err.Error()})
		return
	}

	outcome := metrics.OutcomeOK
	if fellBack {
		outcome = metrics.OutcomeFallback
		manager.logger.Warn("client %s: unknown metric %q, falling back to %s", client.ID, token, m.Token())
	}

	body, err := manager.cache.JSON(m)
	if err != nil {
		manager.logger.Error("figure %s: %v", m.Token(), err)
		manager.reply(client, Message{Type: TypeError, Metric: m.Token(), Error: "figure unavailable"})
		return
	}

	metrics.FigureRequests.WithLabelValues(transportWS, m.Token(), outcome).Inc()
	manager.reply(client, Message{Type: TypeFigure, Metric: m.Token(), Figure: body})
}

func (manager *Manager) reply(client *Client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		manager.logger.Error("encode %s message: %v", msg.Type, err)
		return
	}
	if !client.enqueue(data) {
		manager.logger.Warn("client %s: %s message dropped", client.ID, msg.Type)
	}
}
