package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/LilVoxy/migration_dashboard/ETL/utils"
	"github.com/LilVoxy/migration_dashboard/figure"
	"github.com/LilVoxy/migration_dashboard/processor"
)

// Message is exchanged in both directions over the socket
type Message struct {
	Type     string           `json:"type"`
	Metric   string           `json:"metric,omitempty"`
	Figure   json.RawMessage  `json:"figure,omitempty"`
	Controls *figure.Controls `json:"controls,omitempty"`
	ClientID string           `json:"clientId,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Client is one browser connection
type Client struct {
	ID     string
	Socket *websocket.Conn
	Send   chan []byte

	quit      chan struct{}
	closeOnce sync.Once
}

// Manager tracks the connected clients and answers their selections
type Manager struct {
	clients map[string]*Client
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	cache    *processor.FigureCache
	controls figure.Controls
	lenient  bool
	logger   *utils.ETLLogger
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // any origin, same as the HTTP API
	},
}
