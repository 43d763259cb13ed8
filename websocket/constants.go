package websocket

import (
	"time"
)

const (
	// time allowed to write a message to the client
	writeWait = 10 * time.Second

	// time allowed to read the next pong from the client
	pongWait = 60 * time.Second

	// must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024

	// buffered outbound messages per client
	sendBufferSize = 16
)

// Message types
const (
	TypeSelect   = "select"
	TypeFigure   = "figure"
	TypeControls = "controls"
	TypePing     = "ping"
	TypePong     = "pong"
	TypeError    = "error"
	TypeShutdown = "shutdown"
)

const transportWS = "ws"
