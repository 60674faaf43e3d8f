// Package websocket provides JSON echo over WebSocket connections.
package websocket
