// Package websocket provides real-time snapshot streaming for puzzle sessions.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Automatic snapshot broadcasting after every move, undo and reset
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a pair of
// dedicated goroutines (readPump/writePump) that manage reading, writing,
// and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//
//	{
//	  "session_id": "ab3f",
//	  "event": "snapshot",
//	  "snapshot": { ... engine.WorldSnapshot ... }
//	}
//
// Clients do not send game commands over the socket; moves go through the
// REST API, and the resulting snapshot is pushed here. Incoming frames are
// read only to keep the connection alive.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=ab3f) when establishing the connection.
// Snapshot updates are broadcast only to clients subscribed to that session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a successful move:
//	hub.BroadcastToSession(sessionID, snapshot)
package websocket
