// Package api implements the HTTP REST interface for the puzzle server.
//
// The server wraps a service.GameService behind a gorilla/mux router and
// exposes session management, game operations, and level configuration
// endpoints under /api. A WebSocket endpoint at /ws streams world snapshots
// to connected clients after every mutating operation.
//
// # Routes
//
// Session management:
//
//	POST   /api/sessions            create a session (optional config_id)
//	GET    /api/sessions            list sessions (sort, order, limit params)
//	GET    /api/sessions/unified    multi-session view for dashboards
//	GET    /api/sessions/{id}       fetch one session
//	DELETE /api/sessions/{id}       delete a session
//
// Game operations:
//
//	GET  /api/sessions/{id}/state      current world snapshot
//	POST /api/sessions/{id}/move       single step {"direction": "up"}
//	POST /api/sessions/{id}/bulk-move  sequence of steps {"moves": [...]}
//	POST /api/sessions/{id}/undo       revert the most recent successful step
//	POST /api/sessions/{id}/reset      rebuild the world from its config
//	GET  /api/sessions/{id}/history    paginated action history
//
// Configuration:
//
//	GET  /api/configs         list available level configs
//	GET  /api/configs/{name}  fetch one config
//	POST /api/configs         save a new config
//
// All handlers respond with JSON. Errors are returned as {"error": "..."}
// with an appropriate HTTP status code.
//
// # Broadcasting
//
// After move, bulk-move, undo, and reset the handler pushes the resulting
// snapshot to every WebSocket client subscribed to that session via
// Hub.BroadcastToSession. REST responses and WebSocket pushes carry the
// same snapshot structure, so clients can mix the two freely.
package api
