// Package preview serves one mounted app over HTTP.
//
// The app is rendered into an in-memory document driven by a loop.Loop. All
// DOM access, including reads made by HTTP handlers, runs as loop tasks, so
// the document is only ever touched from the loop goroutine.
//
// Routes:
//
//	GET  /          page with the current markup and a small live client
//	GET  /markup    inner HTML of the mount container
//	GET  /status    render passes, history lengths and connected clients
//	POST /dispatch  {"selector": "#inc", "type": "click", "value": "", "key": ""}
//	POST /undo      undo one step (404 without a history)
//	POST /redo      redo one step (404 without a history)
//	GET  /ws        websocket stream of markup after every render pass
//	GET  /metrics   Prometheus metrics when a registry is configured
package preview
