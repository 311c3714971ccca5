package router

import (
	"net/http"

	"portfolio-backend/internal/api"
	"portfolio-backend/internal/websocket"
)

// WebsocketRoutes registers the chat upgrade endpoint. The handler manages its
// own connection lifecycle, so it bypasses the queue and middleware stack.
func WebsocketRoutes(prefix string, handler *websocket.Handler) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		mux.HandleFunc(prefix+"/assistant", handler.Chat)
	}
}
