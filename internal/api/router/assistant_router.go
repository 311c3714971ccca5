package router

import (
	"net/http"

	"portfolio-backend/internal/api"
	"portfolio-backend/internal/api/endpoints"
	"portfolio-backend/internal/assistant"
	chatlogservice "portfolio-backend/internal/service/chatlog"
)

// AssistantRoutes takes the assistant service pre-built because its
// construction can fail on missing provider credentials; mains resolve that
// before the server starts.
func AssistantRoutes(prefix string, assistantService *assistant.Service, resolver chatlogservice.Resolver) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		logService := chatlogservice.New(s.Database(), resolver)
		assistantEndpoints := endpoints.NewAssistantEndpoints(assistantService, logService)

		mux.HandleFunc(prefix+"/assistant", s.MakeStreamingHandleFunc(assistantEndpoints.Stream))
		mux.HandleFunc(prefix+"/assistant/log", s.MakeHTTPHandleFunc(assistantEndpoints.Log))
	}
}
