package router

import (
	"net/http"

	"portfolio-backend/internal/api"
	"portfolio-backend/internal/api/endpoints"
	"portfolio-backend/internal/api/middleware"
	authservice "portfolio-backend/internal/service/auth"
	chatlogservice "portfolio-backend/internal/service/chatlog"
	contactservice "portfolio-backend/internal/service/contact"
)

func AdminRoutes(prefix string, resolver chatlogservice.Resolver) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		authService := authservice.New(s.Database())
		contactService := contactservice.New(s.Database())
		chatlogService := chatlogservice.New(s.Database(), resolver)
		adminEndpoints := endpoints.NewAdminEndpoints(authService, contactService, chatlogService)

		mux.HandleFunc(prefix+"/login", s.MakeHTTPHandleFunc(adminEndpoints.Login))
		mux.HandleFunc(prefix+"/refresh", s.MakeHTTPHandleFunc(adminEndpoints.Refresh))
		mux.HandleFunc(prefix+"/contacts", s.MakeHTTPHandleFunc(adminEndpoints.ListContacts, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/chat-logs", s.MakeHTTPHandleFunc(adminEndpoints.ListChatLogs, middleware.ValidateAdminJWT))
	}
}
