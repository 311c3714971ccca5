package router

import (
	"net/http"

	"portfolio-backend/internal/api"
	"portfolio-backend/internal/api/endpoints"
	contactservice "portfolio-backend/internal/service/contact"
)

func ContactRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := contactservice.New(s.Database())
		contactEndpoints := endpoints.NewContactEndpoints(service)

		mux.HandleFunc(prefix+"/contact", s.MakeHTTPHandleFunc(contactEndpoints.Contact))
	}
}
