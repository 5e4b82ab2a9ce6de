package routers

import (
	"fmt"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/delivery/http/middlewares"
	"medilab-service/internal/app/services/labtests"
	"medilab-service/internal/app/services/worklists"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	labTestController *labtests.LabTestController,
	worklistController *worklists.WorklistController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimitWindow := time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, rateLimitWindow)
	router.Use(rateLimiter)

	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/lab", func(r chi.Router) {
				attachLabTestRoutes(r, middlewares, labTestController)
				attachWorklistRoutes(r, middlewares, worklistController)
			})
		})
	})
}
