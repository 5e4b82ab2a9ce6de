package routers

import (
	"medilab-service/internal/app/delivery/http/middlewares"
	"medilab-service/internal/app/services/worklists"

	"github.com/go-chi/chi/v5"
)

func attachWorklistRoutes(router chi.Router, middlewares *middlewares.Middlewares, worklistController *worklists.WorklistController) {
	router.With(middlewares.Authenticate).Get("/worklist", worklistController.GetPendingWorklist)
	router.With(middlewares.Authenticate).Get("/dashboard-stats", worklistController.GetDashboardStats)
}
