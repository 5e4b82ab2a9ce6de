package routers

import (
	"medilab-service/internal/app/delivery/http/middlewares"
	"medilab-service/internal/app/services/labtests"

	"github.com/go-chi/chi/v5"
)

func attachLabTestRoutes(router chi.Router, middlewares *middlewares.Middlewares, labTestController *labtests.LabTestController) {
	router.With(middlewares.Authenticate).Post("/test-results", labTestController.CreateOrder)
	router.With(middlewares.Authenticate).Get("/test-results", labTestController.ListOrders)
	router.With(middlewares.Authenticate).Get("/test-results/{id}", labTestController.GetOrderByID)
	router.With(middlewares.Authenticate).Get("/barcode/{barcode}", labTestController.ResolveBarcode)
	router.With(middlewares.Authenticate).Patch("/test-results/{id}/status", labTestController.UpdateStatus)
	router.With(middlewares.Authenticate).Patch("/test-results/{id}/specimen", labTestController.RecordSpecimen)
	router.With(middlewares.Authenticate).Post("/test-results/{id}/complete", labTestController.CompleteTest)
}
