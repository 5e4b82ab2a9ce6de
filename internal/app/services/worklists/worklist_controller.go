package worklists

import (
	"context"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

type WorklistController struct {
	WorklistUsecase contracts.WorklistUsecase
	Log             *zap.Logger
}

var (
	worklistControllerInstance *WorklistController
	onceWorklistController     sync.Once
)

func NewWorklistController(worklistUsecase contracts.WorklistUsecase, logger *zap.Logger) *WorklistController {
	onceWorklistController.Do(func() {
		worklistControllerInstance = &WorklistController{
			WorklistUsecase: worklistUsecase,
			Log:             logger,
		}
	})
	return worklistControllerInstance
}

func (c *WorklistController) GetPendingWorklist(w http.ResponseWriter, r *http.Request) {
	searchTerm := r.URL.Query().Get("search")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := c.WorklistUsecase.PendingWorklist(ctx, searchTerm)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetWorklistSuccessMessage, orders)
}

func (c *WorklistController) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stats, err := c.WorklistUsecase.DashboardStats(ctx)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardStatsSuccessMessage, stats)
}
