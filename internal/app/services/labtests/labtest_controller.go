package labtests

import (
	"context"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/exceptions"
	"medilab-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type LabTestController struct {
	LabTestUsecase contracts.LabTestUsecase
	Log            *zap.Logger
}

var (
	labTestControllerInstance *LabTestController
	onceLabTestController     sync.Once
)

func NewLabTestController(labTestUsecase contracts.LabTestUsecase, logger *zap.Logger) *LabTestController {
	onceLabTestController.Do(func() {
		labTestControllerInstance = &LabTestController{
			LabTestUsecase: labTestUsecase,
			Log:            logger,
		}
	})
	return labTestControllerInstance
}

func (c *LabTestController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.CreateLabOrder)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	c.Log.Info("creating lab order",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("test_type", request.TestType),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := c.LabTestUsecase.CreateOrder(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateLabOrderSuccessMessage, order)
}

func (c *LabTestController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamMissing(nil, "id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := c.LabTestUsecase.FindOrderByID(ctx, orderID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetLabOrderSuccessMessage, order)
}

func (c *LabTestController) ResolveBarcode(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")
	if barcode == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamMissing(nil, "barcode"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := c.LabTestUsecase.ResolveBarcode(ctx, barcode)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResolveBarcodeSuccessMessage, order)
}

func (c *LabTestController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamMissing(nil, "id"))
		return
	}

	request := new(requests.UpdateLabOrderStatus)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.OrderID = orderID

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	c.Log.Info("updating lab order status",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingStatusKey, request.Status),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := c.LabTestUsecase.UpdateStatus(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateStatusSuccessMessage, order)
}

func (c *LabTestController) RecordSpecimen(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamMissing(nil, "id"))
		return
	}

	request := new(requests.RecordSpecimen)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.OrderID = orderID

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := c.LabTestUsecase.RecordSpecimen(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordSpecimenSuccessMessage, order)
}

func (c *LabTestController) CompleteTest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamMissing(nil, "id"))
		return
	}

	request := new(requests.CompleteTest)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.OrderID = orderID

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	c.Log.Info("completing lab test",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := c.LabTestUsecase.CompleteTest(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CompleteTestSuccessMessage, order)
}

func (c *LabTestController) ListOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	request := &requests.ListLabOrders{
		Status:   query.Get("status"),
		Priority: query.Get("priority"),
		Search:   query.Get("search"),
		SortBy:   query.Get("sort_by"),
	}

	err := utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := c.LabTestUsecase.ListOrders(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListLabOrdersSuccessMessage, orders)
}
