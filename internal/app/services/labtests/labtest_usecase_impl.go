package labtests

import (
	"context"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"medilab-service/internal/pkg/exceptions"
	"medilab-service/internal/pkg/lifecycle"
	"medilab-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type labTestUsecase struct {
	LabOrderRepository contracts.LabOrderRepository
	CapacityTracker    contracts.CapacityTracker
	AlertDispatcher    contracts.AlertDispatcher
	ReportArchiver     contracts.ReportArchiver
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	labTestUsecaseInstance contracts.LabTestUsecase
	onceLabTestUsecase     sync.Once
)

func NewLabTestUsecase(
	labOrderRepository contracts.LabOrderRepository,
	capacityTracker contracts.CapacityTracker,
	alertDispatcher contracts.AlertDispatcher,
	reportArchiver contracts.ReportArchiver,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.LabTestUsecase {
	onceLabTestUsecase.Do(func() {
		instance := &labTestUsecase{
			LabOrderRepository: labOrderRepository,
			CapacityTracker:    capacityTracker,
			AlertDispatcher:    alertDispatcher,
			ReportArchiver:     reportArchiver,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
		labTestUsecaseInstance = instance
	})
	return labTestUsecaseInstance
}

func (uc *labTestUsecase) CreateOrder(ctx context.Context, request *requests.CreateLabOrder) (*models.LabOrder, error) {
	barcode := strings.TrimSpace(request.Barcode)
	if barcode == "" {
		barcode = utils.GenerateBarcode(uc.InternalConfig.Lab.BarcodePrefix)
	}

	now := time.Now()
	order := &models.LabOrder{
		Barcode:      barcode,
		PatientRef:   request.PatientRef,
		PatientName:  request.PatientName,
		OrderedByRef: request.OrderedByRef,
		TestType:     request.TestType,
		TestCategory: request.TestCategory,
		Priority:     request.Priority,
		Status:       constvars.LabStatusOrdered,
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	return uc.LabOrderRepository.Create(ctx, order)
}

func (uc *labTestUsecase) FindOrderByID(ctx context.Context, orderID string) (*models.LabOrder, error) {
	order, err := uc.LabOrderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, exceptions.ErrOrderNotFound(nil, orderID)
	}
	return order, nil
}

// ResolveBarcode maps scanned or typed text to exactly one order.
// Barcodes are opaque identifiers, so the only normalization is
// whitespace trimming; no case folding.
func (uc *labTestUsecase) ResolveBarcode(ctx context.Context, barcodeText string) (*models.LabOrder, error) {
	barcode := strings.TrimSpace(barcodeText)
	if barcode == "" {
		return nil, exceptions.ErrBarcodeNotFound(nil, barcodeText)
	}

	order, err := uc.LabOrderRepository.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, exceptions.ErrBarcodeNotFound(nil, barcode)
	}
	return order, nil
}

func (uc *labTestUsecase) UpdateStatus(ctx context.Context, request *requests.UpdateLabOrderStatus) (*models.LabOrder, error) {
	order, err := uc.FindOrderByID(ctx, request.OrderID)
	if err != nil {
		return nil, err
	}

	if !lifecycle.CanTransition(order.Status, request.Status) {
		return nil, exceptions.ErrInvalidTransition(nil, order.Status, request.Status)
	}

	// Completion carries result data and must go through CompleteTest;
	// an order cannot become completed with an empty parameter list.
	if request.Status == constvars.LabStatusCompleted && len(order.TestParameters) == 0 {
		return nil, exceptions.ErrParameterValidation(nil, nil)
	}

	// The swap is guarded by every status the target is reachable from,
	// so two racing technicians get exactly one winner.
	updated, err := uc.LabOrderRepository.UpdateStatus(ctx, request.OrderID, lifecycle.AllowedSources(request.Status), request.Status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, uc.transitionConflict(ctx, request.OrderID, request.Status)
	}

	uc.Log.Info("lab order status updated",
		zap.String(constvars.LoggingOrderIDKey, updated.ID),
		zap.String(constvars.LoggingStatusKey, updated.Status),
	)
	return updated, nil
}

func (uc *labTestUsecase) RecordSpecimen(ctx context.Context, request *requests.RecordSpecimen) (*models.LabOrder, error) {
	var missing []string
	if strings.TrimSpace(request.Type) == "" {
		missing = append(missing, "type")
	}
	if strings.TrimSpace(request.Volume) == "" {
		missing = append(missing, "volume")
	}
	if strings.TrimSpace(request.CollectedBy) == "" {
		missing = append(missing, "collectedBy")
	}
	if len(missing) > 0 {
		return nil, exceptions.ErrSpecimenValidation(nil, missing)
	}

	condition := request.Condition
	if condition == "" {
		condition = constvars.SpecimenConditionDefault
	}

	specimen := &models.Specimen{
		Type:           request.Type,
		Volume:         request.Volume,
		Condition:      condition,
		CollectedBy:    request.CollectedBy,
		CollectionDate: time.Now(),
	}

	updated, err := uc.LabOrderRepository.AttachSpecimen(ctx, request.OrderID, []string{constvars.LabStatusOrdered}, specimen)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, uc.transitionConflict(ctx, request.OrderID, constvars.LabStatusCollected)
	}

	uc.Log.Info("specimen recorded",
		zap.String(constvars.LoggingOrderIDKey, updated.ID),
		zap.String(constvars.LoggingBarcodeKey, updated.Barcode),
	)
	return updated, nil
}

// CompleteTest validates parameters, derives the summary flags and
// finalizes the order. Completing straight from "collected" is an
// intentional convenience: starting and finishing analysis is often a
// single technician action.
func (uc *labTestUsecase) CompleteTest(ctx context.Context, request *requests.CompleteTest) (*models.LabOrder, error) {
	order, err := uc.FindOrderByID(ctx, request.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Status != constvars.LabStatusCollected && order.Status != constvars.LabStatusProcessing {
		return nil, exceptions.ErrInvalidTransition(nil, order.Status, constvars.LabStatusCompleted)
	}

	if len(request.TestParameters) == 0 {
		return nil, exceptions.ErrParameterValidation(nil, nil)
	}
	var invalidIndices []int
	for i, parameter := range request.TestParameters {
		if strings.TrimSpace(parameter.Parameter) == "" || strings.TrimSpace(parameter.Value) == "" {
			invalidIndices = append(invalidIndices, i)
		}
	}
	if len(invalidIndices) > 0 {
		return nil, exceptions.ErrParameterValidation(nil, invalidIndices)
	}

	// Per-parameter flags are the technician's clinical judgment and
	// are trusted verbatim. The aggregates are recomputed server-side:
	// a payload claiming isCritical=false never overrides a critical
	// parameter flag.
	parameters := make([]models.TestParameter, len(request.TestParameters))
	isAbnormal := request.IsAbnormal
	isCritical := request.IsCritical
	for i, parameter := range request.TestParameters {
		parameters[i] = models.TestParameter{
			Parameter:   parameter.Parameter,
			Value:       parameter.Value,
			Unit:        parameter.Unit,
			NormalRange: parameter.NormalRange,
			Flag:        parameter.Flag,
		}
		switch parameter.Flag {
		case constvars.LabFlagCritical:
			isCritical = true
			isAbnormal = true
		case constvars.LabFlagHigh, constvars.LabFlagLow:
			isAbnormal = true
		}
	}

	completion := &models.Completion{
		TestParameters: parameters,
		OverallResult:  request.OverallResult,
		Interpretation: request.Interpretation,
		IsAbnormal:     isAbnormal,
		IsCritical:     isCritical,
		ReportDate:     time.Now(),
	}

	fromStatuses := []string{constvars.LabStatusCollected, constvars.LabStatusProcessing}
	updated, err := uc.LabOrderRepository.Complete(ctx, request.OrderID, fromStatuses, completion)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, uc.transitionConflict(ctx, request.OrderID, constvars.LabStatusCompleted)
	}

	// The completed order is already persisted; everything below is a
	// side effect that must not fail the completion.
	uc.CapacityTracker.RecordCompletion(ctx)

	if updated.IsCritical {
		err = uc.AlertDispatcher.Dispatch(ctx, updated, updated.OrderedByRef)
		if err != nil {
			uc.Log.Error("critical alert dispatch failed",
				zap.String(constvars.LoggingOrderIDKey, updated.ID),
				zap.Error(err),
			)
		}
	}

	if uc.ReportArchiver != nil {
		err = uc.ReportArchiver.Archive(ctx, updated)
		if err != nil {
			uc.Log.Error("report archival failed",
				zap.String(constvars.LoggingOrderIDKey, updated.ID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("lab test completed",
		zap.String(constvars.LoggingOrderIDKey, updated.ID),
		zap.String(constvars.LoggingBarcodeKey, updated.Barcode),
		zap.Bool("is_critical", updated.IsCritical),
	)
	return updated, nil
}

func (uc *labTestUsecase) ListOrders(ctx context.Context, request *requests.ListLabOrders) ([]models.LabOrder, error) {
	filter := contracts.LabOrderFilter{
		Priority: request.Priority,
		Search:   strings.TrimSpace(request.Search),
		SortBy:   request.SortBy,
	}
	if request.Status != "" {
		filter.Statuses = []string{request.Status}
	}
	return uc.LabOrderRepository.List(ctx, filter)
}

// transitionConflict resolves why a guarded update did not match:
// either the order vanished (never the case, orders are not deleted,
// but the id may simply be unknown) or a concurrent transition won.
func (uc *labTestUsecase) transitionConflict(ctx context.Context, orderID, targetStatus string) error {
	order, err := uc.LabOrderRepository.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return exceptions.ErrOrderNotFound(nil, orderID)
	}
	return exceptions.ErrInvalidTransition(nil, order.Status, targetStatus)
}
