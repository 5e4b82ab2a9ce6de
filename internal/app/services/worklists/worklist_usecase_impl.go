package worklists

import (
	"context"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/responses"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type worklistUsecase struct {
	LabOrderRepository contracts.LabOrderRepository
	CapacityTracker    contracts.CapacityTracker
	RedisRepository    contracts.RedisRepository
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	worklistUsecaseInstance contracts.WorklistUsecase
	onceWorklistUsecase     sync.Once
)

func NewWorklistUsecase(
	labOrderRepository contracts.LabOrderRepository,
	capacityTracker contracts.CapacityTracker,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.WorklistUsecase {
	onceWorklistUsecase.Do(func() {
		worklistUsecaseInstance = &worklistUsecase{
			LabOrderRepository: labOrderRepository,
			CapacityTracker:    capacityTracker,
			RedisRepository:    redisRepository,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
	})
	return worklistUsecaseInstance
}

func pendingStatuses() []string {
	return []string{
		constvars.LabStatusOrdered,
		constvars.LabStatusCollected,
		constvars.LabStatusProcessing,
	}
}

func (uc *worklistUsecase) PendingWorklist(ctx context.Context, searchTerm string) ([]models.LabOrder, error) {
	filter := contracts.LabOrderFilter{
		Statuses: pendingStatuses(),
		Search:   strings.TrimSpace(searchTerm),
		SortBy:   "createdAt",
	}
	orders, err := uc.LabOrderRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.LabOrder{}
	}
	return orders, nil
}

// DashboardStats aggregates the capacity dashboard. The result is
// cached briefly in Redis; the dashboard polls and does not need
// per-request freshness. Cache failures fall through to a live
// computation.
func (uc *worklistUsecase) DashboardStats(ctx context.Context) (*responses.DashboardStats, error) {
	cached, err := uc.RedisRepository.Get(ctx, constvars.RedisKeyDashboardStats)
	if err != nil {
		uc.Log.Warn("dashboard cache read failed", zap.Error(err))
	} else if cached != "" {
		var stats responses.DashboardStats
		if unmarshalErr := json.Unmarshal([]byte(cached), &stats); unmarshalErr == nil {
			return &stats, nil
		}
		uc.Log.Warn("dashboard cache entry is corrupt, recomputing")
	}

	stats, err := uc.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(uc.InternalConfig.Lab.DashboardCacheTTLInSeconds) * time.Second
	if ttl > 0 {
		err = uc.RedisRepository.Set(ctx, constvars.RedisKeyDashboardStats, stats, ttl)
		if err != nil {
			uc.Log.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (uc *worklistUsecase) computeStats(ctx context.Context) (*responses.DashboardStats, error) {
	pending, err := uc.PendingWorklist(ctx, "")
	if err != nil {
		return nil, err
	}

	urgentTests := 0
	for _, order := range pending {
		if order.Priority == constvars.LabPriorityUrgent || order.Priority == constvars.LabPriorityStat {
			urgentTests++
		}
	}

	totalReports, err := uc.LabOrderRepository.Count(ctx, contracts.LabOrderFilter{
		Statuses: []string{constvars.LabStatusCompleted},
	})
	if err != nil {
		return nil, err
	}

	recentCompletions, err := uc.LabOrderRepository.List(ctx, contracts.LabOrderFilter{
		Statuses: []string{constvars.LabStatusCompleted},
		SortBy:   "reportDate",
		Limit:    int64(uc.InternalConfig.Lab.RecentCompletionsLimit),
	})
	if err != nil {
		return nil, err
	}
	if recentCompletions == nil {
		recentCompletions = []models.LabOrder{}
	}

	current, maximum := uc.CapacityTracker.Status(ctx)

	equipmentStatus, err := uc.RedisRepository.Get(ctx, constvars.RedisKeyEquipmentStatus)
	if err != nil {
		uc.Log.Warn("equipment status read failed", zap.Error(err))
		equipmentStatus = ""
	}
	if equipmentStatus == "" {
		equipmentStatus = constvars.EquipmentStatusOperational
	}

	return &responses.DashboardStats{
		PendingTests:      len(pending),
		CompletedToday:    current,
		TotalReports:      int(totalReports),
		UrgentTests:       urgentTests,
		DailyCapacity:     responses.DailyCapacity{Current: current, Maximum: maximum},
		EquipmentStatus:   equipmentStatus,
		PendingWorklist:   pending,
		RecentCompletions: recentCompletions,
	}, nil
}
