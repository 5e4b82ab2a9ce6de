package worklists

import (
	"context"
	"errors"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLabOrderRepository struct {
	orders    []models.LabOrder
	listCalls int
}

func (r *fakeLabOrderRepository) Create(ctx context.Context, order *models.LabOrder) (*models.LabOrder, error) {
	r.orders = append(r.orders, *order)
	return order, nil
}

func (r *fakeLabOrderRepository) FindByID(ctx context.Context, orderID string) (*models.LabOrder, error) {
	for i := range r.orders {
		if r.orders[i].ID == orderID {
			return &r.orders[i], nil
		}
	}
	return nil, nil
}

func (r *fakeLabOrderRepository) FindByBarcode(ctx context.Context, barcode string) (*models.LabOrder, error) {
	for i := range r.orders {
		if r.orders[i].Barcode == barcode {
			return &r.orders[i], nil
		}
	}
	return nil, nil
}

func (r *fakeLabOrderRepository) matches(order models.LabOrder, filter contracts.LabOrderFilter) bool {
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if order.Status == status {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if filter.Priority != "" && order.Priority != filter.Priority {
		return false
	}
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(order.PatientName), search) &&
			!strings.Contains(strings.ToLower(order.TestType), search) {
			return false
		}
	}
	return true
}

func (r *fakeLabOrderRepository) List(ctx context.Context, filter contracts.LabOrderFilter) ([]models.LabOrder, error) {
	r.listCalls++
	var result []models.LabOrder
	for _, order := range r.orders {
		if r.matches(order, filter) {
			result = append(result, order)
		}
	}
	if filter.Limit > 0 && int64(len(result)) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *fakeLabOrderRepository) Count(ctx context.Context, filter contracts.LabOrderFilter) (int64, error) {
	var count int64
	for _, order := range r.orders {
		if r.matches(order, filter) {
			count++
		}
	}
	return count, nil
}

func (r *fakeLabOrderRepository) UpdateStatus(ctx context.Context, orderID string, fromStatuses []string, toStatus string) (*models.LabOrder, error) {
	return nil, nil
}

func (r *fakeLabOrderRepository) AttachSpecimen(ctx context.Context, orderID string, fromStatuses []string, specimen *models.Specimen) (*models.LabOrder, error) {
	return nil, nil
}

func (r *fakeLabOrderRepository) Complete(ctx context.Context, orderID string, fromStatuses []string, completion *models.Completion) (*models.LabOrder, error) {
	return nil, nil
}

type fakeCapacityTracker struct {
	current int64
	maximum int64
}

func (t *fakeCapacityTracker) RecordCompletion(ctx context.Context) { t.current++ }
func (t *fakeCapacityTracker) Status(ctx context.Context) (current, maximum int64) {
	return t.current, t.maximum
}
func (t *fakeCapacityTracker) Rollover(day string) {}

type fakeRedisRepository struct {
	store  map[string]string
	getErr error
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{store: make(map[string]string)}
}

func (r *fakeRedisRepository) Delete(ctx context.Context, key string) error {
	delete(r.store, key)
	return nil
}

func (r *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.store[key] = string(body)
	return nil
}

func (r *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	if r.getErr != nil {
		return "", r.getErr
	}
	return r.store[key], nil
}

func (r *fakeRedisRepository) Increment(ctx context.Context, key string) (int64, error) {
	return 0, nil
}

func order(id, name, testType, priority, status string) models.LabOrder {
	return models.LabOrder{
		ID:          id,
		Barcode:     "LAB-" + id,
		PatientRef:  "Patient/" + id,
		PatientName: name,
		TestType:    testType,
		Priority:    priority,
		Status:      status,
	}
}

type worklistFixture struct {
	usecase    *worklistUsecase
	repository *fakeLabOrderRepository
	tracker    *fakeCapacityTracker
	redis      *fakeRedisRepository
}

func newWorklistFixture(orders ...models.LabOrder) *worklistFixture {
	repository := &fakeLabOrderRepository{orders: orders}
	tracker := &fakeCapacityTracker{maximum: 150}
	redis := newFakeRedisRepository()
	usecase := &worklistUsecase{
		LabOrderRepository: repository,
		CapacityTracker:    tracker,
		RedisRepository:    redis,
		InternalConfig: &config.InternalConfig{
			Lab: config.Lab{
				DashboardCacheTTLInSeconds: 30,
				RecentCompletionsLimit:     5,
			},
		},
		Log: zap.NewNop(),
	}
	return &worklistFixture{usecase: usecase, repository: repository, tracker: tracker, redis: redis}
}

func TestPendingWorklist(t *testing.T) {
	fixture := newWorklistFixture(
		order("1", "Alice Smith", "Complete Blood Count", constvars.LabPriorityRoutine, constvars.LabStatusOrdered),
		order("2", "Bob Jones", "Lipid Panel", constvars.LabPriorityStat, constvars.LabStatusCollected),
		order("3", "Carol White", "Glucose", constvars.LabPriorityUrgent, constvars.LabStatusProcessing),
		order("4", "Dan Brown", "Glucose", constvars.LabPriorityRoutine, constvars.LabStatusCompleted),
		order("5", "Eve Black", "TSH", constvars.LabPriorityRoutine, constvars.LabStatusCancelled),
	)

	t.Run("includes only pending statuses", func(t *testing.T) {
		orders, err := fixture.usecase.PendingWorklist(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, orders, 3)
		for _, o := range orders {
			assert.True(t, o.IsPending())
		}
	})

	t.Run("search matches patient name case-insensitively", func(t *testing.T) {
		orders, err := fixture.usecase.PendingWorklist(context.Background(), "alice")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "1", orders[0].ID)
	})

	t.Run("search matches test type", func(t *testing.T) {
		orders, err := fixture.usecase.PendingWorklist(context.Background(), "lipid")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "2", orders[0].ID)
	})

	t.Run("no matches yields empty list not nil", func(t *testing.T) {
		orders, err := fixture.usecase.PendingWorklist(context.Background(), "nobody")
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})
}

func TestDashboardStats(t *testing.T) {
	seed := []models.LabOrder{
		order("1", "Alice Smith", "Complete Blood Count", constvars.LabPriorityRoutine, constvars.LabStatusOrdered),
		order("2", "Bob Jones", "Lipid Panel", constvars.LabPriorityStat, constvars.LabStatusCollected),
		order("3", "Carol White", "Glucose", constvars.LabPriorityUrgent, constvars.LabStatusProcessing),
		order("4", "Dan Brown", "Glucose", constvars.LabPriorityUrgent, constvars.LabStatusCompleted),
	}

	t.Run("computes aggregates", func(t *testing.T) {
		fixture := newWorklistFixture(seed...)
		fixture.tracker.current = 7

		stats, err := fixture.usecase.DashboardStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, stats.PendingTests)
		assert.Equal(t, int64(7), stats.CompletedToday)
		assert.Equal(t, 1, stats.TotalReports)
		assert.Equal(t, 2, stats.UrgentTests, "urgent and stat priorities both count")
		assert.Equal(t, int64(7), stats.DailyCapacity.Current)
		assert.Equal(t, int64(150), stats.DailyCapacity.Maximum)
		assert.Equal(t, constvars.EquipmentStatusOperational, stats.EquipmentStatus)
		assert.Len(t, stats.PendingWorklist, 3)
		assert.Len(t, stats.RecentCompletions, 1)
	})

	t.Run("surfaces published equipment status", func(t *testing.T) {
		fixture := newWorklistFixture(seed...)
		fixture.redis.store[constvars.RedisKeyEquipmentStatus] = "maintenance"

		stats, err := fixture.usecase.DashboardStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "maintenance", stats.EquipmentStatus)
	})

	t.Run("serves second call from cache", func(t *testing.T) {
		fixture := newWorklistFixture(seed...)

		first, err := fixture.usecase.DashboardStats(context.Background())
		require.NoError(t, err)
		callsAfterFirst := fixture.repository.listCalls

		second, err := fixture.usecase.DashboardStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, callsAfterFirst, fixture.repository.listCalls)
		assert.Equal(t, first.PendingTests, second.PendingTests)
	})

	t.Run("recomputes when cache entry is corrupt", func(t *testing.T) {
		fixture := newWorklistFixture(seed...)
		fixture.redis.store[constvars.RedisKeyDashboardStats] = "{not json"

		stats, err := fixture.usecase.DashboardStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, stats.PendingTests)
	})

	t.Run("cache read failure falls through to live data", func(t *testing.T) {
		fixture := newWorklistFixture(seed...)
		fixture.redis.getErr = errors.New("connection refused")

		stats, err := fixture.usecase.DashboardStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, stats.PendingTests)
	})
}
