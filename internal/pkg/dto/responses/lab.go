package responses

import "medilab-service/internal/app/models"

type DailyCapacity struct {
	Current int64 `json:"current"`
	Maximum int64 `json:"maximum"`
}

// DashboardStats feeds the laboratory capacity dashboard. Equipment
// status is maintained by an external collaborator and surfaced as-is.
type DashboardStats struct {
	PendingTests      int               `json:"pendingTests"`
	CompletedToday    int64             `json:"completedToday"`
	TotalReports      int               `json:"totalReports"`
	UrgentTests       int               `json:"urgentTests"`
	DailyCapacity     DailyCapacity     `json:"dailyCapacity"`
	EquipmentStatus   string            `json:"equipmentStatus"`
	PendingWorklist   []models.LabOrder `json:"pendingWorklist"`
	RecentCompletions []models.LabOrder `json:"recentCompletions"`
}
