package constvars

const (
	RedisKeyDashboardStats    = "lab:dashboard_stats"
	RedisKeySessionPrefix     = "session:"
	RedisKeyCapacityDayPrefix = "lab:capacity:"
	RedisKeyEquipmentStatus   = "lab:equipment_status"
)
