package constvars

// Lab order lifecycle statuses. Transitions between them are enforced
// by internal/pkg/lifecycle, never inline at call sites.
const (
	LabStatusOrdered    = "ordered"
	LabStatusCollected  = "collected"
	LabStatusProcessing = "processing"
	LabStatusCompleted  = "completed"
	LabStatusCancelled  = "cancelled"
)

// Priorities are set at ordering time and never change afterwards.
const (
	LabPriorityRoutine = "routine"
	LabPriorityUrgent  = "urgent"
	LabPriorityStat    = "stat"
)

// Per-parameter result flags, as entered by the technician.
const (
	LabFlagNormal   = "normal"
	LabFlagHigh     = "high"
	LabFlagLow      = "low"
	LabFlagCritical = "critical"
)

// Overall results. Taken verbatim from the completion payload;
// "inconclusive" cannot be derived from parameter flags.
const (
	LabResultNormal       = "normal"
	LabResultAbnormal     = "abnormal"
	LabResultCritical     = "critical"
	LabResultInconclusive = "inconclusive"
)

// SpecimenConditionDefault is used when the collecting technician does
// not report a condition.
const SpecimenConditionDefault = "Good"

// EquipmentStatusOperational is the dashboard fallback when the
// monitoring collaborator has not published a status yet.
const EquipmentStatusOperational = "operational"
