package models

import "time"

// LabOrder is the central laboratory entity. It is created once with
// status "ordered" and mutated only through the lifecycle operations;
// cancellation is a terminal status, never a physical delete.
type LabOrder struct {
	ID           string `json:"id,omitempty" bson:"_id,omitempty"`
	Barcode      string `json:"barcode" bson:"barcode"`
	PatientRef   string `json:"patientRef" bson:"patientRef"`
	PatientName  string `json:"patientName,omitempty" bson:"patientName,omitempty"`
	OrderedByRef string `json:"orderedByRef" bson:"orderedByRef"`
	TestType     string `json:"testType" bson:"testType"`
	TestCategory string `json:"testCategory,omitempty" bson:"testCategory,omitempty"`
	Priority     string `json:"priority" bson:"priority"`
	Status       string `json:"status" bson:"status"`

	Specimen       *Specimen       `json:"specimen,omitempty" bson:"specimen,omitempty"`
	TestParameters []TestParameter `json:"testParameters,omitempty" bson:"testParameters,omitempty"`
	OverallResult  string          `json:"overallResult,omitempty" bson:"overallResult,omitempty"`
	Interpretation string          `json:"interpretation,omitempty" bson:"interpretation,omitempty"`
	IsAbnormal     bool            `json:"isAbnormal" bson:"isAbnormal"`
	IsCritical     bool            `json:"isCritical" bson:"isCritical"`
	ReportDate     *time.Time      `json:"reportDate,omitempty" bson:"reportDate,omitempty"`

	TimeModel `bson:",inline"`
}

// Specimen describes the physical sample collected for an order.
// Present only once the order has reached "collected".
type Specimen struct {
	Type           string    `json:"type" bson:"type"`
	Volume         string    `json:"volume" bson:"volume"`
	Condition      string    `json:"condition" bson:"condition"`
	CollectedBy    string    `json:"collectedBy" bson:"collectedBy"`
	CollectionDate time.Time `json:"collectionDate" bson:"collectionDate"`
}

// TestParameter is one measured value within a test panel. The flag is
// the technician's clinical classification; it is never recomputed from
// the normal range, which is frequently qualitative.
type TestParameter struct {
	Parameter   string `json:"parameter" bson:"parameter"`
	Value       string `json:"value" bson:"value"`
	Unit        string `json:"unit,omitempty" bson:"unit,omitempty"`
	NormalRange string `json:"normalRange,omitempty" bson:"normalRange,omitempty"`
	Flag        string `json:"flag,omitempty" bson:"flag,omitempty"`
}

// Completion carries the finalized result set written by the result
// entry engine in a single compare-and-swap update.
type Completion struct {
	TestParameters []TestParameter
	OverallResult  string
	Interpretation string
	IsAbnormal     bool
	IsCritical     bool
	ReportDate     time.Time
}

// IsPending reports whether the order still drives technician workflow.
func (o *LabOrder) IsPending() bool {
	switch o.Status {
	case "ordered", "collected", "processing":
		return true
	}
	return false
}
