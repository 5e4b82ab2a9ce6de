package requests

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type CreateLabOrder struct {
	PatientRef   string `json:"patientRef" validate:"required"`
	PatientName  string `json:"patientName"`
	OrderedByRef string `json:"orderedByRef" validate:"required"`
	TestType     string `json:"testType" validate:"required"`
	TestCategory string `json:"testCategory"`
	Priority     string `json:"priority" validate:"required,oneof=routine urgent stat"`
	Barcode      string `json:"barcode"`
}

type UpdateLabOrderStatus struct {
	OrderID string `json:"-"`
	Status  string `json:"status" validate:"required,oneof=ordered collected processing completed cancelled"`
}

// RecordSpecimen required-field checks live in the usecase so missing
// fields come back as 422 with the offending field names, not as a
// generic validator 400.
type RecordSpecimen struct {
	OrderID     string `json:"-"`
	Type        string `json:"type"`
	Volume      string `json:"volume"`
	Condition   string `json:"condition"`
	CollectedBy string `json:"collectedBy"`
}

type TestParameter struct {
	Parameter   string `json:"parameter"`
	Value       string `json:"value"`
	Unit        string `json:"unit"`
	NormalRange string `json:"normalRange"`
	Flag        string `json:"flag" validate:"omitempty,oneof=normal high low critical"`
}

type CompleteTest struct {
	OrderID        string          `json:"-"`
	OverallResult  string          `json:"overallResult" validate:"required,oneof=normal abnormal critical inconclusive"`
	Interpretation string          `json:"interpretation"`
	IsAbnormal     bool            `json:"isAbnormal"`
	IsCritical     bool            `json:"isCritical"`
	TestParameters []TestParameter `json:"testParameters" validate:"dive"`
}

type ListLabOrders struct {
	Status   string `json:"status" validate:"omitempty,oneof=ordered collected processing completed cancelled"`
	Priority string `json:"priority" validate:"omitempty,oneof=routine urgent stat"`
	Search   string `json:"search"`
	SortBy   string `json:"sort_by" validate:"omitempty,oneof=createdAt"`
}
