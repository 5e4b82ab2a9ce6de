package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Lab order messages
	CreateLabOrderSuccessMessage    = "lab order created successfully"
	GetLabOrderSuccessMessage       = "get lab order successfully"
	ListLabOrdersSuccessMessage     = "get lab orders successfully"
	ResolveBarcodeSuccessMessage    = "lab order found for barcode"
	UpdateStatusSuccessMessage      = "lab order status updated successfully"
	RecordSpecimenSuccessMessage    = "specimen recorded successfully"
	CompleteTestSuccessMessage      = "test results saved successfully"
	GetWorklistSuccessMessage       = "get pending worklist successfully"
	GetDashboardStatsSuccessMessage = "get laboratory dashboard statistics successfully"
)
