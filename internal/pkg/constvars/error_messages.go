package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"numeric":  "must be a number",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"uuid":     "must be a valid UUID",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "server takes too long to respond"
	ErrClientNotAuthorized                 = "you are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "you are not logged in, please login first"
	ErrClientOrderNotFound                 = "lab order not found"
	ErrClientBarcodeNotFound               = "no lab order matches the scanned barcode"
	ErrClientBarcodeAlreadyUsed            = "barcode is already assigned to another lab order"
	ErrClientInvalidStatusTransition       = "the lab order status does not allow this action, please refresh and try again"
	ErrClientSpecimenFieldsMissing         = "specimen is missing required fields: %s"
	ErrClientParameterFieldsMissing        = "test parameters at positions %v need a name and a value"
	ErrClientParametersRequired            = "at least one test parameter with a name and a value is required"
)

// Error messages for developers
const (
	ErrDevCannotParseJSON         = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON       = "cannot marshal data into JSON"
	ErrDevValidationFailed        = "validation failed"
	ErrDevServerProcess           = "server cannot process the request"
	ErrDevServerDeadlineExceeded  = "server deadline exceeded"
	ErrDevMissingRequestID        = "request ID not found in request context"
	ErrDevMissingSessionData      = "session data not found in request context"
	ErrDevAuthTokenMissing        = "authorization token is missing"
	ErrDevAuthTokenInvalid        = "authorization token is invalid or expired"
	ErrDevURLParamMissing         = "URL parameter %s is missing"
	ErrDevOrderNotFound           = "lab order does not exist: %s"
	ErrDevBarcodeNotFound         = "no lab order for barcode: %s"
	ErrDevDuplicateBarcode        = "barcode already mapped to an existing lab order: %s"
	ErrDevInvalidStatusTransition = "illegal status transition from %q to %q"
	ErrDevSpecimenValidation      = "specimen payload missing required fields: %s"
	ErrDevParameterValidation     = "test parameters invalid at indices %v"

	ErrDevDBFailedToFindDocument     = "database failed to find document"
	ErrDevDBFailedToInsertDocument   = "database failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "database failed to update document"
	ErrDevDBFailedToIterateDocuments = "database failed to iterate documents"
	ErrDevDBStringNotObjectID        = "provided string is not a valid object ID"

	ErrDevRedisGetData       = "redis failed to get data"
	ErrDevRedisSetData       = "redis failed to set data"
	ErrDevRedisDeleteData    = "redis failed to delete data"
	ErrDevRedisIncrementData = "redis failed to increment value"

	ErrDevRabbitMQPublish = "rabbitmq failed to publish message to queue %s"

	ErrDevMinioPutObject = "minio failed to store object in bucket %s"
)
