package services

// Error codes carried by Result. Handlers map these onto HTTP statuses.
const (
	CodeMissingID           = "MISSING_ID"
	CodeTaskNotFound        = "TASK_NOT_FOUND"
	CodeValidationError     = "VALIDATION_ERROR"
	CodeOperationNotAllowed = "OPERATION_NOT_ALLOWED"
	CodeInvalidJSON         = "INVALID_JSON"
	CodeCreationError       = "CREATION_ERROR"
	CodeUpdateError         = "UPDATE_ERROR"
	CodeDeleteError         = "DELETE_ERROR"
	CodeCompleteError       = "COMPLETE_ERROR"
	CodeStartError          = "START_ERROR"
	CodeDuplicateError      = "DUPLICATE_ERROR"
	CodeStatisticsError     = "STATISTICS_ERROR"
	CodeInternalError       = "INTERNAL_ERROR"
)

// Result is the uniform outcome of every task-service operation. Failures
// are values, never panics across the service boundary.
type Result struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	Data      interface{}         `json:"data,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	ErrorCode string              `json:"error_code,omitempty"`
}

func Ok(message string, data interface{}) *Result {
	return &Result{Success: true, Message: message, Data: data}
}

func Fail(code, message string) *Result {
	return &Result{Success: false, Message: message, ErrorCode: code}
}

func FailValidation(errs map[string][]string) *Result {
	return &Result{
		Success:   false,
		Message:   "Os dados informados são inválidos.",
		Errors:    errs,
		ErrorCode: CodeValidationError,
	}
}

func FailOperation(msgs []string) *Result {
	message := "Operação não permitida."
	if len(msgs) > 0 {
		message = msgs[0]
	}
	return &Result{
		Success:   false,
		Message:   message,
		Errors:    map[string][]string{"operation": msgs},
		ErrorCode: CodeOperationNotAllowed,
	}
}
