package models

// InvalidFieldError is returned by entity setters when a value violates a
// field constraint. The service layer catches it and folds the message into
// its validation-error mapping instead of letting it cross the API boundary.
type InvalidFieldError struct {
	Field   string
	Message string
}

func (e *InvalidFieldError) Error() string {
	return e.Message
}
