package serviceerror

type ServiceErrorType string

const (
	ClientErrorType ServiceErrorType = "client_error"
	ServerErrorType ServiceErrorType = "server_error"
)

type ServiceError struct {
	Code             string           `json:"code"`
	Type             ServiceErrorType `json:"type"`
	Error            string           `json:"error"`
	ErrorDescription string           `json:"error_description,omitempty"`
}

var (
	InternalServerError = ServiceError{
		Type:             ServerErrorType,
		Code:             "TSE-5000",
		Error:            "internal_server_error",
		ErrorDescription: "An unexpected error occurred",
	}

	DatabaseError = ServiceError{
		Type:             ServerErrorType,
		Code:             "TSE-5001",
		Error:            "database_error",
		ErrorDescription: "A database error occurred",
	}

	ValidationError = ServiceError{
		Type:             ClientErrorType,
		Code:             "TCE-4001",
		Error:            "validation_error",
		ErrorDescription: "Validation failed",
	}

	NotFoundError = ServiceError{
		Type:             ClientErrorType,
		Code:             "TCE-4004",
		Error:            "not_found",
		ErrorDescription: "Resource not found",
	}

	ForbiddenError = ServiceError{
		Type:             ClientErrorType,
		Code:             "TCE-4003",
		Error:            "forbidden",
		ErrorDescription: "Actor is not allowed to perform this action",
	}

	InvalidStatusError = ServiceError{
		Type:             ClientErrorType,
		Code:             "TCE-4009",
		Error:            "invalid_status",
		ErrorDescription: "The declaration is not in a status that permits this action",
	}

	InvalidDecisionError = ServiceError{
		Type:             ClientErrorType,
		Code:             "TCE-4002",
		Error:            "invalid_decision",
		ErrorDescription: "The regulatory decision is not recognized",
	}

	ConflictError = ServiceError{
		Type:             ClientErrorType,
		Code:             "TCE-4010",
		Error:            "conflict",
		ErrorDescription: "Request conflicts with current state",
	}
)

func CustomServiceError(baseError ServiceError, description string) *ServiceError {
	return &ServiceError{
		Type:             baseError.Type,
		Code:             baseError.Code,
		Error:            baseError.Error,
		ErrorDescription: description,
	}
}

// FieldValidationError builds a client error whose error field carries the
// specific field-level code (expired_date, string_too_short, ...) so API
// consumers can branch on it.
func FieldValidationError(code, description string) *ServiceError {
	return &ServiceError{
		Type:             ClientErrorType,
		Code:             ValidationError.Code,
		Error:            code,
		ErrorDescription: description,
	}
}
