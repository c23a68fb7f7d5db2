package errors

import (
	"errors"
	"fmt"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration  ErrorType = "CONFIGURATION"
	TypeVCS            ErrorType = "VCS"
	TypeAI             ErrorType = "AI"
	TypeParse          ErrorType = "PARSE"
	TypeValidation     ErrorType = "VALIDATION"
	TypeTicket         ErrorType = "TICKET"
	TypeTestManagement ErrorType = "TEST_MANAGEMENT"
	TypeEmail          ErrorType = "EMAIL"
	TypeInternal       ErrorType = "INTERNAL"
)

const (
	ctxStatusCode = "status_code"
	ctxBody       = "body"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if status, ok := e.Context[ctxStatusCode].(int); ok && status != 0 {
			msg += fmt.Sprintf(" [status %d]", status)
		}
		if body, ok := e.Context[ctxBody].(string); ok && body != "" {
			msg += fmt.Sprintf(" - %s", body)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError of the same type, so sentinel values work with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type && (t.Message == "" || t.Message == e.Message)
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// NewConfigurationError reports required settings that are missing or invalid.
func NewConfigurationError(msg string, missing ...string) *AppError {
	e := NewAppError(TypeConfiguration, msg, nil)
	if len(missing) > 0 {
		e = e.WithContext("missing", missing)
	}
	return e
}

// NewUpstreamError wraps a non-2xx answer from an external service.
func NewUpstreamError(t ErrorType, msg string, status int, body string, err error) *AppError {
	return NewAppError(t, msg, err).
		WithContext(ctxStatusCode, status).
		WithContext(ctxBody, body)
}

// NewModelError wraps a failed call to the language model provider.
func NewModelError(msg string, err error) *AppError {
	return NewAppError(TypeAI, msg, err)
}

// NewParseError reports a model answer that is not valid JSON or breaks the expected shape.
func NewParseError(msg string, details []string, err error) *AppError {
	e := NewAppError(TypeParse, msg, err)
	if len(details) > 0 {
		e = e.WithContext("details", details)
	}
	return e
}

// NewValidationError reports malformed input such as an unparsable URL or ticket key.
func NewValidationError(msg string, err error) *AppError {
	return NewAppError(TypeValidation, msg, err)
}

// IsType reports whether err is, or wraps, an AppError of type t.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// UpstreamStatus returns the HTTP status carried by an upstream AppError, or 0.
func UpstreamStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Context != nil {
		if status, ok := appErr.Context[ctxStatusCode].(int); ok {
			return status
		}
	}
	return 0
}

// Configuration errors
var (
	ErrGitHubTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
				WithSuggestion("Set GITHUB_TOKEN or github.token in the config file")

	ErrAIKeyMissing = NewAppError(TypeConfiguration, "AI provider API key is missing", nil).
			WithSuggestion("Set OPENAI_API_KEY or GEMINI_API_KEY depending on ai.provider")

	ErrUnknownAIProvider = NewAppError(TypeConfiguration, "AI provider not supported", nil).
				WithSuggestion("Use 'openai' or 'gemini'")
)

// VCS errors
var (
	ErrFetchDiff = NewAppError(TypeVCS, "failed to fetch diff", nil).
			WithSuggestion("Check the branches exist and the token has 'repo' scope")

	ErrFetchTree = NewAppError(TypeVCS, "failed to fetch repository tree", nil)
)

// AI errors
var (
	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil).
			WithSuggestion("Try again or check your API key configuration")

	ErrEmptyAIResponse = NewAppError(TypeAI, "AI returned an empty response", nil)

	ErrInvalidAIOutput = NewAppError(TypeParse, "invalid AI output format", nil).
				WithSuggestion("This is likely a temporary issue, please try again")
)

// Ticket errors
var (
	ErrInvalidTicketURL = NewAppError(TypeValidation, "ticket service URL has no host", nil).
				WithSuggestion("Set JIRA_URL to something like https://your-team.atlassian.net")

	ErrInvalidTicketKey = NewAppError(TypeValidation, "ticket key is not valid", nil)

	ErrTicketNotFound = NewAppError(TypeTicket, "ticket not found", nil)
)
