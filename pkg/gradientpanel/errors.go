package gradientpanel

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrWidgetNotFound is returned when no widget has the given name.
	ErrWidgetNotFound = errors.New("widget not found")
	// ErrClosed is returned by methods called after Close.
	ErrClosed = errors.New("panel closed")
)

// ErrorCategory classifies where an error came from.
type ErrorCategory int

const (
	// ErrorCategoryUnknown is the default category for uncategorized errors.
	ErrorCategoryUnknown ErrorCategory = iota
	// ErrorCategoryConfig is for scene parsing and validation errors.
	ErrorCategoryConfig
	// ErrorCategoryRender is for painting and display errors.
	ErrorCategoryRender
	// ErrorCategoryIO is for file errors such as unreadable images.
	ErrorCategoryIO
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryConfig:
		return "config"
	case ErrorCategoryRender:
		return "render"
	case ErrorCategoryIO:
		return "io"
	default:
		return "unknown"
	}
}

// ErrorSeverity indicates the severity level of an error.
type ErrorSeverity int

const (
	// SeverityWarning is for problems the panel recovers from.
	SeverityWarning ErrorSeverity = iota
	// SeverityError is for failed operations.
	SeverityError
	// SeverityCritical is for errors that stop the panel.
	SeverityCritical
)

// String returns a human-readable name for the severity level.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// CategorizedError wraps an error with its category, severity and
// key-value context.
type CategorizedError struct {
	Err       error
	Category  ErrorCategory
	Severity  ErrorSeverity
	Timestamp time.Time
	Context   map[string]string
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s/%s] (no error)", e.Severity, e.Category)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Severity, e.Category, e.Err.Error())
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// NewCategorizedError creates a new CategorizedError with the given parameters.
func NewCategorizedError(err error, category ErrorCategory, severity ErrorSeverity) *CategorizedError {
	return &CategorizedError{
		Err:       err,
		Category:  category,
		Severity:  severity,
		Timestamp: time.Now(),
		Context:   make(map[string]string),
	}
}

// WithContext adds a key-value pair to the error context and returns the error.
func (e *CategorizedError) WithContext(key, value string) *CategorizedError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// logArgs flattens the error into slog-style key-value pairs.
func (e *CategorizedError) logArgs() []any {
	args := []any{"category", e.Category.String(), "severity", e.Severity.String(), "err", e.Err}
	for k, v := range e.Context {
		args = append(args, k, v)
	}
	return args
}

// CategoryOf returns the category of the first CategorizedError in err's
// chain, or ErrorCategoryUnknown.
func CategoryOf(err error) ErrorCategory {
	var ce *CategorizedError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ErrorCategoryUnknown
}
