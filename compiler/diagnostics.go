package compiler

import "fmt"

// Category classifies a diagnostic's severity.
type Category int

const (
	CategoryError Category = iota
	CategoryWarning
	CategoryMessage
	CategoryVerbose
)

// String returns the lowercase category label used in rendered output.
func (c Category) String() string {
	switch c {
	case CategoryError:
		return "error"
	case CategoryWarning:
		return "warning"
	case CategoryVerbose:
		return "verbose"
	default:
		return "message"
	}
}

// Diagnostic is one operator-facing message. Severity travels in
// Category; the builder never inspects Message text.
type Diagnostic struct {
	Category Category
	Message  string
}

// DiagnosticReporter receives every diagnostic the builder emits.
// Reporters are called synchronously from the build thread.
type DiagnosticReporter func(Diagnostic)

// Errorf builds an error-category diagnostic.
func Errorf(format string, args ...any) Diagnostic {
	return Diagnostic{Category: CategoryError, Message: fmt.Sprintf(format, args...)}
}

// Messagef builds a message-category diagnostic.
func Messagef(format string, args ...any) Diagnostic {
	return Diagnostic{Category: CategoryMessage, Message: fmt.Sprintf(format, args...)}
}

// Verbosef builds a verbose-category diagnostic.
func Verbosef(format string, args ...any) Diagnostic {
	return Diagnostic{Category: CategoryVerbose, Message: fmt.Sprintf(format, args...)}
}
