package dispatch

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a failed tool call.
type ErrorKind string

const (
	KindUnknownTool              ErrorKind = "UnknownTool"
	KindMissingRequiredParameter ErrorKind = "MissingRequiredParameter"
	KindInvalidEnumValue         ErrorKind = "InvalidEnumValue"
	KindInvalidParameterType     ErrorKind = "InvalidParameterType"
	KindGeneratorInternalError   ErrorKind = "GeneratorInternalError"
)

// Sentinels for errors.Is.
var (
	ErrUnknownTool              = &ToolError{Kind: KindUnknownTool}
	ErrMissingRequiredParameter = &ToolError{Kind: KindMissingRequiredParameter}
	ErrInvalidEnumValue         = &ToolError{Kind: KindInvalidEnumValue}
	ErrInvalidParameterType     = &ToolError{Kind: KindInvalidParameterType}
	ErrGeneratorInternalError   = &ToolError{Kind: KindGeneratorInternalError}
)

// ToolError describes why a call was rejected or failed.
type ToolError struct {
	Kind     ErrorKind
	Tool     string
	Param    string
	Value    any
	Allowed  []string
	Expected string
	Err      error
}

func (e *ToolError) Error() string {
	var msg string
	switch e.Kind {
	case KindUnknownTool:
		msg = fmt.Sprintf("unknown tool %q", e.Tool)
	case KindMissingRequiredParameter:
		msg = fmt.Sprintf("tool %q requires parameter %q", e.Tool, e.Param)
	case KindInvalidEnumValue:
		msg = fmt.Sprintf("tool %q parameter %q: %v is not one of [%s]", e.Tool, e.Param, formatValue(e.Value), strings.Join(e.Allowed, ", "))
	case KindInvalidParameterType:
		msg = fmt.Sprintf("tool %q parameter %q must be of type %s, got %v", e.Tool, e.Param, e.Expected, formatValue(e.Value))
	case KindGeneratorInternalError:
		msg = fmt.Sprintf("tool %q failed to render", e.Tool)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
	default:
		msg = fmt.Sprintf("tool %q failed", e.Tool)
	}
	return string(e.Kind) + ": " + msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// Is matches any ToolError of the same kind.
func (e *ToolError) Is(target error) bool {
	t, ok := target.(*ToolError)
	return ok && t.Kind == e.Kind
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
