// Package status implements the editor's severity-ordered outcome taxonomy
// (see spec §7): every call chain returns the most severe status it
// encountered, and lower severity never overwrites higher.
package status

import "fmt"

// Code is a severity-ordered status. Larger values are more severe.
type Code int

// Severity order: Success < NotFound < Failure < UserAbort < ScriptExit <
// UserExit < HelpExit < OSError < FatalError < Panic.
const (
	Success Code = iota
	NotFound
	Failure
	UserAbort
	ScriptExit
	UserExit
	HelpExit
	OSError
	FatalError
	Panic
)

// String renders the status name.
func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case NotFound:
		return "NotFound"
	case Failure:
		return "Failure"
	case UserAbort:
		return "UserAbort"
	case ScriptExit:
		return "ScriptExit"
	case UserExit:
		return "UserExit"
	case HelpExit:
		return "HelpExit"
	case OSError:
		return "OSError"
	case FatalError:
		return "FatalError"
	case Panic:
		return "Panic"
	default:
		return "Unknown"
	}
}

// IsError reports whether the code should be presented to the user as an
// error. NotFound is a boundary/non-match signal, never an error.
func (c Code) IsError() bool {
	return c >= Failure
}

// Result carries a status code alongside the message rendered on the
// message line (or re-wrapped by a higher frame).
type Result struct {
	Code    Code
	Message string
}

// OK is the canonical empty-message success result.
var OK = Result{Code: Success}

// NotFoundf builds a NotFound result; NotFound never escapes to the user
// as an error, so the message is informational only.
func NotFoundf(format string, args ...any) Result {
	return Result{Code: NotFound, Message: fmt.Sprintf(format, args...)}
}

// Failuref builds a Failure result.
func Failuref(format string, args ...any) Result {
	return Result{Code: Failure, Message: fmt.Sprintf(format, args...)}
}

// Error adapts a Result carrying Failure-or-worse severity to the error
// interface, so it can be returned from ordinary Go functions.
func (r Result) Error() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Code.String()
}

// Merge returns the more severe of two results, per the "most severe
// status wins" rule. Ties keep the first (already-recorded) result.
func Merge(a, b Result) Result {
	if b.Code > a.Code {
		return b
	}
	return a
}

// Force converts a Failure-class result into Success, preserving the
// message, per the script `force` modifier (spec §4.6, §7).
func Force(r Result) Result {
	if r.Code == Failure {
		return Result{Code: Success, Message: r.Message}
	}
	return r
}
