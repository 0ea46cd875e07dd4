package deploy

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies deployment failures so callers can decide between a hard
// stop, a retry, or a "probably still starting" warning.
type Kind int

const (
	// KindUnknown is anything we couldn't classify.
	KindUnknown Kind = iota
	// KindConfig covers missing or placeholder configuration values.
	KindConfig
	// KindPrereq covers missing external tools (docker, compose).
	KindPrereq
	// KindReadiness covers a deployed service that hasn't answered its
	// liveness probe yet. Not necessarily fatal.
	KindReadiness
	// KindOrchestration covers container start/stop failures.
	KindOrchestration
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration"
	case KindPrereq:
		return "prerequisite"
	case KindReadiness:
		return "readiness"
	case KindOrchestration:
		return "orchestration"
	default:
		return "unknown"
	}
}

// Error is a classified deployment error. Remediation, when set, is a short
// human-directed hint printed alongside the message.
type Error struct {
	Kind        Kind
	Msg         string
	Remediation string
}

func (e *Error) Error() string {
	return e.Msg
}

func NewError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) WithRemediation(format string, args ...interface{}) *Error {
	e.Remediation = fmt.Sprintf(format, args...)
	return e
}

// KindOf unwraps err (through any pkg/errors wrapping) and reports its
// classification.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if derr, ok := errors.Cause(err).(*Error); ok {
		return derr.Kind
	}
	return KindUnknown
}

// RemediationOf returns the remediation hint attached to err, if any.
func RemediationOf(err error) string {
	if err == nil {
		return ""
	}
	if derr, ok := errors.Cause(err).(*Error); ok {
		return derr.Remediation
	}
	return ""
}
