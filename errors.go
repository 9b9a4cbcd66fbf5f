package macho

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/appsworld/go-macho64/internal/fields"
)

var (
	// ErrMalformedInput means a fixed-size record did not fit in the buffer
	// or a load command declared an impossible size.
	ErrMalformedInput = fields.ErrMalformedInput
	// ErrUnrecognizedMagic means the buffer does not start with MH_MAGIC_64.
	ErrUnrecognizedMagic = errors.New("unrecognized magic")
	// ErrUnresolvedSymbol tags findings for codes without a symbolic name.
	ErrUnresolvedSymbol = errors.New("unresolved symbol")
	// ErrStructuralInconsistency tags findings where declared and decoded sizes disagree.
	ErrStructuralInconsistency = errors.New("structural inconsistency")
)

// FormatError is returned by some operations if the data does
// not have the correct format for an object file.
type FormatError struct {
	off int64
	msg string
	val interface{}
	err error
}

func (e *FormatError) Error() string {
	msg := e.msg
	if e.val != nil {
		msg += fmt.Sprintf(" '%v'", e.val)
	}
	msg += fmt.Sprintf(" in record at byte %#x", e.off)
	return msg
}

func (e *FormatError) Unwrap() error { return e.err }

// Offset returns the file offset of the record that failed to decode.
func (e *FormatError) Offset() int64 { return e.off }

// Severity grades a Finding.
type Severity int

const (
	// Note findings are informational, e.g. a code without a symbolic name.
	Note Severity = iota
	// Warning findings mean the file is not internally consistent.
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "note"
}

// Scope says which part of the file a Finding is attached to.
type Scope int

const (
	ScopeHeader Scope = iota
	ScopeLoad
	ScopeFile
)

// A Finding is a non-fatal problem found while decoding.
type Finding struct {
	Severity Severity
	Scope    Scope
	Offset   uint64 // offset of the record the finding belongs to
	Msg      string
	Err      error // ErrUnresolvedSymbol or ErrStructuralInconsistency
}

func (f Finding) Error() string { return f.Msg }
func (f Finding) Unwrap() error { return f.Err }

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Severity, f.Msg)
}

func (f Finding) MarshalJSON() ([]byte, error) {
	kind := ""
	if f.Err != nil {
		kind = f.Err.Error()
	}
	return json.Marshal(struct {
		Severity string `json:"severity"`
		Kind     string `json:"kind"`
		Offset   uint64 `json:"offset"`
		Message  string `json:"message"`
	}{f.Severity.String(), kind, f.Offset, f.Msg})
}

func unresolved(scope Scope, off uint64, format string, args ...interface{}) Finding {
	return Finding{Severity: Note, Scope: scope, Offset: off, Msg: fmt.Sprintf(format, args...), Err: ErrUnresolvedSymbol}
}

func inconsistent(scope Scope, off uint64, format string, args ...interface{}) Finding {
	return Finding{Severity: Warning, Scope: scope, Offset: off, Msg: fmt.Sprintf(format, args...), Err: ErrStructuralInconsistency}
}
