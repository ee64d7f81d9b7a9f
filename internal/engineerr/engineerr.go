// Package engineerr defines the error taxonomy of §7: content errors,
// illegal-action errors, prompt-protocol errors, FFI/transport errors, and
// save-store errors, each a typed, wrapped error rather than a plain
// string, mirroring the teacher's LegalityResult/error distinction in
// internal/game/rules/legality.go.
package engineerr

import (
	"errors"
	"fmt"
)

// Sentinel errors callers can match against with errors.Is.
var (
	ErrContent        = errors.New("content error")
	ErrIllegalAction   = errors.New("illegal action")
	ErrPromptProtocol = errors.New("prompt protocol error")
	ErrTransport      = errors.New("transport error")
	ErrSaveStore      = errors.New("save store error")
)

// IllegalActionError is returned by the action applier in release builds
// when Apply is called with an action outside the current legal-action set
// (§7). Debug builds should instead panic with the same information; see
// battle.Apply's debug-mode wiring.
type IllegalActionError struct {
	Action    fmt.Stringer
	Permitted fmt.Stringer
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %s: not in permitted set %s", e.Action, e.Permitted)
}

func (e *IllegalActionError) Unwrap() error { return ErrIllegalAction }

// PromptProtocolError is returned when a prompt answer's variant does not
// match the pending prompt's expected variant (§7).
type PromptProtocolError struct {
	Expected string
	Got      string
}

func (e *PromptProtocolError) Error() string {
	return fmt.Sprintf("prompt protocol error: expected a %s answer, got %s", e.Expected, e.Got)
}

func (e *PromptProtocolError) Unwrap() error { return ErrPromptProtocol }

// SaveStoreError carries an error code and human message for persistence
// failures (§7 "typed initialization errors with error-code, human
// message, and details").
type SaveStoreError struct {
	Code    string
	Message string
	Details map[string]string
}

func (e *SaveStoreError) Error() string {
	return fmt.Sprintf("save store error [%s]: %s", e.Code, e.Message)
}

func (e *SaveStoreError) Unwrap() error { return ErrSaveStore }
