package monitor

import "fmt"

// PermissionError is a guard rejection. It is terminal for the request: the
// router answers 403 and no dispatch happens.
type PermissionError struct {
	Op Operation
}

func (e *PermissionError) Error() string {
	return DenialMessage(e.Op)
}

// ActionNotFoundError reports an unknown custom action id.
type ActionNotFoundError struct {
	Scope ActionScope
	ID    string
}

func (e *ActionNotFoundError) Error() string {
	if e.Scope == ScopeClient {
		return fmt.Sprintf("Custom client action %s not found", e.ID)
	}
	return fmt.Sprintf("Custom action %s not found", e.ID)
}

// RoomUnavailableError reports a failed remote call: the room is gone or its
// handler errored. The gateway never retries.
type RoomUnavailableError struct {
	RoomID string
	Err    error
}

func (e *RoomUnavailableError) Error() string {
	return fmt.Sprintf("room %s is not available anymore.", e.RoomID)
}

func (e *RoomUnavailableError) Unwrap() error {
	return e.Err
}

// TokenError reports a malformed method token, rejected at the router
// boundary before any dispatch.
type TokenError struct {
	Token string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("malformed method token %q", e.Token)
}
