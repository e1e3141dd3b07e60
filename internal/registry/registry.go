// Package registry talks to the authoritative room store. The gateway only
// consumes it: listing live rooms, inspecting one, and invoking methods on a
// specific running room process.
package registry

import (
	"context"
	"errors"

	"github.com/arenalab/rooms-admin/internal/monitor"
)

// ErrRoomNotFound reports a roomId with no live room behind it.
var ErrRoomNotFound = errors.New("room is not registered")

// Registry is the room store contract. Rooms returns a fresh snapshot per
// call; Call is a single request/response invocation with no retries on the
// gateway side.
type Registry interface {
	Rooms(ctx context.Context) ([]monitor.RoomSummary, error)
	Inspect(ctx context.Context, roomID string) (map[string]any, error)
	Call(ctx context.Context, roomID, method string, args []any) (any, error)
}
