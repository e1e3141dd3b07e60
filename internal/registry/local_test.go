package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arenalab/rooms-admin/internal/monitor"
)

func seedLocal(t *testing.T) *LocalRegistry {
	t.Helper()
	reg := NewLocal()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	reg.Add(monitor.RoomSummary{RoomID: "a", Name: "GameRoom", Clients: 2, CreatedAt: base})
	reg.Add(monitor.RoomSummary{RoomID: "b", Name: "GameRoom", Clients: 5, CreatedAt: base.Add(time.Minute)})
	return reg
}

func TestLocalRooms(t *testing.T) {
	req := require.New(t)
	reg := seedLocal(t)

	rooms, err := reg.Rooms(context.Background())
	req.NoError(err)
	req.Len(rooms, 2)
	req.Equal("a", rooms[0].RoomID)
	req.Equal("b", rooms[1].RoomID)

	reg.Remove("a")
	rooms, err = reg.Rooms(context.Background())
	req.NoError(err)
	req.Len(rooms, 1)
}

func TestLocalInspect(t *testing.T) {
	req := require.New(t)
	reg := seedLocal(t)
	reg.SetState("a", map[string]any{"phase": "lobby"})

	payload, err := reg.Inspect(context.Background(), "a")
	req.NoError(err)
	req.Equal("a", payload["roomId"])
	req.Equal(map[string]any{"phase": "lobby"}, payload["state"])

	_, err = reg.Inspect(context.Background(), "gone")
	req.ErrorIs(err, ErrRoomNotFound)
}

func TestLocalCallHandler(t *testing.T) {
	req := require.New(t)
	reg := seedLocal(t)

	var got []any
	reg.Handle("a", "restartRoom", func(args []any) (any, error) {
		got = args
		return "restarted", nil
	})

	result, err := reg.Call(context.Background(), "a", "restartRoom", []any{"now"})
	req.NoError(err)
	req.Equal("restarted", result)
	req.Equal([]any{"now"}, got)
}

func TestLocalCallBuiltins(t *testing.T) {
	req := require.New(t)
	reg := seedLocal(t)

	_, err := reg.Call(context.Background(), "a", "lock", nil)
	req.NoError(err)
	rooms, _ := reg.Rooms(context.Background())
	req.True(rooms[0].Locked)

	_, err = reg.Call(context.Background(), "a", "disconnect", nil)
	req.NoError(err)
	rooms, _ = reg.Rooms(context.Background())
	req.Len(rooms, 1)
}

func TestLocalCallErrors(t *testing.T) {
	req := require.New(t)
	reg := seedLocal(t)

	_, err := reg.Call(context.Background(), "gone", "lock", nil)
	req.ErrorIs(err, ErrRoomNotFound)

	_, err = reg.Call(context.Background(), "a", "noSuchMethod", nil)
	req.Error(err)

	reg.Handle("a", "boom", func(args []any) (any, error) {
		return nil, errors.New("handler exploded")
	})
	_, err = reg.Call(context.Background(), "a", "boom", nil)
	req.ErrorContains(err, "handler exploded")
}
