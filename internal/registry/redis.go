package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/arenalab/rooms-admin/internal/monitor"
)

const (
	roomKeyPrefix  = "monitor:room:"
	roomIndexKey   = "monitor:rooms"
	callListSuffix = ":calls"
	replyKeyPrefix = "monitor:reply:"

	// inspect is a remote call like any other; rooms publish their state
	// under this well-known method name.
	inspectMethod = "getInspectData"
)

// RedisRegistry reads room summaries that game servers publish to Redis and
// routes remote calls to them as request/reply over Redis lists.
//
// Keys: each room keeps its summary as JSON under monitor:room:<id> and is
// listed in the monitor:rooms index set. A call is RPUSHed onto
// monitor:room:<id>:calls with a uuid-correlated reply key the room answers
// on; the gateway BLPOPs that key. The BLPOP timeout is the transport's, the
// gateway adds no timeout or retry logic of its own.
type RedisRegistry struct {
	client      *redis.Client
	callTimeout time.Duration
}

func NewRedis(client *redis.Client, callTimeout time.Duration) *RedisRegistry {
	return &RedisRegistry{client: client, callTimeout: callTimeout}
}

func (r *RedisRegistry) Rooms(ctx context.Context) ([]monitor.RoomSummary, error) {
	ids, err := r.client.SMembers(ctx, roomIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = roomKeyPrefix + id
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch room summaries: %w", err)
	}

	rooms := make([]monitor.RoomSummary, 0, len(vals))
	for i, val := range vals {
		raw, ok := val.(string)
		if !ok {
			// Index entry outlived its summary key; drop it.
			r.client.SRem(ctx, roomIndexKey, ids[i])
			continue
		}
		var room monitor.RoomSummary
		if err := json.Unmarshal([]byte(raw), &room); err != nil {
			return nil, fmt.Errorf("decode room %s: %w", ids[i], err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (r *RedisRegistry) Inspect(ctx context.Context, roomID string) (map[string]any, error) {
	result, err := r.Call(ctx, roomID, inspectMethod, nil)
	if err != nil {
		return nil, err
	}
	if m, ok := result.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{"state": result}, nil
}

type callRequest struct {
	ID      string `json:"id"`
	Method  string `json:"method"`
	Args    []any  `json:"args,omitempty"`
	ReplyTo string `json:"replyTo"`
}

type callReply struct {
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

func (r *RedisRegistry) Call(ctx context.Context, roomID, method string, args []any) (any, error) {
	exists, err := r.client.Exists(ctx, roomKeyPrefix+roomID).Result()
	if err != nil {
		return nil, fmt.Errorf("check room %s: %w", roomID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("call %s on room %s: %w", method, roomID, ErrRoomNotFound)
	}

	req := callRequest{
		ID:      uuid.NewString(),
		Method:  method,
		Args:    args,
		ReplyTo: replyKeyPrefix + uuid.NewString(),
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode call request: %w", err)
	}

	if err := r.client.RPush(ctx, roomKeyPrefix+roomID+callListSuffix, payload).Err(); err != nil {
		return nil, fmt.Errorf("enqueue call for room %s: %w", roomID, err)
	}

	vals, err := r.client.BLPop(ctx, r.callTimeout, req.ReplyTo).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("room %s did not reply to %s: %w", roomID, method, ErrRoomNotFound)
		}
		return nil, fmt.Errorf("await reply from room %s: %w", roomID, err)
	}

	var reply callReply
	if err := json.Unmarshal([]byte(vals[1]), &reply); err != nil {
		return nil, fmt.Errorf("decode reply from room %s: %w", roomID, err)
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("room %s method %s: %s", roomID, method, reply.Error)
	}
	return reply.Result, nil
}
