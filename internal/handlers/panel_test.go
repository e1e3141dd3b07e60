package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/arenalab/rooms-admin/config"
	"github.com/arenalab/rooms-admin/internal/monitor"
	"github.com/arenalab/rooms-admin/internal/registry"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// countingRegistry records how many remote calls reach the registry, to
// verify that guard denials never dispatch.
type countingRegistry struct {
	registry.Registry
	calls int
}

func (c *countingRegistry) Call(ctx context.Context, roomID, method string, args []any) (any, error) {
	c.calls++
	return c.Registry.Call(ctx, roomID, method, args)
}

func seedRegistry(t *testing.T) *registry.LocalRegistry {
	t.Helper()
	reg := registry.NewLocal()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seeds := []struct {
		id      string
		clients int
	}{
		{"r1", 2},
		{"r2", 5},
		{"r3", 1},
	}
	for i, seed := range seeds {
		reg.Add(monitor.RoomSummary{
			RoomID:     seed.id,
			Name:       "GameRoom",
			Clients:    seed.clients,
			MaxClients: 8,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			Metadata:   map[string]any{"region": "eu"},
		})
	}
	return reg
}

func testOptions() monitor.Options {
	opts := monitor.DefaultOptions()
	opts.RoomActions = []monitor.ActionDescriptor{
		{ID: "restart", Name: "Restart", HandlerName: "restartRoom", ConfirmRequired: true},
	}
	opts.ClientActions = []monitor.ActionDescriptor{
		{ID: "kick", Name: "Kick", HandlerName: "kickClient"},
	}
	return opts
}

func newTestRouter(opts monitor.Options, reg registry.Registry) *gin.Engine {
	cfg := &config.Config{
		Environment:   "test",
		JWTSecret:     "test-secret",
		AdminUser:     "admin",
		AdminPassword: "hunter2",
	}
	return NewRouter(cfg, opts, reg, nil, quietLogger())
}

func doGet(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "response was not JSON: %s", w.Body.String())
	return w, body
}

func TestHealth(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(testOptions(), seedRegistry(t))

	w, body := doGet(t, router, "/monitor/health")
	req.Equal(http.StatusOK, w.Code)
	req.Equal("ok", body["status"])
}

func TestListRoomsSortedPage(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(testOptions(), seedRegistry(t))

	w, body := doGet(t, router, "/monitor/?sort=clients&order=desc&limit=2")
	req.Equal(http.StatusOK, w.Code)

	rooms := body["rooms"].([]any)
	req.Len(rooms, 2)
	req.Equal(float64(5), rooms[0].(map[string]any)["clients"])
	req.Equal(float64(2), rooms[1].(map[string]any)["clients"])

	pagination := body["pagination"].(map[string]any)
	req.Equal(float64(3), pagination["total"])
	req.Equal(float64(2), pagination["pages"])
	req.Equal(float64(1), pagination["page"])
	req.Equal(float64(2), pagination["limit"])

	// connections covers the returned page only: 5 + 2
	req.Equal(float64(7), body["connections"])

	req.NotEmpty(body["columns"])
	access := body["access"].(map[string]any)
	req.Equal(true, access["allowRoomDisposal"])

	actions := body["actions"].([]any)
	req.Len(actions, 1)
	action := actions[0].(map[string]any)
	req.Equal("restart", action["id"])
	req.Equal(true, action["confirmRequired"])
}

func TestListRoomsPageBeyondLastIsEmpty(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(testOptions(), seedRegistry(t))

	w, body := doGet(t, router, "/monitor/?page=99&limit=2")
	req.Equal(http.StatusOK, w.Code)
	req.Empty(body["rooms"].([]any))
	req.Equal(float64(3), body["pagination"].(map[string]any)["total"])
}

func TestListRoomsAdHocFilter(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(testOptions(), seedRegistry(t))

	w, body := doGet(t, router, `/monitor/?filter={"clients":5}`)
	req.Equal(http.StatusOK, w.Code)
	rooms := body["rooms"].([]any)
	req.Len(rooms, 1)
	req.Equal("r2", rooms[0].(map[string]any)["roomId"])
}

func TestListRoomsMalformedFilterIsIgnored(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(testOptions(), seedRegistry(t))

	w, body := doGet(t, router, `/monitor/?filter={broken`)
	req.Equal(http.StatusOK, w.Code)
	req.Equal(float64(3), body["pagination"].(map[string]any)["total"])
}

func TestListRoomsIdempotent(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(testOptions(), seedRegistry(t))

	_, first := doGet(t, router, "/monitor/?sort=clients")
	_, second := doGet(t, router, "/monitor/?sort=clients")
	req.Equal(first["rooms"], second["rooms"])
	req.Equal(first["pagination"], second["pagination"])
}

func TestListRoomsStaticTypeFilter(t *testing.T) {
	req := require.New(t)
	reg := seedRegistry(t)
	reg.Add(monitor.RoomSummary{RoomID: "x1", Name: "AdminRoom", Clients: 1, CreatedAt: time.Now()})

	opts := testOptions()
	opts.Filter = monitor.FilterOptions{ExcludeTypes: []string{"AdminRoom"}}
	router := newTestRouter(opts, reg)

	_, body := doGet(t, router, "/monitor/")
	for _, room := range body["rooms"].([]any) {
		req.NotEqual("AdminRoom", room.(map[string]any)["name"])
	}
	req.Equal(float64(3), body["pagination"].(map[string]any)["total"])
}

func TestInspectRoom(t *testing.T) {
	req := require.New(t)
	reg := seedRegistry(t)
	reg.SetState("r1", map[string]any{"phase": "playing"})
	router := newTestRouter(testOptions(), reg)

	w, body := doGet(t, router, "/monitor/room?roomId=r1")
	req.Equal(http.StatusOK, w.Code)
	req.Equal("r1", body["roomId"])
	req.Equal(map[string]any{"phase": "playing"}, body["state"])

	actions := body["actions"].([]any)
	req.Equal("restart", actions[0].(map[string]any)["id"])
	clientActions := body["clientActions"].([]any)
	req.Equal("kick", clientActions[0].(map[string]any)["id"])
}

func TestInspectRoomDenied(t *testing.T) {
	req := require.New(t)
	reg := &countingRegistry{Registry: seedRegistry(t)}
	opts := testOptions()
	opts.Access.AllowStateInspection = false
	router := newTestRouter(opts, reg)

	w, body := doGet(t, router, "/monitor/room?roomId=r1")
	req.Equal(http.StatusForbidden, w.Code)
	req.Equal(true, body["error"])
	req.Equal("State inspection is not allowed", body["message"])
	req.Zero(reg.calls)
}

func TestInspectRoomGone(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(testOptions(), seedRegistry(t))

	w, body := doGet(t, router, "/monitor/room?roomId=ghost")
	req.Equal(http.StatusInternalServerError, w.Code)
	req.Equal(true, body["error"])
	req.Equal("room ghost is not available anymore.", body["message"])
}

func TestCallDisconnectDenied(t *testing.T) {
	req := require.New(t)
	reg := &countingRegistry{Registry: seedRegistry(t)}
	opts := testOptions()
	opts.Access.AllowRoomDisposal = false
	router := newTestRouter(opts, reg)

	w, body := doGet(t, router, "/monitor/room/call?roomId=r1&method=disconnect")
	req.Equal(http.StatusForbidden, w.Code)
	req.Equal(true, body["error"])
	req.Equal("Room disposal is not allowed", body["message"])
	req.Zero(reg.calls, "denied calls must never reach the registry")
}

func TestCallCustomRoomAction(t *testing.T) {
	req := require.New(t)
	reg := seedRegistry(t)

	var got []any
	called := false
	reg.Handle("r1", "restartRoom", func(args []any) (any, error) {
		called = true
		got = args
		return "restarted", nil
	})
	router := newTestRouter(testOptions(), reg)

	w, body := doGet(t, router, "/monitor/room/call?roomId=r1&method=customAction:restart")
	req.Equal(http.StatusOK, w.Code)
	req.Equal(false, body["error"])
	req.Equal("restarted", body["result"])
	req.True(called)
	req.Empty(got)
}

func TestCallCustomClientActionInjectsClientID(t *testing.T) {
	req := require.New(t)
	reg := seedRegistry(t)

	var got []any
	reg.Handle("r1", "kickClient", func(args []any) (any, error) {
		got = args
		return true, nil
	})
	router := newTestRouter(testOptions(), reg)

	path := `/monitor/room/call?roomId=r1&method=customClientAction:kick:c-9&args=["cheating"]`
	w, _ := doGet(t, router, path)
	req.Equal(http.StatusOK, w.Code)
	req.Equal([]any{"c-9", "cheating"}, got)
}

func TestCallUnknownCustomAction(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(testOptions(), seedRegistry(t))

	w, body := doGet(t, router, "/monitor/room/call?roomId=r1&method=customAction:nope")
	req.Equal(http.StatusNotFound, w.Code)
	req.Equal("Custom action nope not found", body["message"])

	w, body = doGet(t, router, "/monitor/room/call?roomId=r1&method=customClientAction:nope:c1")
	req.Equal(http.StatusNotFound, w.Code)
	req.Equal("Custom client action nope not found", body["message"])
}

func TestCallRoomGone(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(testOptions(), seedRegistry(t))

	w, body := doGet(t, router, "/monitor/room/call?roomId=ghost&method=lock")
	req.Equal(http.StatusInternalServerError, w.Code)
	req.Equal("room ghost is not available anymore.", body["message"])
}

func TestCallValidation(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(testOptions(), seedRegistry(t))

	w, _ := doGet(t, router, "/monitor/room/call?roomId=r1")
	req.Equal(http.StatusBadRequest, w.Code)

	w, _ = doGet(t, router, "/monitor/room/call?roomId=r1&method=lock&args=notjson")
	req.Equal(http.StatusBadRequest, w.Code)

	w, _ = doGet(t, router, "/monitor/room/call?roomId=r1&method=customAction:")
	req.Equal(http.StatusBadRequest, w.Code)
}

func TestJWTAuthStrategy(t *testing.T) {
	req := require.New(t)
	opts := testOptions()
	opts.Auth = monitor.AuthJWT
	router := newTestRouter(opts, seedRegistry(t))

	// No token: rejected.
	w, _ := doGet(t, router, "/monitor/")
	req.Equal(http.StatusUnauthorized, w.Code)

	// Health stays open.
	w, _ = doGet(t, router, "/monitor/health")
	req.Equal(http.StatusOK, w.Code)

	// Login, then use the issued token.
	loginBody := `{"username":"admin","password":"hunter2"}`
	w = httptest.NewRecorder()
	loginReq := httptest.NewRequest("POST", "/monitor/auth/login", strings.NewReader(loginBody))
	loginReq.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, loginReq)
	req.Equal(http.StatusOK, w.Code)

	var login LoginResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &login))
	req.NotEmpty(login.Token)

	w = httptest.NewRecorder()
	listReq := httptest.NewRequest("GET", "/monitor/", nil)
	listReq.Header.Set("Authorization", "Bearer "+login.Token)
	router.ServeHTTP(w, listReq)
	req.Equal(http.StatusOK, w.Code)
}
