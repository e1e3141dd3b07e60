// Command example runs the admin panel against an in-memory registry seeded
// with demo rooms, so the endpoints can be explored without a game server or
// Redis behind them.
package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/arenalab/rooms-admin/config"
	"github.com/arenalab/rooms-admin/internal/handlers"
	"github.com/arenalab/rooms-admin/internal/monitor"
	"github.com/arenalab/rooms-admin/internal/registry"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	reg := registry.NewLocal()
	seedRooms(reg, logger)

	opts := monitor.DefaultOptions()
	opts.Columns = append(opts.Columns, "metadata.region")
	opts.RoomActions = []monitor.ActionDescriptor{
		{
			ID:              "restart",
			Name:            "Restart",
			Description:     "Restart the room process",
			Icon:            "refresh",
			HandlerName:     "restartRoom",
			ConfirmRequired: true,
		},
	}
	opts.ClientActions = []monitor.ActionDescriptor{
		{
			ID:          "notify",
			Name:        "Notify",
			Description: "Send a notification to one client",
			Icon:        "bell",
			HandlerName: "notifyClient",
		},
	}

	router := handlers.NewRouter(cfg, opts, reg, nil, logger)

	logger.WithFields(logrus.Fields{
		"port":   cfg.Port,
		"prefix": opts.APIPrefix,
	}).Info("starting example panel over local registry")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("failed to start server")
	}
}

func seedRooms(reg *registry.LocalRegistry, logger *logrus.Logger) {
	seeds := []struct {
		name    string
		clients int
		region  string
	}{
		{"GameRoom", 2, "eu"},
		{"GameRoom", 5, "us"},
		{"LobbyRoom", 1, "eu"},
	}
	for _, seed := range seeds {
		roomID := uuid.NewString()[:8]
		reg.Add(monitor.RoomSummary{
			RoomID:     roomID,
			Name:       seed.name,
			Clients:    seed.clients,
			MaxClients: 8,
			CreatedAt:  time.Now(),
			Metadata:   map[string]any{"region": seed.region},
		})
		reg.SetState(roomID, map[string]any{"phase": "playing"})
		reg.Handle(roomID, "restartRoom", func(args []any) (any, error) {
			logger.WithField("roomId", roomID).Info("restarting room")
			return "restarted", nil
		})
		reg.Handle(roomID, "notifyClient", func(args []any) (any, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("notifyClient requires a client id")
			}
			logger.WithFields(logrus.Fields{
				"roomId": roomID,
				"client": args[0],
			}).Info("notifying client")
			return true, nil
		})
	}
}
