package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/arenalab/rooms-admin/internal/monitor"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is handled by middleware
		return true
	},
}

// LiveFeed handles GET /ws: pushes the filtered room list to the connected
// admin UI on the configured interval until the peer disconnects.
func (p *Panel) LiveFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		p.log.WithError(err).Warn("failed to upgrade live feed connection")
		return
	}

	go p.pushRooms(conn)
}

func (p *Panel) pushRooms(conn *websocket.Conn) {
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Drain incoming frames so peer close is noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	ticker := newFeedTicker(p.opts.FeedInterval)
	defer ticker.Stop()

	for {
		if err := p.writeRoomList(ctx, conn); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func newFeedTicker(interval time.Duration) *time.Ticker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return time.NewTicker(interval)
}

func (p *Panel) writeRoomList(ctx context.Context, conn *websocket.Conn) error {
	rooms, err := p.reg.Rooms(ctx)
	if err != nil {
		p.log.WithError(err).Warn("live feed registry query failed")
		return nil
	}

	spec := monitor.QuerySpec{Page: 1, Limit: p.opts.DefaultLimit}
	result := monitor.Query(rooms, spec, p.opts.Filter)
	return conn.WriteJSON(gin.H{
		"rooms":       nonNilRooms(result.Rooms),
		"total":       result.Total,
		"connections": result.Connections,
	})
}
