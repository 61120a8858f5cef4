package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/abim/abim-backend/internal/config"
	"github.com/abim/abim-backend/internal/metrics"
	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/service"
	ws "github.com/abim/abim-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// Feed delivers raw activity payloads until ctx is cancelled.
type Feed interface {
	Listen(ctx context.Context) (<-chan []byte, error)
}

// RedisFeed subscribes to the activity channel that ActivityService publishes on.
type RedisFeed struct {
	rdb *redis.Client
}

// NewRedisFeed creates a new RedisFeed.
func NewRedisFeed(rdb *redis.Client) *RedisFeed {
	return &RedisFeed{rdb: rdb}
}

// Listen subscribes and forwards messages until ctx ends, then unsubscribes.
func (f *RedisFeed) Listen(ctx context.Context) (<-chan []byte, error) {
	pubsub := f.rdb.Subscribe(ctx, config.CacheKey.ActivityFeedChannel())
	// Wait for the subscription confirmation so errors surface here.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer pubsub.Close()
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// ActivityStreamHandler pushes new activities to connected admin dashboards.
type ActivityStreamHandler struct {
	feed            Feed
	activityService *service.ActivityService
	log             zerolog.Logger
	upgrader        websocket.Upgrader
}

// NewActivityStreamHandler creates a new ActivityStreamHandler.
func NewActivityStreamHandler(feed Feed, activityService *service.ActivityService, log zerolog.Logger, allowedOrigins []string) *ActivityStreamHandler {
	return &ActivityStreamHandler{
		feed:            feed,
		activityService: activityService,
		log:             log.With().Str("component", "activity_stream_handler").Logger(),
		upgrader:        buildUpgrader(allowedOrigins),
	}
}

// StreamActivities godoc
// WS /ws/activities?token=...
// Sends the current feed as a "ready" event, then one "activity" event per
// newly logged activity. Clients may send {"action":"ping"}.
func (h *ActivityStreamHandler) StreamActivities(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	metrics.StreamClientConnected()
	defer metrics.StreamClientDisconnected()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	messages, err := h.feed.Listen(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Feed subscription failed")
		ws.WriteError(conn, "feed unavailable")
		return
	}

	recent, err := h.activityService.Recent(ctx, service.DefaultActivityLimit)
	if err != nil {
		h.log.Error().Err(err).Msg("Load recent activities failed")
		ws.WriteError(conn, "feed unavailable")
		return
	}
	if err := ws.WriteTyped(conn, ws.ReadyResponse{Event: ws.EventReady, Activities: recent}); err != nil {
		return
	}

	h.log.Debug().Msg("Dashboard connected")

	// gorilla connections allow one reader and one writer; replies from the
	// read loop are handed to this goroutine.
	replies := make(chan interface{}, 4)
	go h.readLoop(ctx, cancel, conn, replies)

	ticker := time.NewTicker(ws.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-messages:
			if !ok {
				return
			}
			var a model.Activity
			if err := json.Unmarshal(payload, &a); err != nil {
				h.log.Warn().Err(err).Msg("Dropping malformed feed message")
				continue
			}
			event := ws.ActivityResponse{Event: ws.EventActivity, Activity: service.Present(a, time.Now())}
			if err := ws.WriteTyped(conn, event); err != nil {
				return
			}
		case reply := <-replies:
			if err := ws.WriteTyped(conn, reply); err != nil {
				return
			}
		case <-ticker.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}

func (h *ActivityStreamHandler) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, replies chan<- interface{}) {
	defer cancel()
	ws.KeepAlive(conn)

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Msg("Unexpected close")
			} else {
				h.log.Debug().Msg("Connection closed")
			}
			return
		}

		var reply interface{}
		switch msg.Action {
		case ws.ActionPing:
			reply = ws.PongResponse{Event: ws.EventPong}
		default:
			reply = ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(msg.Action)}
		}

		select {
		case replies <- reply:
		case <-ctx.Done():
			return
		}
	}
}
