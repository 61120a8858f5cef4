package websocket

import "github.com/abim/abim-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only client message shape; the feed is read-only.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError    Event = "error"
	EventReady    Event = "ready"
	EventActivity Event = "activity"
	EventPong     Event = "pong"
)

// ReadyResponse is sent once after the upgrade, carrying the current feed.
type ReadyResponse struct {
	Event      Event                `json:"event"`
	Activities []model.ActivityView `json:"activities"`
}

// ActivityResponse forwards one newly logged activity.
type ActivityResponse struct {
	Event    Event              `json:"event"`
	Activity model.ActivityView `json:"activity"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
