// Package audit emits structured security and data-change events.
package audit

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventLoginSuccess      EventType = "login_success"
	EventLoginFailure      EventType = "login_failure"
	EventLogout            EventType = "logout"
	EventAppointmentCreate EventType = "appointment_create"
	EventAppointmentStatus EventType = "appointment_status"
	EventAppointmentDelete EventType = "appointment_delete"
	EventOrgCreate         EventType = "org_create"
	EventOrgUpdate         EventType = "org_update"
	EventOrgDelete         EventType = "org_delete"
	EventRateLimitExceed   EventType = "rate_limit_exceeded"
	EventCSRFFailure       EventType = "csrf_failure"
)

type Event struct {
	Type      EventType
	OpenID    string
	IP        string
	UserAgent string
	Details   map[string]interface{}
}

func Log(ctx context.Context, event Event) {
	logger := log.With().
		Str("audit", "security").
		Str("event_type", string(event.Type)).
		Time("timestamp", time.Now()).
		Logger()

	if event.OpenID != "" {
		logger = logger.With().Str("open_id", event.OpenID).Logger()
	}
	if event.IP != "" {
		logger = logger.With().Str("ip", event.IP).Logger()
	}
	if event.UserAgent != "" {
		logger = logger.With().Str("user_agent", event.UserAgent).Logger()
	}

	logEvent := logger.Info()
	for k, v := range event.Details {
		logEvent = addDetail(logEvent, k, v)
	}
	logEvent.Msg("audit event")
}

// FromRequest captures caller metadata for an audit event.
func FromRequest(r *http.Request, eventType EventType, openID string) Event {
	return Event{
		Type:      eventType,
		OpenID:    openID,
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}

func addDetail(e *zerolog.Event, key string, value interface{}) *zerolog.Event {
	switch v := value.(type) {
	case string:
		return e.Str(key, v)
	case int:
		return e.Int(key, v)
	case int64:
		return e.Int64(key, v)
	case bool:
		return e.Bool(key, v)
	default:
		return e.Interface(key, v)
	}
}
