// Package events publishes catalog change notifications to a message broker.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// Action describes what happened to an entity.
type Action string

const (
	ActionCreated  Action = "created"
	ActionReplaced Action = "replaced"
	ActionPatched  Action = "patched"
	ActionDeleted  Action = "deleted"
)

// Entity names used in routing keys.
const (
	EntityMovie    = "movie"
	EntityDirector = "director"
	EntityGenre    = "genre"
)

// Change is the message body published after a successful write.
type Change struct {
	ID         string    `json:"id"`
	Entity     string    `json:"entity"`
	Action     Action    `json:"action"`
	EntityID   int64     `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewChange stamps a change with a fresh message id and the current time.
func NewChange(entity string, action Action, entityID int64) Change {
	return Change{
		ID:         uuid.NewString(),
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}

// RoutingKey is "<entity>.<action>", e.g. "movie.patched".
func (c Change) RoutingKey() string {
	return c.Entity + "." + string(c.Action)
}

func (c Change) encode() ([]byte, error) {
	return json.Marshal(c)
}

// Publisher delivers changes. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
	Close() error
}

// Noop drops every change. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Change) error { return nil }
func (Noop) Close() error                          { return nil }

// New returns an AMQP publisher for url, or Noop when url is empty.
func New(url, exchange string, logger *log.Logger) (Publisher, error) {
	if url == "" {
		return Noop{}, nil
	}
	return DialAMQP(url, exchange, logger)
}
