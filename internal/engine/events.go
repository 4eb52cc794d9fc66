package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/healthquest/internal/store"
)

// Progress event kinds.
const (
	EventXPAwarded           = "xp_awarded"
	EventLevelUp             = "level_up"
	EventNodeCompleted       = "node_completed"
	EventAchievementUnlocked = "achievement_unlocked"
	EventBossStarted         = "boss_started"
	EventBossCompleted       = "boss_completed"
	EventStateReset          = "state_reset"
)

// newEventID correlates every event written by one engine call.
func newEventID() string {
	return uuid.New().String()
}

// record appends to the event log. A failure is reported as a warning and
// never fails the calling operation.
func (e *Engine) record(ctx context.Context, data store.ProgressEventData) {
	if e.events == nil {
		return
	}
	if err := e.events.AppendProgressEvent(ctx, data); err != nil {
		fmt.Fprintf(e.warn, "warning: record %s event: %v\n", data.Kind, err)
	}
}
