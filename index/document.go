package index

import (
	"fmt"

	"github.com/beyondbinary/buddeee/core"
)

// Document pairs an embedding vector with the catalog snapshot it was
// derived from.
type Document struct {
	Vector []float32
	Event  *core.Event
}

// eventToText builds the canonical textual representation of an event for
// embedding. Pure and deterministic: two rebuilds from identical catalog
// snapshots embed identical strings.
func eventToText(event *core.Event) string {
	schedule := event.Time
	if schedule == "" {
		schedule = "Not specified"
	}
	return fmt.Sprintf("%s. Type: %s. %s. Location: %s. Time: %s.",
		event.Title, event.EventType, event.Description, event.Location, schedule)
}
