// internal/export/bucket.go
package export

import (
	"time"

	"mcp-diet-registry/internal/catalog"
	"mcp-diet-registry/internal/models"
)

// Event is one participant eating one food item.
type Event struct {
	Seq           int
	RegistryID    string
	ParticipantID string
	Timestamp     time.Time
	Quantity      float64
	Food          models.Food
}

// Flatten turns registry entries into events, numbered in arrival order.
// A missing, negative or non-numeric quantity becomes 0.
func Flatten(entries []models.RegistryEntry) []Event {
	var events []Event
	for _, entry := range entries {
		for _, item := range entry.Foods {
			q := finite(toNumber(item.Quantity))
			if q < 0 {
				q = 0
			}
			events = append(events, Event{
				Seq:           len(events),
				RegistryID:    entry.ID,
				ParticipantID: string(entry.Participant),
				Timestamp:     entry.Timestamp.Time,
				Quantity:      q,
				Food:          item.Food,
			})
		}
	}
	return events
}

// Bucket collects the events classified under one catalog group.
type Bucket struct {
	Group  string
	Events []Event
}

// Bucketize creates one bucket per group, in the given order, and appends
// each event to the bucket named by its classification for dimension.
// Events whose classification is not listed are left out.
func Bucketize(groups []string, dimension catalog.Dimension, events []Event) []Bucket {
	buckets := make([]Bucket, len(groups))
	index := make(map[string]int, len(groups))
	for i, g := range groups {
		buckets[i] = Bucket{Group: g}
		index[g] = i
	}

	for _, ev := range events {
		i, ok := index[ev.Food.Classification(string(dimension))]
		if !ok {
			continue
		}
		buckets[i].Events = append(buckets[i].Events, ev)
	}
	return buckets
}
