package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp-diet-registry/internal/catalog"
	"mcp-diet-registry/internal/models"
)

func TestFlatten(t *testing.T) {
	assert.Empty(t, Flatten(nil))

	ts := time.Date(2024, 1, 5, 13, 0, 0, 0, time.UTC)
	events := Flatten([]models.RegistryEntry{
		entry("R1", "P1", ts, item(testFood("Leches", 1.0), 2.0), item(testFood("Frutas", 1.0), "1.5")),
		entry("R2", "P2", ts, item(testFood("Leches", 1.0), nil), item(testFood("Leches", 1.0), "dos"), item(testFood("Leches", 1.0), -3.0)),
	})

	require.Len(t, events, 5)
	for i, ev := range events {
		assert.Equal(t, i, ev.Seq)
	}
	assert.Equal(t, "R1", events[0].RegistryID)
	assert.Equal(t, "P1", events[0].ParticipantID)
	assert.Equal(t, ts, events[0].Timestamp)
	assert.Equal(t, 2.0, events[0].Quantity)
	assert.Equal(t, 1.5, events[1].Quantity)
	assert.Equal(t, 0.0, events[2].Quantity)
	assert.Equal(t, 0.0, events[3].Quantity)
	assert.Equal(t, 0.0, events[4].Quantity)
}

func TestBucketize(t *testing.T) {
	groups := []string{"Leches", "Frutas", "Verduras"}
	ts := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	events := Flatten([]models.RegistryEntry{
		entry("R1", "P1", ts,
			item(testFood("Frutas", 1.0), 1.0),
			item(testFood("Golosinas", 1.0), 1.0),
			item(testFood("Leches", 1.0), 1.0),
			item(testFood("", 1.0), 1.0),
			item(testFood("Frutas", 1.0), 2.0),
		),
	})

	buckets := Bucketize(groups, catalog.Group, events)

	require.Len(t, buckets, 3)
	assert.Equal(t, "Leches", buckets[0].Group)
	assert.Equal(t, "Frutas", buckets[1].Group)
	assert.Equal(t, "Verduras", buckets[2].Group)

	assert.Len(t, buckets[0].Events, 1)
	require.Len(t, buckets[1].Events, 2)
	assert.Equal(t, 0, buckets[1].Events[0].Seq)
	assert.Equal(t, 4, buckets[1].Events[1].Seq)
	assert.Empty(t, buckets[2].Events)
}

func TestBucketizeExhaustiveAndExclusive(t *testing.T) {
	cat := catalog.Default()
	groups := cat.Groups(catalog.Group)
	ts := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	var items []models.FoodEntry
	for _, g := range append(groups, "Golosinas", "leches", "Leches ") {
		items = append(items, item(testFood(g, 1.0), 1.0))
	}
	events := Flatten([]models.RegistryEntry{entry("R1", "P1", ts, items...)})

	buckets := Bucketize(groups, catalog.Group, events)

	seen := make(map[int]int)
	for _, b := range buckets {
		for _, ev := range b.Events {
			seen[ev.Seq]++
			assert.Equal(t, b.Group, ev.Food.GroupExportable)
		}
	}
	for _, ev := range events {
		if cat.Contains(catalog.Group, ev.Food.GroupExportable) {
			assert.Equal(t, 1, seen[ev.Seq], "event %d", ev.Seq)
		} else {
			assert.Zero(t, seen[ev.Seq], "event %d", ev.Seq)
		}
	}
}

func TestBucketizeUsesDimension(t *testing.T) {
	food := testFood("Leches", 1.0)
	food.AdequacySubgroup = "Receta mexicana"
	events := Flatten([]models.RegistryEntry{entry("R1", "P1", time.Now(), item(food, 1.0))})

	buckets := Bucketize([]string{"Alimento mexicano", "Receta mexicana"}, catalog.Adequacy, events)

	assert.Empty(t, buckets[0].Events)
	assert.Len(t, buckets[1].Events, 1)
}

func TestBucketizeIsDeterministic(t *testing.T) {
	groups := []string{"Leches", "Frutas"}
	events := Flatten([]models.RegistryEntry{
		entry("R1", "P1", time.Now(), item(testFood("Frutas", 1.0), 1.0), item(testFood("Leches", 1.0), 1.0), item(testFood("Frutas", 1.0), 3.0)),
	})

	assert.Equal(t, Bucketize(groups, catalog.Group, events), Bucketize(groups, catalog.Group, events))
}
