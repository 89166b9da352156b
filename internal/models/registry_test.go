package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryEntryDecoding(t *testing.T) {
	data := `{
		"_id": "65a1",
		"usuario": {"_id": "u1", "nombre": "Ana"},
		"horario": "2024-02-10T08:15:00.000Z",
		"alimentos": [
			{"id": {"_id": "f1", "nombreAlimento": "Tortilla", "grupoExportable": "Cereales",
			        "cantidadAlimento": {"pesoNeto": "30"}}, "cantidad": "1.5"}
		]
	}`

	var entry RegistryEntry
	require.NoError(t, json.Unmarshal([]byte(data), &entry))

	assert.Equal(t, "65a1", entry.ID)
	assert.Equal(t, ParticipantRef("u1"), entry.Participant)
	assert.True(t, entry.Timestamp.Equal(time.Date(2024, 2, 10, 8, 15, 0, 0, time.UTC)))
	require.Len(t, entry.Foods, 1)
	assert.Equal(t, "Tortilla", entry.Foods[0].Food.Name)
	assert.Equal(t, "1.5", entry.Foods[0].Quantity)
	assert.Equal(t, "30", entry.Foods[0].Food.Section(SectionQuantity).Value("pesoNeto"))
	assert.Equal(t, "Cereales", entry.Foods[0].Food.Classification("grupoExportable"))
}

func TestRegistryEntryPrefersID(t *testing.T) {
	var entry RegistryEntry
	require.NoError(t, json.Unmarshal([]byte(`{"id": "a", "_id": "b"}`), &entry))
	assert.Equal(t, "a", entry.ID)
}

func TestParticipantRef(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ParticipantRef
	}{
		{"string", `"p1"`, "p1"},
		{"number", `42`, "42"},
		{"null", `null`, ""},
		{"document _id", `{"_id": "p2"}`, "p2"},
		{"document id", `{"id": "p3"}`, "p3"},
		{"document without id", `{"nombre": "Ana"}`, ""},
		{"array", `["p1"]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParticipantRef("stale")
			require.NoError(t, json.Unmarshal([]byte(tt.input), &p))
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", `"2024-01-05T14:30:00Z"`, time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)},
		{"millis without zone", `"2024-01-05T14:30:00.000"`, time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)},
		{"date only", `"2024-01-05"`, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"epoch millis", `1704465000000`, time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)},
		{"day first", `"05/01/2024"`, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"empty", `""`, time.Time{}},
		{"unparseable", `"ayer"`, time.Time{}},
		{"object", `{"fecha": "2024-01-05"}`, time.Time{}},
		{"null", `null`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestFoodSectionUnknown(t *testing.T) {
	f := Food{Vitamins: Section{"vitaminaC": 12.0}}
	assert.Equal(t, 12.0, f.Section(SectionVitamins).Value("vitaminaC"))
	assert.Nil(t, f.Section("desconocido"))
	assert.Nil(t, f.Section(SectionMinerals).Value("hierro"))
	assert.Empty(t, f.Classification("otro"))
}

func TestSectionIgnoresNonObjects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `[]`},
		{"string", `"n/a"`},
		{"number", `0`},
		{"null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Section{"stale": 1.0}
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Nil(t, s)
		})
	}
}

func TestFoodEntryUnpopulatedReference(t *testing.T) {
	var item FoodEntry
	require.NoError(t, json.Unmarshal([]byte(`{"id": "64ab", "cantidad": 2}`), &item))

	assert.Equal(t, "64ab", item.Food.ID)
	assert.Empty(t, item.Food.GroupExportable)
	assert.Equal(t, 2.0, item.Quantity)
}

func TestFoodEntryKeepsWellTypedFields(t *testing.T) {
	data := `{"id": {"nombreAlimento": 7, "grupoExportable": "Frutas", "vitaminas": [],
		"caloriasMacronutrientes": {"energia": 52}}, "cantidad": 1}`

	var item FoodEntry
	require.NoError(t, json.Unmarshal([]byte(data), &item))

	assert.Empty(t, item.Food.Name)
	assert.Equal(t, "Frutas", item.Food.GroupExportable)
	assert.Nil(t, item.Food.Vitamins)
	assert.Equal(t, 52.0, item.Food.Macronutrients.Value("energia"))
}

func TestRegistryResponseWithMalformedDocuments(t *testing.T) {
	data := `[
		{"id": "R1", "usuario": "P1", "horario": "05/01/2024",
		 "alimentos": [
			{"id": {"grupoExportable": "Leches", "vitaminas": [], "minerales": "sin datos"}, "cantidad": 1},
			{"id": "64ab", "cantidad": 3},
			"basura"
		 ]},
		{"id": "R2", "usuario": ["x"], "horario": "mañana", "alimentos": {"id": "f1"}},
		"no es un registro",
		{"id": 17, "alimentos": null}
	]`

	var entries []RegistryEntry
	require.NoError(t, json.Unmarshal([]byte(data), &entries))
	require.Len(t, entries, 4)

	r1 := entries[0]
	assert.Equal(t, "R1", r1.ID)
	assert.Equal(t, 2024, r1.Timestamp.Year())
	require.Len(t, r1.Foods, 3)
	assert.Equal(t, "Leches", r1.Foods[0].Food.GroupExportable)
	assert.Nil(t, r1.Foods[0].Food.Vitamins)
	assert.Nil(t, r1.Foods[0].Food.Minerals)
	assert.Equal(t, "64ab", r1.Foods[1].Food.ID)
	assert.Equal(t, FoodEntry{}, r1.Foods[2])

	r2 := entries[1]
	assert.Equal(t, "R2", r2.ID)
	assert.Empty(t, r2.Participant)
	assert.True(t, r2.Timestamp.IsZero())
	assert.Empty(t, r2.Foods)

	assert.Equal(t, RegistryEntry{}, entries[2])
	assert.Equal(t, "17", entries[3].ID)
}
