// internal/models/registry.go
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// RegistryEntry is one dietary-log submission as returned by
// GET registroDietetico/exports.
type RegistryEntry struct {
	ID          string         `json:"id"`
	Participant ParticipantRef `json:"usuario"`
	Timestamp   Timestamp      `json:"horario"`
	Foods       []FoodEntry    `json:"alimentos"`
}

// UnmarshalJSON never fails on malformed field data: an entry that is not
// an object, an unreadable participant or timestamp, or an unusable food
// item decodes to its zero value and contributes nothing to an export.
func (r *RegistryEntry) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID          json.RawMessage `json:"id"`
		MongoID     json.RawMessage `json:"_id"`
		Participant ParticipantRef  `json:"usuario"`
		Timestamp   Timestamp       `json:"horario"`
		Foods       json.RawMessage `json:"alimentos"`
	}
	*r = RegistryEntry{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil
	}

	r.ID = idString(aux.ID)
	if r.ID == "" {
		r.ID = idString(aux.MongoID)
	}
	r.Participant = aux.Participant
	r.Timestamp = aux.Timestamp

	var items []json.RawMessage
	if err := json.Unmarshal(aux.Foods, &items); err != nil {
		return nil
	}
	for _, item := range items {
		var food FoodEntry
		if err := json.Unmarshal(item, &food); err == nil {
			r.Foods = append(r.Foods, food)
		}
	}
	return nil
}

// idString reads a string or numeric id; anything else is "".
func idString(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return ""
}

// FoodEntry pairs a populated food document with the consumed quantity.
// Quantity is kept raw; the export pipeline coerces it.
type FoodEntry struct {
	Food     Food `json:"id"`
	Quantity any  `json:"cantidad"`
}

// UnmarshalJSON accepts an unpopulated food reference (a bare id) and
// documents that do not decode as a food. Both yield a Food with no
// classification, which no export bucket matches.
func (e *FoodEntry) UnmarshalJSON(data []byte) error {
	var aux struct {
		Food     json.RawMessage `json:"id"`
		Quantity any             `json:"cantidad"`
	}
	*e = FoodEntry{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil
	}
	e.Quantity = aux.Quantity

	raw := bytes.TrimSpace(aux.Food)
	if len(raw) > 0 && raw[0] == '{' {
		// Mistyped fields are skipped; the rest of the document still counts.
		_ = json.Unmarshal(raw, &e.Food)
		return nil
	}
	e.Food.ID = idString(raw)
	return nil
}

// ParticipantRef accepts either a bare id or a populated user document.
// Values it cannot read decode to "".
type ParticipantRef string

func (p *ParticipantRef) UnmarshalJSON(data []byte) error {
	var raw any
	*p = ""
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case string:
		*p = ParticipantRef(v)
	case float64:
		*p = ParticipantRef(strconv.FormatFloat(v, 'f', -1, 64))
	case map[string]any:
		for _, key := range []string{"_id", "id"} {
			if id, ok := v[key].(string); ok {
				*p = ParticipantRef(id)
				return nil
			}
		}
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// Timestamp parses the loosely formatted dates the backend emits.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts strings in any of timestampLayouts and epoch
// milliseconds. Anything else decodes to the zero time.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		t.Time = time.UnixMilli(int64(v)).UTC()
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time = parsed
				break
			}
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}
