// internal/export/normalize.go
package export

import (
	"math"

	"mcp-diet-registry/internal/models"
)

// Record is the flat, quantity-scaled field set of one food event, or the
// fold of several. Numeric fields live in Numbers, text fields in Labels.
type Record struct {
	Numbers map[string]float64
	Labels  map[string]string
}

func newRecord() Record {
	return Record{
		Numbers: make(map[string]float64, len(Fields)),
		Labels:  make(map[string]string),
	}
}

// Value returns the field stored under key: a float64, a string, or nil when
// the key is not set.
func (r Record) Value(key string) any {
	if v, ok := r.Numbers[key]; ok {
		return v
	}
	if v, ok := r.Labels[key]; ok {
		return v
	}
	return nil
}

// Normalize scales every field of food by quantity. It never fails: a
// missing section or an unparseable value contributes 0.
func Normalize(food models.Food, quantity float64) Record {
	rec := newRecord()

	factor := lookup(food, models.SectionEnvironmental, factorKey)
	consumption := lookup(food, models.SectionQuantity, netWeightKey) * quantity

	for _, f := range Fields {
		if f.IsLabel() {
			rec.Labels[f.Key] = label(food.Section(f.Section).Value(f.Source))
			continue
		}

		raw := lookup(food, f.Section, f.Source)
		var v float64
		switch f.Kind {
		case KindScaled:
			v = raw * quantity
		case KindFootprint:
			v = raw * quantity * factor
		case KindWater:
			v = (consumption * raw) / KG
		case KindConsumption:
			v = consumption
		case KindPrice, KindFactor:
			v = raw
		}
		rec.Numbers[f.Key] = finite(v)
	}
	return rec
}

func lookup(food models.Food, section, key string) float64 {
	s := food.Section(section)
	if s == nil {
		return math.NaN()
	}
	v, ok := s[key]
	if !ok {
		return math.NaN()
	}
	return toNumber(v)
}

func label(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatNumber(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	}
	return ""
}
