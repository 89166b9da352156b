// internal/export/aggregate.go
package export

import (
	"math"
	"sort"
	"time"
)

// SumNumbers is the numeric reducer: every sum-kind field of next is added
// to acc with Sum. A nil acc has every field absent.
func SumNumbers(acc *Record, next Record) map[string]float64 {
	out := make(map[string]float64, len(Fields))
	for _, f := range Fields {
		if f.Reduce() != ReduceSum {
			continue
		}
		a := math.NaN()
		if acc != nil {
			if v, ok := acc.Numbers[f.Key]; ok {
				a = v
			}
		}
		b := math.NaN()
		if v, ok := next.Numbers[f.Key]; ok {
			b = v
		}
		out[f.Key] = Sum(a, b)
	}
	return out
}

// OverwriteLabels is the categorical reducer: overwrite-kind fields always
// take next's value, so a fold ends with the last folded record's values.
func OverwriteLabels(next Record) (map[string]float64, map[string]string) {
	numbers := make(map[string]float64)
	labels := make(map[string]string)
	for _, f := range Fields {
		if f.Reduce() != ReduceOverwrite {
			continue
		}
		if f.IsLabel() {
			labels[f.Key] = next.Labels[f.Key]
			continue
		}
		numbers[f.Key] = finite(next.Numbers[f.Key])
	}
	return numbers, labels
}

// Fold combines an accumulated record with the next one of the same key.
func Fold(acc *Record, next Record) Record {
	out := Record{Numbers: SumNumbers(acc, next)}
	overwritten, labels := OverwriteLabels(next)
	for k, v := range overwritten {
		out.Numbers[k] = v
	}
	out.Labels = labels
	return out
}

// Key identifies one aggregate.
type Key struct {
	RegistryID    string
	ParticipantID string
	Date          string
	Group         string
}

// GroupAggregate is the fold of every event sharing one Key.
type GroupAggregate struct {
	Key
	Record Record
	Events int
}

// Value resolves a column key against the identity fields first, then the
// folded record.
func (g GroupAggregate) Value(key string) any {
	switch key {
	case ColumnRegistry:
		return g.RegistryID
	case ColumnParticipant:
		return g.ParticipantID
	case ColumnDate:
		return g.Date
	case ColumnGroup:
		return g.Group
	}
	return g.Record.Value(key)
}

// DateFormatter renders an event timestamp into the date part of a Key.
type DateFormatter func(time.Time) string

// LayoutFormatter formats timestamps with layout in loc. A zero timestamp
// formats as the empty string.
func LayoutFormatter(layout string, loc *time.Location) DateFormatter {
	if loc == nil {
		loc = time.UTC
	}
	return func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.In(loc).Format(layout)
	}
}

// Aggregate folds the events of every bucket by Key, left to right in
// arrival order. The result is ordered by the first arrival of each
// registry, then by bucket order, then by first arrival of the key.
func Aggregate(buckets []Bucket, date DateFormatter) []GroupAggregate {
	type slot struct {
		agg   GroupAggregate
		first int
		group int
	}

	registryFirst := make(map[string]int)
	var slots []*slot
	for bi, b := range buckets {
		byKey := make(map[Key]*slot)
		for _, ev := range b.Events {
			if seq, ok := registryFirst[ev.RegistryID]; !ok || ev.Seq < seq {
				registryFirst[ev.RegistryID] = ev.Seq
			}

			key := Key{
				RegistryID:    ev.RegistryID,
				ParticipantID: ev.ParticipantID,
				Date:          date(ev.Timestamp),
				Group:         b.Group,
			}
			rec := Normalize(ev.Food, ev.Quantity)

			s, ok := byKey[key]
			if !ok {
				s = &slot{agg: GroupAggregate{Key: key, Record: Fold(nil, rec)}, first: ev.Seq, group: bi}
				byKey[key] = s
				slots = append(slots, s)
			} else {
				s.agg.Record = Fold(&s.agg.Record, rec)
			}
			s.agg.Events++
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		ri, rj := registryFirst[slots[i].agg.RegistryID], registryFirst[slots[j].agg.RegistryID]
		if ri != rj {
			return ri < rj
		}
		if slots[i].group != slots[j].group {
			return slots[i].group < slots[j].group
		}
		return slots[i].first < slots[j].first
	})

	out := make([]GroupAggregate, len(slots))
	for i, s := range slots {
		out[i] = s.agg
	}
	return out
}
