package records

import (
	"strings"
	"time"
)

// Calendar is the projection of a collection onto a date field. Records
// without a parseable date fall into the Unscheduled bucket instead of being
// dropped.
type Calendar struct {
	FieldKey    string          `json:"field_key"`
	Events      []CalendarEvent `json:"events"`
	Unscheduled []Record        `json:"unscheduled,omitempty"`
}

// CalendarEvent binds a record to its resolved start time.
type CalendarEvent struct {
	Record Record    `json:"record"`
	Start  time.Time `json:"start"`
	AllDay bool      `json:"all_day"`
}

// Field name fragments that usually hold dates in connected collections.
// Portuguese variants included because most upstream bases use them.
var dateKeyHints = []string{"date", "data", "when", "dia", "agendad", "_at", "_em"}

// DateField picks the field a calendar view should bind to: declared date
// fields win, then name heuristics. Returns false when nothing looks like a
// date.
func DateField(collection Collection) (Field, bool) {
	for _, field := range collection.Fields {
		if field.Type == FieldDate {
			return field, true
		}
	}
	for _, field := range collection.Fields {
		key := strings.ToLower(field.Key)
		for _, hint := range dateKeyHints {
			if strings.Contains(key, hint) {
				return field, true
			}
		}
	}
	return Field{}, false
}

// ProjectCalendar builds a calendar from the records. An empty fieldKey
// triggers the DateField heuristic; when no candidate exists every record is
// unscheduled.
func ProjectCalendar(collection Collection, recs []Record, fieldKey string) Calendar {
	if fieldKey == "" {
		if field, ok := DateField(collection); ok {
			fieldKey = field.Key
		}
	}
	calendar := Calendar{FieldKey: fieldKey}
	if fieldKey == "" {
		calendar.Unscheduled = append(calendar.Unscheduled, recs...)
		return calendar
	}
	for _, record := range recs {
		start, allDay, ok := parseDateValue(record.Value(fieldKey))
		if !ok {
			calendar.Unscheduled = append(calendar.Unscheduled, record)
			continue
		}
		calendar.Events = append(calendar.Events, CalendarEvent{
			Record: record,
			Start:  start,
			AllDay: allDay,
		})
	}
	return calendar
}

// Layouts accepted for string-typed date values, from most to least
// specific. Day-only layouts yield all-day events.
var dateLayouts = []struct {
	layout string
	allDay bool
}{
	{time.RFC3339, false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02 15:04", false},
	{"2006-01-02", true},
	{"02/01/2006 15:04", false},
	{"02/01/2006", true},
}

func parseDateValue(value any) (time.Time, bool, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, false, !v.IsZero()
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, false, false
		}
		for _, candidate := range dateLayouts {
			if parsed, err := time.Parse(candidate.layout, trimmed); err == nil {
				return parsed, candidate.allDay, true
			}
		}
		return time.Time{}, false, false
	case int64:
		return time.Unix(v, 0).UTC(), false, v > 0
	case float64:
		sec := int64(v)
		return time.Unix(sec, 0).UTC(), false, sec > 0
	}
	return time.Time{}, false, false
}
