package models

import "time"

// ScheduleType classifies a schedule entry.
type ScheduleType string

const (
	ScheduleTypeClass        ScheduleType = "class"
	ScheduleTypeOrganization ScheduleType = "organization"
	ScheduleTypeAssignment   ScheduleType = "assignment"
	ScheduleTypePersonal     ScheduleType = "personal"
)

// Valid reports whether t is one of the defined schedule types.
func (t ScheduleType) Valid() bool {
	switch t {
	case ScheduleTypeClass, ScheduleTypeOrganization, ScheduleTypeAssignment, ScheduleTypePersonal:
		return true
	}
	return false
}

// Date and time layouts used throughout the store. Time-of-day is a
// fixed-width "HH:MM" string, so lexical comparison orders it correctly.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Schedule is a single calendar entry owned by a user.
type Schedule struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Date        string       `json:"date"` // "2006-01-02"
	Time        string       `json:"time"` // "15:04"
	Type        ScheduleType `json:"type"`
	Description string       `json:"description"`
	Completed   bool         `json:"completed"`

	// Notified transitions false -> true exactly once, set by the
	// notification scheduler. It is never reset, even if Date/Time are
	// edited afterwards.
	Notified bool `json:"notified"`

	CreatedAt time.Time `json:"createdAt"`
}

// StartsAt combines Date and Time into a wall-clock instant in loc.
func (s *Schedule) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, s.Date+" "+s.Time, loc)
}

// SchedulePatch carries a partial schedule update. Nil fields keep the
// stored value; set fields overwrite it.
type SchedulePatch struct {
	Title       *string
	Date        *string
	Time        *string
	Type        *ScheduleType
	Description *string
	Completed   *bool
	Notified    *bool
}

// Apply merges the patch into s.
func (p SchedulePatch) Apply(s *Schedule) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.Time != nil {
		s.Time = *p.Time
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Completed != nil {
		s.Completed = *p.Completed
	}
	if p.Notified != nil {
		s.Notified = *p.Notified
	}
}
