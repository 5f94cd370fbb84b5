package domain

import (
	"context"
	"slices"
	"time"
)

// EventFormat is how attendees join an event.
type EventFormat string

const (
	EventFormatInPerson EventFormat = "in-person"
	EventFormatRemote   EventFormat = "remote"
	EventFormatHybrid   EventFormat = "hybrid"
)

// Valid reports whether f is one of the known formats.
func (f EventFormat) Valid() bool {
	switch f {
	case EventFormatInPerson, EventFormatRemote, EventFormatHybrid:
		return true
	}
	return false
}

// EventStatus is the publication state of an event. It only advances draft -> published -> done.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusDone      EventStatus = "done"
)

var eventStatusRank = map[EventStatus]int{
	EventStatusDraft:     0,
	EventStatusPublished: 1,
	EventStatusDone:      2,
}

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	_, ok := eventStatusRank[s]
	return ok
}

// CanAdvanceTo reports whether moving from s to next keeps the status monotonic.
// Staying on the same status is allowed.
func (s EventStatus) CanAdvanceTo(next EventStatus) bool {
	from, ok := eventStatusRank[s]
	if !ok {
		return next.Valid()
	}
	to, ok := eventStatusRank[next]
	return ok && to >= from
}

// Well-known link type tags. Storage does not restrict the tag space.
const (
	LinkTypeRegistration = "registration"
	LinkTypeStreaming    = "streaming"
	LinkTypeAssets       = "assets"
	LinkTypeSlides       = "slides"
	LinkTypeLocation     = "location"
	LinkTypeCommunity    = "community"
)

// EventLink is a typed URL attached to an event.
type EventLink struct {
	Type string `json:"type" yaml:"type"`
	URL  string `json:"url" yaml:"url"`
}

// AgendaItem is one talk in an event's agenda. SpeakerID references a Speaker by id;
// SpeakerName is the denormalized display name used when the reference is missing or dangling.
type AgendaItem struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	SpeakerID   string `json:"speakerId,omitempty" yaml:"speakerId,omitempty"`
	SpeakerName string `json:"speakerName,omitempty" yaml:"speakerName,omitempty"`
	SlidesURL   string `json:"slidesUrl,omitempty" yaml:"slidesUrl,omitempty"`
}

// Event represents a community meetup.
// Date is a calendar date (YYYY-MM-DD); Time is HH:MM and may be empty when IsDateUnsure is set.
// swagger:model Event
type Event struct {
	ID            string       `json:"id" yaml:"id"`
	Title         string       `json:"title" yaml:"title"`
	Date          string       `json:"date" yaml:"date"`
	Time          string       `json:"time" yaml:"time"`
	Location      string       `json:"location" yaml:"location"`
	Description   string       `json:"description" yaml:"description"`
	Format        EventFormat  `json:"format" yaml:"format"`
	Status        EventStatus  `json:"status" yaml:"status"`
	ImageURL      string       `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	AttendeeCount *int         `json:"attendeeCount,omitempty" yaml:"attendeeCount,omitempty"`
	IsDateUnsure  bool         `json:"isDateUnsure,omitempty" yaml:"isDateUnsure,omitempty"`
	Links         []EventLink  `json:"links" yaml:"links"`
	Agenda        []AgendaItem `json:"agenda" yaml:"agenda"`
}

// Clone returns a deep copy of e so callers never alias adapter-owned slices.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	cp := *e
	if e.AttendeeCount != nil {
		n := *e.AttendeeCount
		cp.AttendeeCount = &n
	}
	cp.Links = append([]EventLink{}, e.Links...)
	cp.Agenda = append([]AgendaItem{}, e.Agenda...)
	return &cp
}

// Link returns the URL of the first link with the given type, or "".
func (e *Event) Link(linkType string) string {
	for _, l := range e.Links {
		if l.Type == linkType {
			return l.URL
		}
	}
	return ""
}

// CreateEventDTO is the minimal field set to create an event.
// Adapters fill the rest: empty location/description, status draft, empty links and agenda.
type CreateEventDTO struct {
	Title  string      `json:"title"`
	Date   string      `json:"date"`
	Time   string      `json:"time"`
	Format EventFormat `json:"format"`
}

// NewEvent returns a draft Event built from dto. ID is set by the adapter.
func NewEvent(dto CreateEventDTO) *Event {
	return &Event{
		Title:  dto.Title,
		Date:   dto.Date,
		Time:   dto.Time,
		Format: dto.Format,
		Status: EventStatusDraft,
		Links:  []EventLink{},
		Agenda: []AgendaItem{},
	}
}

// EventPatch is a partial update. Nil fields are left untouched.
// Links and Agenda are full-replace: a non-nil pointer to an empty slice clears the collection.
type EventPatch struct {
	Title         *string       `json:"title,omitempty"`
	Date          *string       `json:"date,omitempty"`
	Time          *string       `json:"time,omitempty"`
	Location      *string       `json:"location,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Format        *EventFormat  `json:"format,omitempty"`
	Status        *EventStatus  `json:"status,omitempty"`
	ImageURL      *string       `json:"imageUrl,omitempty"`
	AttendeeCount *int          `json:"attendeeCount,omitempty"`
	IsDateUnsure  *bool         `json:"isDateUnsure,omitempty"`
	Links         *[]EventLink  `json:"links,omitempty"`
	Agenda        *[]AgendaItem `json:"agenda,omitempty"`
}

// HasScalarFields reports whether the patch touches any column of the event row itself.
func (p EventPatch) HasScalarFields() bool {
	return p.Title != nil || p.Date != nil || p.Time != nil || p.Location != nil ||
		p.Description != nil || p.Format != nil || p.Status != nil || p.ImageURL != nil ||
		p.AttendeeCount != nil || p.IsDateUnsure != nil
}

// ApplyTo merges the patch into e field by field.
func (p EventPatch) ApplyTo(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Format != nil {
		e.Format = *p.Format
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.ImageURL != nil {
		e.ImageURL = *p.ImageURL
	}
	if p.AttendeeCount != nil {
		n := *p.AttendeeCount
		e.AttendeeCount = &n
	}
	if p.IsDateUnsure != nil {
		e.IsDateUnsure = *p.IsDateUnsure
	}
	if p.Links != nil {
		e.Links = append([]EventLink{}, (*p.Links)...)
	}
	if p.Agenda != nil {
		e.Agenda = append([]AgendaItem{}, (*p.Agenda)...)
	}
}

// SortEventsByDate sorts events in place by calendar date. Ties keep their relative order.
// Dates that do not parse sort by their raw string.
func SortEventsByDate(events []*Event, ascending bool) {
	slices.SortStableFunc(events, func(a, b *Event) int {
		c := compareDates(a.Date, b.Date)
		if !ascending {
			c = -c
		}
		return c
	})
}

func compareDates(a, b string) int {
	ta, errA := parseEventDate(a)
	tb, errB := parseEventDate(b)
	if errA != nil || errB != nil {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	return ta.Compare(tb)
}

func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// AllEvents orders events for the admin list: newest first.
func AllEvents(events []*Event) []*Event {
	out := slices.Clone(events)
	SortEventsByDate(out, false)
	return out
}

// PublishedEvents keeps only published events and orders them soonest first.
func PublishedEvents(events []*Event) []*Event {
	out := make([]*Event, 0, len(events))
	for _, e := range events {
		if e.Status == EventStatusPublished {
			out = append(out, e)
		}
	}
	SortEventsByDate(out, true)
	return out
}

// EventRepository defines the interface for event storage.
// GetEvent returns (nil, nil) when the id is absent.
type EventRepository interface {
	GetEvents(ctx context.Context) ([]*Event, error)
	GetPublishedEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	CreateEvent(ctx context.Context, dto CreateEventDTO) (*Event, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// EventService defines the business rules applied on top of EventRepository.
type EventService interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	ListPublishedEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	CreateEvent(ctx context.Context, dto CreateEventDTO) (*Event, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
