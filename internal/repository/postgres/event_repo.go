package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"communityhub/internal/domain"

	"github.com/lib/pq"
)

const eventColumns = `id, title, date::text, time::text, location, description, format, status, image_url, attendee_count, is_date_unsure`

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{Links: []domain.EventLink{}, Agenda: []domain.AgendaItem{}}
	var date, clock, location, description, imageURL sql.NullString
	var attendees sql.NullInt64
	var unsure sql.NullBool
	var format, status string
	if err := row.Scan(&e.ID, &e.Title, &date, &clock, &location, &description, &format, &status, &imageURL, &attendees, &unsure); err != nil {
		return nil, err
	}
	e.Date = calendarDate(date.String)
	e.Time = clockTime(clock.String)
	e.Location = location.String
	e.Description = description.String
	e.Format = domain.EventFormat(format)
	e.Status = domain.EventStatus(status)
	e.ImageURL = imageURL.String
	if attendees.Valid {
		n := int(attendees.Int64)
		e.AttendeeCount = &n
	}
	e.IsDateUnsure = unsure.Bool
	return e, nil
}

func (r *eventRepository) GetEvents(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date DESC`)
}

func (r *eventRepository) GetPublishedEvents(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE status = $1 ORDER BY date ASC`, domain.EventStatusPublished)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadChildren(ctx, []*domain.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// loadChildren fills Links and Agenda for events with one query per child table.
func (r *eventRepository) loadChildren(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Event, len(events))
	ids := make([]string, 0, len(events))
	for _, e := range events {
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}

	linkRows, err := r.DB.QueryContext(ctx, `SELECT event_id, type_id, url FROM event_links WHERE event_id::text = ANY($1)`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var eventID string
		var l domain.EventLink
		if err := linkRows.Scan(&eventID, &l.Type, &l.URL); err != nil {
			return err
		}
		if e, ok := byID[eventID]; ok {
			e.Links = append(e.Links, l)
		}
	}
	if err := linkRows.Err(); err != nil {
		return err
	}

	agendaRows, err := r.DB.QueryContext(ctx, `
		SELECT id, event_id, title, speaker_id, speaker_name, slides_url
		FROM agenda_items
		WHERE event_id::text = ANY($1)
		ORDER BY event_id, order_index
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer agendaRows.Close()
	for agendaRows.Next() {
		var eventID string
		var item domain.AgendaItem
		var speakerID, speakerName, slidesURL sql.NullString
		if err := agendaRows.Scan(&item.ID, &eventID, &item.Title, &speakerID, &speakerName, &slidesURL); err != nil {
			return err
		}
		item.SpeakerID = speakerID.String
		item.SpeakerName = speakerName.String
		item.SlidesURL = slidesURL.String
		if e, ok := byID[eventID]; ok {
			e.Agenda = append(e.Agenda, item)
		}
	}
	return agendaRows.Err()
}

func (r *eventRepository) CreateEvent(ctx context.Context, dto domain.CreateEventDTO) (*domain.Event, error) {
	query := `
		INSERT INTO events (title, date, time, format, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id string
	err := r.DB.QueryRowContext(ctx, query, dto.Title, nullString(dto.Date), nullString(dto.Time), dto.Format, domain.EventStatusDraft).Scan(&id)
	if err != nil {
		return nil, err
	}
	e, err := r.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

// UpdateEvent applies the scalar columns, then replaces links and agenda when the patch
// carries them, then re-reads the whole aggregate.
func (r *eventRepository) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	if patch.HasScalarFields() {
		if err := r.updateScalars(ctx, id, patch); err != nil {
			return nil, err
		}
	} else {
		var exists bool
		if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id::text = $1)`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
		}
	}

	if patch.Links != nil {
		if err := r.replaceLinks(ctx, id, *patch.Links); err != nil {
			return nil, fmt.Errorf("replace links of event %s: %w", id, err)
		}
	}
	if patch.Agenda != nil {
		if err := r.replaceAgenda(ctx, id, *patch.Agenda); err != nil {
			return nil, fmt.Errorf("replace agenda of event %s: %w", id, err)
		}
	}

	e, err := r.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

func (r *eventRepository) updateScalars(ctx context.Context, id string, patch domain.EventPatch) error {
	setClauses := []string{}
	args := []interface{}{}
	n := 1
	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Date != nil {
		set("date", nullString(*patch.Date))
	}
	if patch.Time != nil {
		set("time", nullString(*patch.Time))
	}
	if patch.Location != nil {
		set("location", *patch.Location)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Format != nil {
		set("format", *patch.Format)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	if patch.ImageURL != nil {
		set("image_url", nullString(*patch.ImageURL))
	}
	if patch.AttendeeCount != nil {
		set("attendee_count", *patch.AttendeeCount)
	}
	if patch.IsDateUnsure != nil {
		set("is_date_unsure", *patch.IsDateUnsure)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE events SET %s WHERE id::text = $%d`, strings.Join(setClauses, ", "), n)

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *eventRepository) replaceLinks(ctx context.Context, eventID string, links []domain.EventLink) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM event_links WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	values := make([]string, 0, len(links))
	args := make([]any, 0, len(links)*3)
	for i, l := range links {
		values = append(values, fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3))
		args = append(args, eventID, l.Type, l.URL)
	}
	_, err := r.DB.ExecContext(ctx, `INSERT INTO event_links (event_id, type_id, url) VALUES `+strings.Join(values, ", "), args...)
	return err
}

// replaceAgenda stores the list position in order_index so reads restore the order.
func (r *eventRepository) replaceAgenda(ctx context.Context, eventID string, agenda []domain.AgendaItem) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM agenda_items WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	if len(agenda) == 0 {
		return nil
	}
	const cols = 6
	values := make([]string, 0, len(agenda))
	args := make([]any, 0, len(agenda)*cols)
	for i, item := range agenda {
		p := i * cols
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", p+1, p+2, p+3, p+4, p+5, p+6))
		args = append(args, eventID, item.Title, nullString(item.SpeakerID), nullString(item.SpeakerName), nullString(item.SlidesURL), i)
	}
	_, err := r.DB.ExecContext(ctx, `INSERT INTO agenda_items (event_id, title, speaker_id, speaker_name, slides_url, order_index) VALUES `+strings.Join(values, ", "), args...)
	return err
}

// DeleteEvent removes the event row; child rows cascade in the schema.
func (r *eventRepository) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id::text = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
