package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"communityhub/internal/domain"
)

const speakerColumns = `id, name, role, company, bio, avatar_url, email, phone, twitter, linkedin`

type speakerRepository struct {
	DB *sql.DB
}

// NewSpeakerRepository returns a domain.SpeakerRepository implemented with Postgres.
// Raw avatar uploads are stored inline in avatar_url as data URLs.
func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

func scanSpeaker(row rowScanner) (*domain.Speaker, error) {
	s := &domain.Speaker{}
	var role, company, bio, avatar, email, phone, twitter, linkedin sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &role, &company, &bio, &avatar, &email, &phone, &twitter, &linkedin); err != nil {
		return nil, err
	}
	s.Role = role.String
	s.Company = company.String
	s.Bio = bio.String
	s.AvatarURL = avatar.String
	s.Email = email.String
	s.Phone = phone.String
	s.Twitter = twitter.String
	s.LinkedIn = linkedin.String
	return s, nil
}

func (r *speakerRepository) GetSpeakers(ctx context.Context) ([]*domain.Speaker, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+speakerColumns+` FROM speakers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		s, err := scanSpeaker(rows)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

func (r *speakerRepository) GetSpeaker(ctx context.Context, id string) (*domain.Speaker, error) {
	s, err := scanSpeaker(r.DB.QueryRowContext(ctx, `SELECT `+speakerColumns+` FROM speakers WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *speakerRepository) CreateSpeaker(ctx context.Context, dto domain.CreateSpeakerDTO) (*domain.Speaker, error) {
	s := domain.NewSpeaker(dto)
	query := `
		INSERT INTO speakers (name, role, company, bio, avatar_url, email, phone, twitter, linkedin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + speakerColumns
	return scanSpeaker(r.DB.QueryRowContext(ctx, query,
		s.Name, nullString(s.Role), nullString(s.Company), nullString(s.Bio), nullString(s.AvatarURL),
		nullString(s.Email), nullString(s.Phone), nullString(s.Twitter), nullString(s.LinkedIn),
	))
}

func (r *speakerRepository) UpdateSpeaker(ctx context.Context, id string, patch domain.SpeakerPatch) (*domain.Speaker, error) {
	patch = patch.ResolveAvatar()
	setClauses := []string{}
	args := []any{}
	n := 1
	set := func(column string, value *string) {
		if value == nil {
			return
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, *value)
		n++
	}
	set("name", patch.Name)
	set("role", patch.Role)
	set("company", patch.Company)
	set("bio", patch.Bio)
	set("avatar_url", patch.AvatarURL)
	set("email", patch.Email)
	set("phone", patch.Phone)
	set("twitter", patch.Twitter)
	set("linkedin", patch.LinkedIn)

	if n == 1 {
		s, err := r.GetSpeaker(ctx, id)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("speaker %s: %w", id, domain.ErrNotFound)
		}
		return s, nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE speakers SET %s WHERE id::text = $%d RETURNING %s`, strings.Join(setClauses, ", "), n, speakerColumns)
	s, err := scanSpeaker(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("speaker %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}
