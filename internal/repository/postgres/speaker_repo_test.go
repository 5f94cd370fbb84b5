package postgres

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"communityhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var speakerRowColumns = []string{"id", "name", "role", "company", "bio", "avatar_url", "email", "phone", "twitter", "linkedin"}

func TestSpeakerRepository_GetSpeakers(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM speakers ORDER BY name`).
		WillReturnRows(sqlmock.NewRows(speakerRowColumns).
			AddRow("sp-1", "Ana", "Speaker", nil, nil, "https://a.png", "ana@example.com", nil, nil, nil).
			AddRow("sp-2", "Bruno", nil, "Acme", "Gopher", nil, nil, nil, "@bruno", nil))

	got, err := NewSpeakerRepository(db).GetSpeakers(ctx)
	require.NoError(t, err)
	require.Equal(t, []*domain.Speaker{
		{ID: "sp-1", Name: "Ana", Role: "Speaker", AvatarURL: "https://a.png", Email: "ana@example.com"},
		{ID: "sp-2", Name: "Bruno", Company: "Acme", Bio: "Gopher", Twitter: "@bruno"},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerRepository_GetSpeakerAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM speakers WHERE id::text = \$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	got, err := NewSpeakerRepository(db).GetSpeaker(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerRepository_CreateSpeakerEmbedsAvatar(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	avatar := &domain.AvatarFile{ContentType: "image/png", Data: []byte{1, 2, 3}}
	want := "data:image/png;base64,AQID"
	mock.ExpectQuery(`INSERT INTO speakers \(name, role, company, bio, avatar_url, email, phone, twitter, linkedin\)`).
		WithArgs("Ana", "Speaker", nil, nil, want, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(speakerRowColumns).
			AddRow("sp-1", "Ana", "Speaker", nil, nil, want, nil, nil, nil, nil))

	got, err := NewSpeakerRepository(db).CreateSpeaker(context.Background(), domain.CreateSpeakerDTO{
		Name: "Ana", Role: "Speaker", AvatarURL: "https://ignored", Avatar: avatar,
	})
	require.NoError(t, err)
	require.Equal(t, "sp-1", got.ID)
	require.True(t, strings.HasPrefix(got.AvatarURL, "data:image/png;base64,"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerRepository_UpdateSpeaker(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		patch   domain.SpeakerPatch
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Speaker
		wantErr error
	}{
		{
			name:  "partial update",
			patch: domain.SpeakerPatch{Company: ptr("DevPeru"), Twitter: ptr("@ana")},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE speakers SET company = \$1, twitter = \$2 WHERE id::text = \$3 RETURNING`).
					WithArgs("DevPeru", "@ana", "sp-1").
					WillReturnRows(sqlmock.NewRows(speakerRowColumns).
						AddRow("sp-1", "Ana", nil, "DevPeru", nil, nil, nil, nil, "@ana", nil))
			},
			want: &domain.Speaker{ID: "sp-1", Name: "Ana", Company: "DevPeru", Twitter: "@ana"},
		},
		{
			name:  "avatar file replaces url",
			patch: domain.SpeakerPatch{Avatar: &domain.AvatarFile{ContentType: "image/gif", Data: []byte("GIF89a")}},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE speakers SET avatar_url = \$1 WHERE id::text = \$2`).
					WithArgs("data:image/gif;base64,R0lGODlh", "sp-1").
					WillReturnRows(sqlmock.NewRows(speakerRowColumns).
						AddRow("sp-1", "Ana", nil, nil, nil, "data:image/gif;base64,R0lGODlh", nil, nil, nil, nil))
			},
			want: &domain.Speaker{ID: "sp-1", Name: "Ana", AvatarURL: "data:image/gif;base64,R0lGODlh"},
		},
		{
			name:  "missing id",
			patch: domain.SpeakerPatch{Name: ptr("x")},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE speakers SET name = \$1 WHERE id::text = \$2`).
					WithArgs("x", "sp-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:  "empty patch on missing id",
			patch: domain.SpeakerPatch{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM speakers WHERE id::text = \$1`).
					WithArgs("sp-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewSpeakerRepository(db).UpdateSpeaker(ctx, "sp-1", tt.patch)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
