package services

import (
	"context"
	"strings"
	"testing"

	"communityhub/internal/domain"
	"communityhub/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeakerService_CreateSpeaker(t *testing.T) {
	tests := []struct {
		name    string
		dto     domain.CreateSpeakerDTO
		wantErr error
	}{
		{name: "minimal", dto: domain.CreateSpeakerDTO{Name: "  Ana Torres "}},
		{name: "with email", dto: domain.CreateSpeakerDTO{Name: "Ana", Email: "ana@devperu.org"}},
		{name: "blank name", dto: domain.CreateSpeakerDTO{Name: "  "}, wantErr: domain.ErrInvalidInput},
		{name: "bad email", dto: domain.CreateSpeakerDTO{Name: "Ana", Email: "not-an-email"}, wantErr: domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewFakeSpeakerRepository()
			repo.GivenSpeakers()
			svc := NewSpeakerService(repo, 0)

			got, err := svc.CreateSpeaker(context.Background(), tt.dto)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, strings.TrimSpace(tt.dto.Name), got.Name)
		})
	}
}

func TestSpeakerService_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewFakeSpeakerRepository()
	repo.GivenSpeakers(&domain.Speaker{ID: "sp-1", Name: "Ana"})
	svc := NewSpeakerService(repo, 0)

	_, err := svc.GetSpeaker(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := svc.UpdateSpeaker(ctx, "sp-1", domain.SpeakerPatch{
		Name:   ptr(" Ana Torres "),
		Avatar: &domain.AvatarFile{ContentType: "image/png", Data: []byte("png")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Torres", updated.Name)
	assert.Equal(t, "data:image/png;base64,cG5n", updated.AvatarURL)

	_, err = svc.UpdateSpeaker(ctx, "sp-1", domain.SpeakerPatch{Name: ptr("")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateSpeaker(ctx, "missing", domain.SpeakerPatch{Role: ptr("Host")})
	require.ErrorIs(t, err, domain.ErrNotFound)

	all, err := svc.ListSpeakers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
