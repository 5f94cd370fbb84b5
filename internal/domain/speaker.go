package domain

import (
	"context"
	"encoding/base64"
	"net/http"
)

// Speaker is a person who has given or will give talks. Events reference speakers by id
// (AgendaItem.SpeakerID); deleting or renaming a speaker never cascades.
// swagger:model Speaker
type Speaker struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Role      string `json:"role,omitempty" yaml:"role,omitempty"`
	Company   string `json:"company,omitempty" yaml:"company,omitempty"`
	Bio       string `json:"bio,omitempty" yaml:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty" yaml:"avatarUrl,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Twitter   string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
}

// AvatarFile is a raw uploaded image that adapters embed into AvatarURL.
type AvatarFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DataURL encodes the file as a self-describing data URL (data:<mime>;base64,<payload>).
// The content type is sniffed from the bytes when not provided.
func (f *AvatarFile) DataURL() string {
	ct := f.ContentType
	if ct == "" {
		ct = http.DetectContentType(f.Data)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// CreateSpeakerDTO is the field set to create a speaker. Only Name is required.
// When Avatar is set it takes precedence over AvatarURL.
type CreateSpeakerDTO struct {
	Name      string      `json:"name"`
	Role      string      `json:"role,omitempty"`
	Company   string      `json:"company,omitempty"`
	Bio       string      `json:"bio,omitempty"`
	AvatarURL string      `json:"avatarUrl,omitempty"`
	Email     string      `json:"email,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Twitter   string      `json:"twitter,omitempty"`
	LinkedIn  string      `json:"linkedin,omitempty"`
	Avatar    *AvatarFile `json:"-"`
}

// NewSpeaker returns a Speaker built from dto with any raw avatar already embedded.
// ID is set by the adapter.
func NewSpeaker(dto CreateSpeakerDTO) *Speaker {
	s := &Speaker{
		Name:      dto.Name,
		Role:      dto.Role,
		Company:   dto.Company,
		Bio:       dto.Bio,
		AvatarURL: dto.AvatarURL,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Twitter:   dto.Twitter,
		LinkedIn:  dto.LinkedIn,
	}
	if dto.Avatar != nil {
		s.AvatarURL = dto.Avatar.DataURL()
	}
	return s
}

// SpeakerPatch is a partial update. Nil fields are left untouched.
type SpeakerPatch struct {
	Name      *string     `json:"name,omitempty"`
	Role      *string     `json:"role,omitempty"`
	Company   *string     `json:"company,omitempty"`
	Bio       *string     `json:"bio,omitempty"`
	AvatarURL *string     `json:"avatarUrl,omitempty"`
	Email     *string     `json:"email,omitempty"`
	Phone     *string     `json:"phone,omitempty"`
	Twitter   *string     `json:"twitter,omitempty"`
	LinkedIn  *string     `json:"linkedin,omitempty"`
	Avatar    *AvatarFile `json:"-"`
}

// ResolveAvatar converts a raw Avatar into AvatarURL and drops the file.
func (p SpeakerPatch) ResolveAvatar() SpeakerPatch {
	if p.Avatar == nil {
		return p
	}
	u := p.Avatar.DataURL()
	p.AvatarURL = &u
	p.Avatar = nil
	return p
}

// IsEmpty reports whether the patch changes nothing.
func (p SpeakerPatch) IsEmpty() bool {
	return p.Name == nil && p.Role == nil && p.Company == nil && p.Bio == nil && p.AvatarURL == nil &&
		p.Email == nil && p.Phone == nil && p.Twitter == nil && p.LinkedIn == nil && p.Avatar == nil
}

// ApplyTo merges the patch into s field by field. Call ResolveAvatar first.
func (p SpeakerPatch) ApplyTo(s *Speaker) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Role != nil {
		s.Role = *p.Role
	}
	if p.Company != nil {
		s.Company = *p.Company
	}
	if p.Bio != nil {
		s.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		s.AvatarURL = *p.AvatarURL
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Twitter != nil {
		s.Twitter = *p.Twitter
	}
	if p.LinkedIn != nil {
		s.LinkedIn = *p.LinkedIn
	}
}

// SpeakerRepository defines the interface for speaker storage.
// GetSpeaker returns (nil, nil) when the id is absent.
type SpeakerRepository interface {
	GetSpeakers(ctx context.Context) ([]*Speaker, error)
	GetSpeaker(ctx context.Context, id string) (*Speaker, error)
	CreateSpeaker(ctx context.Context, dto CreateSpeakerDTO) (*Speaker, error)
	UpdateSpeaker(ctx context.Context, id string, patch SpeakerPatch) (*Speaker, error)
}

// SpeakerService defines the rules applied on top of SpeakerRepository.
type SpeakerService interface {
	ListSpeakers(ctx context.Context) ([]*Speaker, error)
	GetSpeaker(ctx context.Context, id string) (*Speaker, error)
	CreateSpeaker(ctx context.Context, dto CreateSpeakerDTO) (*Speaker, error)
	UpdateSpeaker(ctx context.Context, id string, patch SpeakerPatch) (*Speaker, error)
}
