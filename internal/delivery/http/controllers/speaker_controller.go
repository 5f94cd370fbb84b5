package controllers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"communityhub/internal/delivery/http/helpers"
	"communityhub/internal/domain"
)

// MaxSpeakerUploadBytes caps the body of speaker requests, avatar included.
const MaxSpeakerUploadBytes = 5 << 20

// speakerFormFields maps multipart form fields to speaker attributes.
var speakerFormFields = []string{"name", "role", "company", "bio", "avatarUrl", "email", "phone", "twitter", "linkedin"}

// SpeakerSuccessResponse is the success envelope for a single speaker.
type SpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SpeakerListSuccessResponse is the success envelope for the speaker list.
type SpeakerListSuccessResponse struct {
	Data  []*domain.Speaker `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{Logger: logger, Service: svc}
}

// ListSpeakers godoc
// @Summary List speakers
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SpeakerListSuccessResponse
// @Router /speakers [get]
func (c *SpeakerController) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Service.ListSpeakers(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// GetSpeaker godoc
// @Summary Get a speaker by ID
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param speakerID path string true "Speaker ID"
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /speakers/{speakerID} [get]
func (c *SpeakerController) GetSpeaker(w http.ResponseWriter, r *http.Request) {
	speaker, err := c.Service.GetSpeaker(r.Context(), r.PathValue("speakerID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// CreateSpeaker godoc
// @Summary Create a speaker
// @Description Accepts JSON, or multipart/form-data with an optional "avatar" image file that is stored inline as a data URL.
// @Tags speakers
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param speaker body domain.CreateSpeakerDTO true "Speaker data"
// @Success 201 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 413 {object} helpers.APIResponse "error.code: payload_too_large"
// @Router /speakers [post]
func (c *SpeakerController) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	if !limitBody(w, r) {
		return
	}
	var dto domain.CreateSpeakerDTO
	if isMultipart(r) {
		patch, ok := c.readSpeakerForm(w, r)
		if !ok {
			return
		}
		dto = createFromPatch(patch)
	} else if !helpers.DecodeAndValidate(w, r, &dto) {
		return
	}
	speaker, err := c.Service.CreateSpeaker(r.Context(), dto)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, speaker)
}

// UpdateSpeaker godoc
// @Summary Update a speaker
// @Description Partial update. Accepts JSON, or multipart/form-data where only the sent fields change and an "avatar" file replaces avatarUrl.
// @Tags speakers
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param speakerID path string true "Speaker ID"
// @Param patch body domain.SpeakerPatch true "Fields to change"
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 413 {object} helpers.APIResponse "error.code: payload_too_large"
// @Router /speakers/{speakerID} [patch]
func (c *SpeakerController) UpdateSpeaker(w http.ResponseWriter, r *http.Request) {
	if !limitBody(w, r) {
		return
	}
	var patch domain.SpeakerPatch
	if isMultipart(r) {
		var ok bool
		if patch, ok = c.readSpeakerForm(w, r); !ok {
			return
		}
	} else if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	speaker, err := c.Service.UpdateSpeaker(r.Context(), r.PathValue("speakerID"), patch)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// limitBody rejects bodies declared larger than MaxSpeakerUploadBytes and caps the rest.
func limitBody(w http.ResponseWriter, r *http.Request) bool {
	if r.ContentLength > MaxSpeakerUploadBytes {
		writeBodyError(w, &http.MaxBytesError{Limit: MaxSpeakerUploadBytes})
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxSpeakerUploadBytes)
	return true
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// readSpeakerForm reads a multipart speaker form. Fields absent from the form stay nil.
func (c *SpeakerController) readSpeakerForm(w http.ResponseWriter, r *http.Request) (domain.SpeakerPatch, bool) {
	var patch domain.SpeakerPatch
	if err := r.ParseMultipartForm(MaxSpeakerUploadBytes); err != nil {
		writeBodyError(w, err)
		return patch, false
	}
	values := make(map[string]*string, len(speakerFormFields))
	for _, field := range speakerFormFields {
		if vs, ok := r.MultipartForm.Value[field]; ok && len(vs) > 0 {
			v := vs[0]
			values[field] = &v
		}
	}
	patch.Name = values["name"]
	patch.Role = values["role"]
	patch.Company = values["company"]
	patch.Bio = values["bio"]
	patch.AvatarURL = values["avatarUrl"]
	patch.Email = values["email"]
	patch.Phone = values["phone"]
	patch.Twitter = values["twitter"]
	patch.LinkedIn = values["linkedin"]

	file, header, err := r.FormFile("avatar")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return patch, true
	case err != nil:
		writeBodyError(w, err)
		return patch, false
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeBodyError(w, err)
		return patch, false
	}
	if len(data) == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "avatar file is empty")
		return patch, false
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "application/octet-stream" {
		contentType = ""
	}
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, fmt.Sprintf("avatar must be an image, got %s", contentType))
		return patch, false
	}
	patch.Avatar = &domain.AvatarFile{Filename: header.Filename, ContentType: contentType, Data: data}
	return patch, true
}

func createFromPatch(p domain.SpeakerPatch) domain.CreateSpeakerDTO {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return domain.CreateSpeakerDTO{
		Name:      deref(p.Name),
		Role:      deref(p.Role),
		Company:   deref(p.Company),
		Bio:       deref(p.Bio),
		AvatarURL: deref(p.AvatarURL),
		Email:     deref(p.Email),
		Phone:     deref(p.Phone),
		Twitter:   deref(p.Twitter),
		LinkedIn:  deref(p.LinkedIn),
		Avatar:    p.Avatar,
	}
}

func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodeTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
}
