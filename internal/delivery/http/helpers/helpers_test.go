package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"communityhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, PageSize: 20}},
		{"page=3&page_size=5", PaginationParams{Page: 3, PageSize: 5}},
		{"page=0&page_size=-1", PaginationParams{Page: 1, PageSize: 20}},
		{"page=x&page_size=1000", PaginationParams{Page: 1, PageSize: MaxPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/proposals?"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(req))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, meta := Paginate(items, PaginationParams{Page: 2, PageSize: 2})
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 2, Total: 5, TotalPages: 3}, meta)

	page, _ = Paginate(items, PaginationParams{Page: 3, PageSize: 2})
	assert.Equal(t, []int{5}, page)

	page, meta = Paginate(items, PaginationParams{Page: 9, PageSize: 2})
	assert.Empty(t, page)
	assert.NotNil(t, page)
	assert.Equal(t, 5, meta.Total)
}

type createThing struct {
	Name string `json:"name"`
}

func (c createThing) Validate() []string {
	if c.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantOK      bool
		wantMessage string
	}{
		{name: "valid", body: `{"name":"x"}`, wantOK: true},
		{name: "validation fails", body: `{"name":""}`, wantMessage: "name is required"},
		{name: "unknown field", body: `{"name":"x","extra":1}`, wantMessage: `unknown field "extra"`},
		{name: "truncated", body: `{`, wantMessage: "request body is truncated"},
		{name: "empty body", body: ``, wantMessage: "request body is required"},
		{name: "wrong type", body: `{"name":42}`, wantMessage: `field "name" must be string, got number`},
		{name: "not an object", body: `[1]`, wantMessage: "request body must be a JSON object, got array"},
		{name: "syntax error", body: `{"name" "x"}`, wantMessage: "malformed JSON at offset"},
		{name: "two objects", body: `{"name":"x"} {"name":"y"}`, wantMessage: "single JSON object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dest createThing
			ok := DecodeAndValidate(rr, req, &dest)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				return
			}
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var env APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
			require.NotNil(t, env.Error)
			assert.Equal(t, ErrCodeBadRequest, env.Error.Code)
			assert.Contains(t, env.Error.Message, tt.wantMessage)
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("event x: %w", domain.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{fmt.Errorf("bad: %w", domain.ErrInvalidInput), http.StatusBadRequest, ErrCodeBadRequest},
		{domain.ErrUnauthorized, http.StatusUnauthorized, ErrCodeUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
		{errors.New("connection refused"), http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/events/x", nil)
			rr := httptest.NewRecorder()
			WriteServiceError(rr, req, logger, tt.err)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			assert.Nil(t, envelope.Data)
		})
	}
}
