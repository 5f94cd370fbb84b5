package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAllowList(t *testing.T) {
	assert.Nil(t, ParseAllowList(""))
	assert.Nil(t, ParseAllowList(" , ,"))
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, ParseAllowList("a@x.com, b@x.com,"))
}

func TestIsEmailAllowed(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		email   string
		want    bool
	}{
		{name: "listed", allowed: []string{"a@x.com", "b@x.com"}, email: "a@x.com", want: true},
		{name: "not listed", allowed: []string{"a@x.com", "b@x.com"}, email: "c@x.com", want: false},
		{name: "empty list denies", allowed: nil, email: "a@x.com", want: false},
		{name: "empty email", allowed: []string{"a@x.com"}, email: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmailAllowed(tt.allowed, tt.email))
		})
	}
}
