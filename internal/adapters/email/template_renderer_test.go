package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communityhub/internal/domain"
)

func TestTemplateRenderer_NewProposal(t *testing.T) {
	data := &domain.NewProposalEmailData{
		FullName:    "Lucia <script>",
		Email:       "lucia@example.com",
		Title:       "Go generics",
		Description: "Deep dive",
		Duration:    "30",
		SubmittedAt: "2024-05-01T12:00:00Z",
	}

	subject, html, text, err := NewTemplateRenderer().Render("new_proposal", data)
	require.NoError(t, err)
	assert.Equal(t, "New talk proposal: Go generics", subject)
	assert.Contains(t, html, "Lucia &lt;script&gt;")
	assert.NotContains(t, html, "Review proposal")
	assert.Contains(t, text, "Duration: 30 minutes")
	assert.Contains(t, text, "Speaker: Lucia <script> <lucia@example.com>")
	assert.NotContains(t, text, "Phone:")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("missing", nil)
	require.Error(t, err)
}
