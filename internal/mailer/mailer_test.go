package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	got := Render("Dear {name}, the {position} role at {company} awaits.", "Ada", "Engineer", "Acme")
	assert.Equal(t, "Dear Ada, the Engineer role at Acme awaits.", got)
}

func TestRenderRepeatedPlaceholders(t *testing.T) {
	got := Render("{company} thanks you. - {company} HR Team", "", "", "Acme")
	assert.Equal(t, "Acme thanks you. - Acme HR Team", got)
}

func TestTemplates(t *testing.T) {
	ts := Templates()

	require.Len(t, ts, 4)
	keys := make([]string, 0, len(ts))
	for _, tmpl := range ts {
		keys = append(keys, tmpl.Key)
		assert.NotEmpty(t, tmpl.Subject, tmpl.Key)
		assert.NotEmpty(t, tmpl.HTML, tmpl.Key)
	}
	assert.Equal(t, []string{
		TemplateInterviewInvitation,
		TemplateRejectionPolite,
		TemplateRequestMoreInfo,
		TemplateCustom,
	}, keys)
}

func TestTemplateByKey(t *testing.T) {
	tmpl, ok := TemplateByKey(TemplateRejectionPolite)
	require.True(t, ok)
	assert.Equal(t, "Update on Your Application - {position}", tmpl.Subject)
	assert.Contains(t, tmpl.HTML, "we regret to inform you")

	_, ok = TemplateByKey("no_such_template")
	assert.False(t, ok)
}

func TestSelectRecipients(t *testing.T) {
	candidates := []Recipient{
		{Name: "First", Email: "first@example.com", Score: 92, Approved: true},
		{Name: "Second", Email: "second@example.com", Score: 85, Approved: false},
		{Name: "Third", Email: "", Score: 80, Approved: true},
		{Name: "Fourth", Email: "fourth@example.com", Score: 64, Approved: true},
		{Name: "Fifth", Email: "fifth@example.com", Score: 40, Approved: true},
	}

	t.Run("score filter", func(t *testing.T) {
		got := SelectRecipients(candidates, 70, 10, false)
		require.Len(t, got, 3)
		assert.Equal(t, "First", got[0].Name)
		assert.Equal(t, "Third", got[2].Name)
	})

	t.Run("approved only", func(t *testing.T) {
		got := SelectRecipients(candidates, 70, 10, true)
		require.Len(t, got, 2)
		assert.Equal(t, "First", got[0].Name)
		assert.Equal(t, "Third", got[1].Name)
	})

	t.Run("cap keeps best ranked", func(t *testing.T) {
		got := SelectRecipients(candidates, 0, 2, false)
		require.Len(t, got, 2)
		assert.Equal(t, "First", got[0].Name)
		assert.Equal(t, "Second", got[1].Name)
	})

	t.Run("missing email stays selected", func(t *testing.T) {
		got := SelectRecipients(candidates, 75, 10, true)
		require.Len(t, got, 2)
		assert.Empty(t, got[1].Email)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SelectRecipients(nil, 0, 5, false))
	})
}

func TestNewDefaultsUsernameToSender(t *testing.T) {
	m := New(Config{SenderEmail: "hr@example.com", Company: "Acme"}, nil)
	assert.Equal(t, "hr@example.com", m.cfg.Username)
	assert.Equal(t, "Acme", m.Company())
}
