package email

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManagerRendersBuiltins(t *testing.T) {
	tm := NewTemplateManager()

	out, err := tm.Render(TemplateSwapRequested, TemplateData{
		"RecipientName": "Bob",
		"RequesterName": "Alice <script>",
		"SkillName":     "Guitar",
		"Message":       "Hi!",
		"SwapURL":       "http://localhost/swaps/1",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Hi Bob")
	assert.Contains(t, out, "Guitar")
	assert.Contains(t, out, "<blockquote>Hi!</blockquote>")
	assert.Contains(t, out, "Alice &lt;script&gt;")

	out, err = tm.Render(TemplateSwapStatusChanged, TemplateData{"Status": "accepted"})
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>accepted</strong>")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestAddTemplateRejectsBrokenSyntax(t *testing.T) {
	tm := NewTemplateManager()
	assert.Error(t, tm.AddTemplate("bad", "{{.Name"))
}

func TestSMTPConfigValidation(t *testing.T) {
	_, err := NewSMTPProvider(&SMTPConfig{Port: 587, FromEmail: "a@b.c"})
	assert.Error(t, err)

	_, err = NewSMTPProvider(&SMTPConfig{Host: "smtp", Port: 0, FromEmail: "a@b.c"})
	assert.Error(t, err)

	_, err = NewSMTPProvider(&SMTPConfig{Host: "smtp", Port: 587})
	assert.Error(t, err)

	p, err := NewSMTPProvider(&SMTPConfig{Host: "smtp", Port: 587, FromEmail: "a@b.c", FromName: "SkillSwap"})
	require.NoError(t, err)
	assert.Error(t, p.Send(&Email{Subject: "no recipients"}))
}

func TestBuildMessageHeaders(t *testing.T) {
	p, err := NewSMTPProvider(&SMTPConfig{Host: "smtp", Port: 587, FromEmail: "noreply@skillswap.dev", FromName: "SkillSwap"})
	require.NoError(t, err)

	m := p.buildMessage(&Email{
		To:       []string{"bob@example.com"},
		Subject:  "Hello",
		HTMLBody: "<p>hi</p>",
		Body:     "hi",
	})

	assert.Equal(t, []string{"bob@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Hello"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
	assert.Contains(t, buf.String(), "text/plain")
	assert.Contains(t, buf.String(), "noreply@skillswap.dev")
}

func TestLogProviderNeverFails(t *testing.T) {
	assert.NoError(t, NewLogProvider().Send(&Email{To: []string{"x@y.z"}, Subject: "s"}))
}
