package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	subject, text, html, err := Render(Welcome, EmailData{Name: "Ann <b>", Email: "a@x.com", AppName: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Acme", subject)
	assert.Contains(t, text, "Hi Ann <b>,")
	assert.Contains(t, html, "Ann &lt;b&gt;", "html body must escape user input")
	assert.Contains(t, html, "a@x.com")
}

func TestRender_Unknown(t *testing.T) {
	_, _, _, err := Render("nope", EmailData{})
	require.Error(t, err)
}

func TestMapRoundTrip(t *testing.T) {
	in := EmailData{Name: "Ann", Email: "a@x.com", AppName: "Acme"}
	out, err := FromMap(ToMap(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
