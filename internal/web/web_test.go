package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/view"
)

func TestTemplates_Parse(t *testing.T) {
	tmpl, err := Templates(time.UTC)
	require.NoError(t, err)

	for _, name := range []string{Root, "shell", "notice", "landing", "auth", "clients", "establishments", "reservations", "activity"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestRender_LandingWithNoticeAndRefresh(t *testing.T) {
	tmpl, err := Templates(time.UTC)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, Root, Layout{
		Page:    "landing",
		Notice:  &view.Notice{Kind: view.NoticeSuccess, Title: "Sesión cerrada", Text: "Has salido correctamente."},
		Refresh: &Refresh{URL: "/", Delay: 2 * time.Second},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `content="2;url=/"`)
	assert.Contains(t, out, "Sesión cerrada")
	assert.Contains(t, out, `href="/auth"`)
	assert.NotContains(t, out, "<nav>")
}

func TestRefresh_RoundsUp(t *testing.T) {
	assert.Equal(t, "1;url=/clients", Refresh{URL: "/clients", Delay: 500 * time.Millisecond}.Content())
	assert.Equal(t, "0;url=/", Refresh{URL: "/"}.Content())
}
