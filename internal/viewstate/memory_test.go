package viewstate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/validators"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/view"
)

func TestMemoryStore_MissingIsZero(t *testing.T) {
	s := NewMemoryStore(time.Minute)

	m, err := s.Load(context.Background(), "sid", "clients")
	require.NoError(t, err)
	assert.Equal(t, view.Memory{}, m)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	in := view.Memory{
		State:  view.FormOpen,
		Search: "ana",
		Mode:   view.ModeEdit,
		EditID: 7,
		Draft:  validators.Draft{"nombre": "Ana"},
		Errors: map[string][]string{"email": {"Correo electrónico inválido"}},
		Notice: &view.Notice{Kind: view.NoticeError, Title: "t", Text: "x"},
	}
	require.NoError(t, s.Save(ctx, "sid", "clients", in))

	out, err := s.Load(ctx, "sid", "clients")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	other, err := s.Load(ctx, "sid", "reservations")
	require.NoError(t, err)
	assert.Equal(t, view.Memory{}, other)
}

func TestMemoryStore_SessionsAreIsolated(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a", "clients", view.Memory{Search: "x"}))

	m, err := s.Load(ctx, "b", "clients")
	require.NoError(t, err)
	assert.Empty(t, m.Search)
}

func TestMemoryStore_Forget(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sid", "clients", view.Memory{Search: "x"}))
	require.NoError(t, s.Save(ctx, "sid", "establishments", view.Memory{Search: "y"}))
	require.NoError(t, s.Forget(ctx, "sid"))

	for _, name := range Views {
		m, err := s.Load(ctx, "sid", name)
		require.NoError(t, err)
		assert.Equal(t, view.Memory{}, m)
	}
}

func TestMemoryStore_Expires(t *testing.T) {
	s := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sid", "clients", view.Memory{Search: "x"}))
	time.Sleep(40 * time.Millisecond)

	m, err := s.Load(ctx, "sid", "clients")
	require.NoError(t, err)
	assert.Empty(t, m.Search)
}
