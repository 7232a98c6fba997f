package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/apiclient/apitest"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/httperr"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
)

func setup(t *testing.T) (*apitest.Server, *Client, Session) {
	t.Helper()

	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)

	sess := Session{Cookies: []*http.Cookie{{Name: SessionCookie, Value: srv.Token("admin")}}}
	return srv, c, sess
}

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	_, err := New("localhost:8000")
	assert.Error(t, err)
}

func TestClients_RoundTrip(t *testing.T) {
	_, c, sess := setup(t)
	ctx := context.Background()

	in := models.ClientInput{Nombre: "Ana", Apellido: "Lopez", Documento: "123", Telefono: "555", Email: "ana@x.com", Edad: 30}
	require.NoError(t, c.Clients().Create(ctx, sess, in))

	list, err := c.Clients().List(ctx, sess)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.NotZero(t, got.ID)
	assert.Equal(t, "Ana", got.Nombre)
	assert.Equal(t, 30, got.Edad)

	in.Edad = 31
	require.NoError(t, c.Clients().Update(ctx, sess, got.ID, in))

	list, err = c.Clients().List(ctx, sess)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 31, list[0].Edad)
	assert.Equal(t, got.ID, list[0].ID)

	require.NoError(t, c.Clients().Delete(ctx, sess, got.ID))

	list, err = c.Clients().List(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReservations_EmbedOwners(t *testing.T) {
	srv, c, sess := setup(t)
	ctx := context.Background()

	cl := srv.SeedClient(models.ClientInput{Nombre: "Ana", Apellido: "Lopez", Documento: "1", Email: "a@x.com"})
	est := srv.SeedEstablishment(models.EstablishmentInput{Nombre: "Salón Real", Estado: models.EstablishmentAvailable})

	require.NoError(t, c.Reservations().Create(ctx, sess, models.ReservationInput{
		Fecha: "2026-10-20", Valor: "100", Estado: "Pendiente", ClienteID: cl.ID, EstablecimientoID: est.ID,
	}))

	list, err := c.Reservations().List(ctx, sess)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Cliente.Nombre)
	assert.Equal(t, "Salón Real", list[0].Establecimiento.Nombre)
}

func TestFailureTaxonomy(t *testing.T) {
	srv, c, sess := setup(t)
	ctx := context.Background()

	t.Run("forbidden", func(t *testing.T) {
		srv.ForbidMutations(true)
		defer srv.ForbidMutations(false)

		err := c.Establishments().Create(ctx, sess, models.EstablishmentInput{Nombre: "x"})
		assert.ErrorIs(t, err, httperr.ErrForbidden)
		assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
	})

	t.Run("business error body", func(t *testing.T) {
		srv.FailNextMutation(http.StatusBadRequest, `{"Response":"El establecimiento no está disponible."}`)

		err := c.Reservations().Update(ctx, sess, 99, models.ReservationInput{})
		require.Equal(t, httperr.KindServer, httperr.KindOf(err))
		assert.Equal(t, "El establecimiento no está disponible.", httperr.Message(err, "fallback"))
	})

	t.Run("unknown body", func(t *testing.T) {
		srv.FailNextMutation(http.StatusInternalServerError, `<h1>Server Error</h1>`)

		err := c.Clients().Delete(ctx, sess, 1)
		assert.Equal(t, "Error desconocido.", httperr.Message(err, "Error desconocido."))
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := c.Clients().List(ctx, Session{})
		assert.ErrorIs(t, err, httperr.ErrUnauthorized)
	})

	t.Run("transport", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		url := dead.URL
		dead.Close()

		dc, err := New(url, WithTimeout(time.Second))
		require.NoError(t, err)

		_, err = dc.Clients().List(ctx, sess)
		assert.Equal(t, httperr.KindTransport, httperr.KindOf(err))
	})
}

func TestLogin(t *testing.T) {
	srv, c, _ := setup(t)
	ctx := context.Background()
	srv.AddUser(models.AppUser{Username: "jdoe", Password: "secret"})

	_, err := c.Login(ctx, models.Credentials{Username: "jdoe", Password: "wrong"})
	assert.ErrorIs(t, err, httperr.ErrUnauthorized)

	cookies, err := c.Login(ctx, models.Credentials{Username: "jdoe", Password: "secret"})
	require.NoError(t, err)

	sess := Session{Cookies: cookies}
	require.NotEmpty(t, sess.Token())

	_, err = c.Clients().List(ctx, sess)
	assert.NoError(t, err)

	out, err := c.Logout(ctx, sess)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, SessionCookie, out[0].Name)

	_, err = c.Clients().List(ctx, sess)
	assert.ErrorIs(t, err, httperr.ErrUnauthorized)
}

func TestRegister_FieldErrors(t *testing.T) {
	srv, c, _ := setup(t)
	srv.AddUser(models.AppUser{Username: "jdoe", Password: "secret"})

	err := c.Register(context.Background(), Session{}, models.AppUser{Username: "jdoe", Password: "x", Email: "j@d.com"})

	assert.Equal(t, httperr.KindServer, httperr.KindOf(err))
	assert.Equal(t, "Ya existe un usuario con este nombre.", httperr.Message(err, ""))
}

func TestList_CoalescesConcurrentCalls(t *testing.T) {
	release := make(chan struct{})
	var (
		mu   sync.Mutex
		hits int
	)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"nombre":"Ana"}]`))
	}))
	defer api.Close()

	c, err := New(api.URL)
	require.NoError(t, err)
	sess := Session{Cookies: []*http.Cookie{{Name: SessionCookie, Value: "t"}}}

	const n = 5
	var wg sync.WaitGroup
	results := make([][]models.Client, n)
	started := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started <- struct{}{}
			list, err := c.Clients().List(context.Background(), sess)
			assert.NoError(t, err)
			results[i] = list
		}(i)
	}
	for i := 0; i < n; i++ {
		<-started
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	assert.Equal(t, 1, hits)
	mu.Unlock()

	results[0][0].Nombre = "mutated"
	for i := 1; i < n; i++ {
		require.Len(t, results[i], 1)
		assert.Equal(t, "Ana", results[i][0].Nombre)
	}
}

func TestList_CancelledCallerDoesNotFailOthers(t *testing.T) {
	hit := make(chan struct{}, 1)
	release := make(chan struct{})
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit <- struct{}{}
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"nombre":"Ana"}]`))
	}))
	defer api.Close()

	c, err := New(api.URL)
	require.NoError(t, err)
	sess := Session{Cookies: []*http.Cookie{{Name: SessionCookie, Value: "t"}}}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Clients().List(ctxA, sess)
		errA <- err
	}()
	<-hit

	type result struct {
		list []models.Client
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		list, err := c.Clients().List(context.Background(), sess)
		resB <- result{list, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.Equal(t, httperr.KindTransport, httperr.KindOf(err))
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	b := <-resB
	require.NoError(t, b.err)
	require.Len(t, b.list, 1)
	assert.Equal(t, "Ana", b.list[0].Nombre)
}

func TestSessionCookiesForwarded(t *testing.T) {
	var seen string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie(SessionCookie); err == nil {
			seen = ck.Value
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer api.Close()

	c, err := New(api.URL + "/")
	require.NoError(t, err)

	err = c.Establishments().Delete(context.Background(), Session{Cookies: []*http.Cookie{{Name: SessionCookie, Value: "tok"}}}, 4)
	require.NoError(t, err)
	assert.Equal(t, "tok", seen)
}
