package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/httperr"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/middleware"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/validators"
)

func postContext(t *testing.T, form url.Values) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/clients/form", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c, w
}

func TestDraftFrom_SkipsCSRFField(t *testing.T) {
	c, _ := postContext(t, url.Values{
		"nombre":             {"Ana"},
		"edad":               {""},
		middleware.CSRFField: {"token"},
	})

	draft, err := draftFrom(c)
	require.NoError(t, err)

	assert.Equal(t, validators.Draft{"nombre": "Ana", "edad": ""}, draft)
}

func TestApiFieldErrors(t *testing.T) {
	t.Run("field body", func(t *testing.T) {
		err := &httperr.APIError{
			Status: http.StatusBadRequest,
			Body:   httperr.DecodeErrorBody([]byte(`{"username":["Ya existe un usuario con este nombre."],"email":"Correo inválido"}`)),
		}

		got := apiFieldErrors(err)
		assert.Equal(t, []string{"Ya existe un usuario con este nombre."}, got["username"])
		assert.Equal(t, []string{"Correo inválido"}, got["email"])
	})

	t.Run("text body", func(t *testing.T) {
		err := &httperr.APIError{Status: http.StatusBadRequest, Body: httperr.DecodeErrorBody([]byte(`"boom"`))}
		assert.Nil(t, apiFieldErrors(err))
	})

	t.Run("not an api error", func(t *testing.T) {
		assert.Nil(t, apiFieldErrors(errors.New("x")))
		assert.Nil(t, apiFieldErrors(nil))
	})
}

func TestReservationStatuses(t *testing.T) {
	closed := reservationStatuses(nil)
	assert.Equal(t, []string{"Confirmado", "Pendiente", "Cancelado", "Completado"}, closed)

	known := reservationStatuses(&formView{Draft: validators.Draft{"estado": "Cancelado"}})
	assert.Equal(t, closed, known)

	legacy := reservationStatuses(&formView{Draft: validators.Draft{"estado": "Reprogramado"}})
	assert.Equal(t, append(closed, "Reprogramado"), legacy)
}

func TestRelayCookies_StripsDomain(t *testing.T) {
	c, w := postContext(t, url.Values{})

	relayCookies(c, []*http.Cookie{
		{Name: "access_token", Value: "abc", Domain: "api.example.com", HttpOnly: true},
	})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.Empty(t, cookies[0].Domain)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)
}

func TestRedirect_UsesSeeOther(t *testing.T) {
	c, w := postContext(t, url.Values{})

	redirectExpired(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth?expired=1", w.Header().Get("Location"))
}
