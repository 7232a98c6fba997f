// Package apitest runs an in-memory stand-in for the reservations REST API,
// for tests.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
)

const (
	ClientsPath        = "/cliente/api/v1/cliente/"
	EstablishmentsPath = "/establecimiento/api/v1/establecimiento/"
	ReservationsPath   = "/reserva/api/v1/reserva/"
)

type failure struct {
	status int
	body   string
}

type Server struct {
	*httptest.Server

	mu     sync.Mutex
	secret []byte
	nextID int

	users  map[string]models.AppUser
	tokens map[string]string

	clients        []models.Client
	establishments []models.Establishment
	reservations   []models.Reservation

	forbid   bool
	failNext *failure
	calls    map[string]int
}

func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		secret: []byte("apitest-secret"),
		users:  map[string]models.AppUser{},
		tokens: map[string]string{},
		calls:  map[string]int{},
	}

	r := gin.New()
	r.Use(s.count)

	u := r.Group("/usuario")
	{
		u.POST("/login/", s.login)
		u.POST("/register/", s.register)
		u.POST("/logout/", s.logout)
	}

	authed := r.Group("/", s.requireSession)
	{
		authed.GET(ClientsPath, s.listClients)
		authed.POST(ClientsPath, s.mutation, s.createClient)
		authed.PUT(ClientsPath+":id/", s.mutation, s.updateClient)
		authed.DELETE(ClientsPath+":id/", s.mutation, s.deleteClient)

		authed.GET(EstablishmentsPath, s.listEstablishments)
		authed.POST(EstablishmentsPath, s.mutation, s.createEstablishment)
		authed.PUT(EstablishmentsPath+":id/", s.mutation, s.updateEstablishment)
		authed.DELETE(EstablishmentsPath+":id/", s.mutation, s.deleteEstablishment)

		authed.GET(ReservationsPath, s.listReservations)
		authed.POST(ReservationsPath, s.mutation, s.createReservation)
		authed.PUT(ReservationsPath+":id/", s.mutation, s.updateReservation)
		authed.DELETE(ReservationsPath+":id/", s.mutation, s.deleteReservation)
	}

	s.Server = httptest.NewServer(r)
	return s
}

// --------- Test controls ---------

func (s *Server) AddUser(u models.AppUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Username] = u
}

// Token issues a session token for username without going through login.
func (s *Server) Token(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(username)
}

func (s *Server) ForbidMutations(forbid bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forbid = forbid
}

// FailNextMutation makes the next create/update/delete answer with status
// and the raw body.
func (s *Server) FailNextMutation(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = &failure{status: status, body: body}
}

func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+path]
}

func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *Server) SeedClient(in models.ClientInput) models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := clientFrom(s.newIDLocked(), in)
	s.clients = append(s.clients, c)
	return c
}

func (s *Server) SeedEstablishment(in models.EstablishmentInput) models.Establishment {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := establishmentFrom(s.newIDLocked(), in)
	s.establishments = append(s.establishments, e)
	return e
}

func (s *Server) SeedReservation(in models.ReservationInput) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservationFromLocked(s.newIDLocked(), in)
	if !ok {
		return models.Reservation{}, fmt.Errorf("apitest: unknown client or establishment")
	}
	s.reservations = append(s.reservations, r)
	return r, nil
}

// --------- Middleware ---------

func (s *Server) count(c *gin.Context) {
	s.mu.Lock()
	s.calls[c.Request.Method+" "+c.Request.URL.Path]++
	s.mu.Unlock()
	c.Next()
}

func (s *Server) requireSession(c *gin.Context) {
	token, err := c.Cookie("access_token")
	s.mu.Lock()
	_, ok := s.tokens[token]
	s.mu.Unlock()
	if err != nil || !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Las credenciales de autenticación no se proveyeron."})
		return
	}
	c.Next()
}

func (s *Server) mutation(c *gin.Context) {
	s.mu.Lock()
	forbid := s.forbid
	fail := s.failNext
	s.failNext = nil
	s.mu.Unlock()

	if forbid {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Usted no tiene permiso para realizar esta acción."})
		return
	}
	if fail != nil {
		c.Data(fail.status, "application/json", []byte(fail.body))
		c.Abort()
		return
	}
	c.Next()
}

// --------- Session ---------

func (s *Server) issueLocked(username string) string {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	s.tokens[signed] = username
	return signed
}

func (s *Server) login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON inválido"})
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Username]
	if !ok || u.Password != req.Password {
		s.mu.Unlock()
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Credenciales inválidas"})
		return
	}
	token := s.issueLocked(u.Username)
	s.mu.Unlock()

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Login exitoso"})
}

func (s *Server) register(c *gin.Context) {
	var req models.AppUser
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Username]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"username": []string{"Ya existe un usuario con este nombre."}})
		return
	}
	s.users[req.Username] = req
	c.JSON(http.StatusCreated, gin.H{"username": req.Username, "email": req.Email, "role": req.Role})
}

func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie("access_token"); err == nil {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
	}
	http.SetCookie(c.Writer, &http.Cookie{Name: "access_token", Value: "", Path: "/", MaxAge: -1})
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

// --------- Helpers ---------

func (s *Server) newIDLocked() int {
	s.nextID++
	return s.nextID
}

func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No encontrado."})
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "No encontrado."})
}
