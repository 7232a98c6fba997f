package apitest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
)

func clientFrom(id int, in models.ClientInput) models.Client {
	return models.Client{
		ID:        id,
		Nombre:    in.Nombre,
		Apellido:  in.Apellido,
		Documento: in.Documento,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Edad:      in.Edad,
	}
}

func establishmentFrom(id int, in models.EstablishmentInput) models.Establishment {
	return models.Establishment{
		ID:        id,
		Nombre:    in.Nombre,
		Tipo:      in.Tipo,
		Direccion: in.Direccion,
		Ciudad:    in.Ciudad,
		Capacidad: in.Capacidad,
		Estado:    in.Estado,
		Telefono:  in.Telefono,
	}
}

func (s *Server) reservationFromLocked(id int, in models.ReservationInput) (models.Reservation, bool) {
	r := models.Reservation{
		ID:          id,
		Fecha:       in.Fecha,
		Descripcion: in.Descripcion,
		Valor:       in.Valor,
		Estado:      in.Estado,
	}

	var okC, okE bool
	for _, c := range s.clients {
		if c.ID == in.ClienteID {
			r.Cliente, okC = c, true
		}
	}
	for _, e := range s.establishments {
		if e.ID == in.EstablecimientoID {
			r.Establecimiento, okE = e, true
		}
	}
	return r, okC && okE
}

// --------- Clients ---------

func (s *Server) listClients(c *gin.Context) {
	s.mu.Lock()
	out := append([]models.Client{}, s.clients...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) createClient(c *gin.Context) {
	var in models.ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.clients {
		if existing.Documento == in.Documento {
			c.JSON(http.StatusBadRequest, gin.H{"documento": []string{"cliente con este documento ya existe."}})
			return
		}
	}
	created := clientFrom(s.newIDLocked(), in)
	s.clients = append(s.clients, created)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateClient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in models.ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients[i] = clientFrom(id, in)
			c.JSON(http.StatusOK, s.clients[i])
			return
		}
	}
	notFound(c)
}

func (s *Server) deleteClient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	notFound(c)
}

// --------- Establishments ---------

func (s *Server) listEstablishments(c *gin.Context) {
	s.mu.Lock()
	out := append([]models.Establishment{}, s.establishments...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) createEstablishment(c *gin.Context) {
	var in models.EstablishmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created := establishmentFrom(s.newIDLocked(), in)
	s.establishments = append(s.establishments, created)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateEstablishment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in models.EstablishmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.establishments {
		if s.establishments[i].ID == id {
			s.establishments[i] = establishmentFrom(id, in)
			c.JSON(http.StatusOK, s.establishments[i])
			return
		}
	}
	notFound(c)
}

func (s *Server) deleteEstablishment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.establishments {
		if s.establishments[i].ID == id {
			s.establishments = append(s.establishments[:i], s.establishments[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	notFound(c)
}

// --------- Reservations ---------

func (s *Server) listReservations(c *gin.Context) {
	s.mu.Lock()
	out := append([]models.Reservation{}, s.reservations...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) createReservation(c *gin.Context) {
	var in models.ReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created, ok := s.reservationFromLocked(s.newIDLocked(), in)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"cliente": []string{"Clave primaria inválida."}})
		return
	}
	s.reservations = append(s.reservations, created)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateReservation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in models.ReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			updated, ok := s.reservationFromLocked(id, in)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"cliente": []string{"Clave primaria inválida."}})
				return
			}
			s.reservations[i] = updated
			c.JSON(http.StatusOK, updated)
			return
		}
	}
	notFound(c)
}

func (s *Server) deleteReservation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			s.reservations = append(s.reservations[:i], s.reservations[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	notFound(c)
}
