package models

// Reservation as returned by the list endpoint, with the owning client and
// establishment embedded.
type Reservation struct {
	ID              int           `json:"id"`
	Fecha           string        `json:"fecha"`
	Descripcion     string        `json:"descripcion,omitempty"`
	Valor           string        `json:"valor"`
	Estado          string        `json:"estado"`
	Cliente         Client        `json:"cliente"`
	Establecimiento Establishment `json:"establecimiento"`
}

// ReservationInput references client and establishment by id.
type ReservationInput struct {
	Fecha             string `json:"fecha"`
	Descripcion       string `json:"descripcion"`
	Valor             string `json:"valor"`
	Estado            string `json:"estado"`
	ClienteID         int    `json:"cliente_id"`
	EstablecimientoID int    `json:"establecimiento_id"`
}
