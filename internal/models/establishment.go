package models

const (
	EstablishmentAvailable   = "Disponible"
	EstablishmentUnavailable = "No Disponible"
)

// EstablishmentStatuses lists the only accepted values for Establishment.Estado.
var EstablishmentStatuses = []string{EstablishmentAvailable, EstablishmentUnavailable}

type Establishment struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	Tipo      string `json:"tipo"`
	Direccion string `json:"direccion"`
	Ciudad    string `json:"ciudad"`
	Capacidad string `json:"capacidad"`
	Estado    string `json:"estado"`
	Telefono  string `json:"telefono"`
}

type EstablishmentInput struct {
	Nombre    string `json:"nombre"`
	Tipo      string `json:"tipo"`
	Direccion string `json:"direccion"`
	Ciudad    string `json:"ciudad"`
	Capacidad string `json:"capacidad"`
	Estado    string `json:"estado"`
	Telefono  string `json:"telefono"`
}
