package view

import (
	"strconv"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/domain/reservation"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/validators"
)

// Messages are the user-facing texts of one entity view.
type Messages struct {
	CreatedTitle string
	CreatedText  string
	UpdatedTitle string
	UpdatedText  string
	DeletedTitle string
	DeletedText  string

	CreateFailedTitle string
	UpdateFailedTitle string
	NetworkText       string
	DeleteFailedText  string
	DeleteNetworkText string

	ConfirmDeleteTitle string
	ConfirmDeleteText  string
}

// Entity describes how a view validates, seeds and filters one kind of row.
type Entity[T any, In any] struct {
	Name     string
	Validate func(validators.Draft) (In, error)
	ID       func(T) int
	Seed     func(T) validators.Draft
	Blank    func() validators.Draft
	Fields   func(T) []string
	Messages Messages
}

var Clients = Entity[models.Client, models.ClientInput]{
	Name:     "clients",
	Validate: validators.ValidateClient,
	ID:       func(c models.Client) int { return c.ID },
	Seed: func(c models.Client) validators.Draft {
		return validators.Draft{
			"nombre":    c.Nombre,
			"apellido":  c.Apellido,
			"documento": c.Documento,
			"telefono":  c.Telefono,
			"email":     c.Email,
			"edad":      strconv.Itoa(c.Edad),
		}
	},
	Blank: func() validators.Draft {
		return validators.Draft{"edad": "0"}
	},
	Fields: func(c models.Client) []string {
		return []string{c.Nombre, c.Apellido, c.Documento, c.Email, c.Telefono}
	},
	Messages: Messages{
		CreatedTitle:       "Cliente creado",
		CreatedText:        "El nuevo cliente se ha registrado correctamente.",
		UpdatedTitle:       "Cliente actualizado",
		UpdatedText:        "El cliente se ha actualizado correctamente.",
		DeletedTitle:       "Eliminado",
		DeletedText:        "El cliente fue eliminado exitosamente.",
		CreateFailedTitle:  "Error al crear cliente",
		UpdateFailedTitle:  "Error al actualizar cliente",
		NetworkText:        "No se pudo conectar con el servidor.",
		DeleteFailedText:   "No se pudo eliminar el cliente.",
		DeleteNetworkText:  "Hubo un problema de red al eliminar el cliente.",
		ConfirmDeleteTitle: "¿Estás seguro que deseas eliminar el cliente?",
		ConfirmDeleteText:  "¡Esta acción eliminará el cliente permanentemente!",
	},
}

var Establishments = Entity[models.Establishment, models.EstablishmentInput]{
	Name:     "establishments",
	Validate: validators.ValidateEstablishment,
	ID:       func(e models.Establishment) int { return e.ID },
	Seed: func(e models.Establishment) validators.Draft {
		return validators.Draft{
			"nombre":    e.Nombre,
			"tipo":      e.Tipo,
			"direccion": e.Direccion,
			"ciudad":    e.Ciudad,
			"capacidad": e.Capacidad,
			"estado":    e.Estado,
			"telefono":  e.Telefono,
		}
	},
	Fields: func(e models.Establishment) []string {
		return []string{e.Nombre, e.Tipo, e.Direccion, e.Ciudad, e.Estado, e.Telefono}
	},
	Messages: Messages{
		CreatedTitle:       "Establecimiento creado",
		CreatedText:        "El nuevo establecimiento se ha registrado correctamente.",
		UpdatedTitle:       "Establecimiento actualizado",
		UpdatedText:        "El establecimiento se ha actualizado correctamente.",
		DeletedTitle:       "Eliminado",
		DeletedText:        "El establecimiento fue eliminado exitosamente.",
		CreateFailedTitle:  "Error al crear establecimiento",
		UpdateFailedTitle:  "Error al actualizar establecimiento",
		NetworkText:        "No se pudo conectar con el servidor.",
		DeleteFailedText:   "No se pudo eliminar el establecimiento.",
		DeleteNetworkText:  "Hubo un problema de red al eliminar el establecimiento.",
		ConfirmDeleteTitle: "¿Estás seguro que deseas eliminar el establecimiento?",
		ConfirmDeleteText:  "¡Esta acción eliminará el establecimiento permanentemente!",
	},
}

var Reservations = Entity[models.Reservation, models.ReservationInput]{
	Name:     "reservations",
	Validate: validators.ValidateReservation,
	ID:       func(r models.Reservation) int { return r.ID },
	Seed: func(r models.Reservation) validators.Draft {
		return validators.Draft{
			"fecha":              r.Fecha,
			"descripcion":        r.Descripcion,
			"valor":              r.Valor,
			"estado":             r.Estado,
			"cliente_id":         strconv.Itoa(r.Cliente.ID),
			"establecimiento_id": strconv.Itoa(r.Establecimiento.ID),
		}
	},
	Blank: func() validators.Draft {
		return validators.Draft{"estado": string(reservation.InitialStatus())}
	},
	Fields: func(r models.Reservation) []string {
		return []string{r.Cliente.Nombre, r.Establecimiento.Nombre, r.Fecha, r.Descripcion, r.Valor}
	},
	Messages: Messages{
		CreatedTitle:       "Reserva creada",
		CreatedText:        "La reserva ha sido registrada exitosamente.",
		UpdatedTitle:       "Reserva actualizada",
		UpdatedText:        "La reserva ha sido actualizada exitosamente.",
		DeletedTitle:       "Eliminada",
		DeletedText:        "La reserva fue eliminada exitosamente.",
		CreateFailedTitle:  "Error al crear reserva",
		UpdateFailedTitle:  "Error al actualizar reserva",
		NetworkText:        "Hubo un problema de red al guardar la reserva.",
		DeleteFailedText:   "No se pudo eliminar la reserva.",
		DeleteNetworkText:  "Hubo un problema de red al eliminar la reserva.",
		ConfirmDeleteTitle: "¿Estás seguro que deseas eliminar la reserva?",
		ConfirmDeleteText:  "¡Esta acción eliminará la reserva permanentemente!",
	},
}
