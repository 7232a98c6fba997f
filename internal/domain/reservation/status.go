package reservation

// ===============================
// Reservation Status
// ===============================

// Status is free-form on the API side; these are the values the dashboard
// offers.
type Status string

const (
	StatusConfirmed Status = "Confirmado"
	StatusPending   Status = "Pendiente"
	StatusCancelled Status = "Cancelado"
	StatusCompleted Status = "Completado"
)

// Options returns the statuses in the order the form lists them.
func Options() []string {
	return []string{
		string(StatusConfirmed),
		string(StatusPending),
		string(StatusCancelled),
		string(StatusCompleted),
	}
}

// InitialStatus preselected for a new reservation.
func InitialStatus() Status {
	return StatusPending
}

// IsKnown reports whether s is one of the offered values. Other values are
// still accepted and shown as-is.
func IsKnown(s string) bool {
	for _, o := range Options() {
		if o == s {
			return true
		}
	}
	return false
}
