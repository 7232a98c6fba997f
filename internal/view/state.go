package view

import "github.com/BruksfildServices01/reserveflow-dashboard/internal/validators"

type State int

const (
	Idle State = iota
	FormOpen
	Submitting
)

func (s State) String() string {
	switch s {
	case FormOpen:
		return "form_open"
	case Submitting:
		return "submitting"
	default:
		return "idle"
	}
}

type Mode int

const (
	ModeCreate Mode = iota + 1
	ModeEdit
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeWarning NoticeKind = "warning"
)

const (
	forbiddenTitle = "Acceso denegado"
	forbiddenText  = "No tienes permisos para realizar esta acción."
	expiredTitle   = "Sesión expirada"
	expiredText    = "Inicia sesión nuevamente."
)

// Notice is a transient message shown once on the next render.
type Notice struct {
	Kind  NoticeKind `json:"kind"`
	Title string     `json:"title"`
	Text  string     `json:"text"`
}

// ExpiredNotice is shown on the auth page after the API rejected the
// session.
func ExpiredNotice() *Notice {
	return &Notice{Kind: NoticeWarning, Title: expiredTitle, Text: expiredText}
}

// Memory is the part of a view that survives between requests of the same
// browser session. The list snapshot is never stored; it is refetched.
type Memory struct {
	State           State               `json:"state"`
	Search          string              `json:"search,omitempty"`
	Mode            Mode                `json:"mode,omitempty"`
	EditID          int                 `json:"edit_id,omitempty"`
	Draft           validators.Draft    `json:"draft,omitempty"`
	Errors          map[string][]string `json:"errors,omitempty"`
	ConfirmDeleteID int                 `json:"confirm_delete_id,omitempty"`
	Notice          *Notice             `json:"notice,omitempty"`
}
