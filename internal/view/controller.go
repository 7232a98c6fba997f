package view

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/apiclient"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/httperr"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/validators"
)

var (
	ErrRowNotFound     = errors.New("row not found in snapshot")
	ErrFormClosed      = errors.New("no form is open")
	ErrNoPendingDelete = errors.New("no deletion awaiting confirmation")
)

const (
	networkTitle = "Error de red"
	genericError = "Ocurrió un error inesperado. Contacta al administrador"
	unknownError = "Error desconocido."
)

// Resource is the REST surface a view needs; apiclient.Resource satisfies it.
type Resource[T any, In any] interface {
	List(ctx context.Context, sess apiclient.Session) ([]T, error)
	Create(ctx context.Context, sess apiclient.Session, in In) error
	Update(ctx context.Context, sess apiclient.Session, id int, in In) error
	Delete(ctx context.Context, sess apiclient.Session, id int) error
}

// Controller owns the state of one entity view for one browser session.
// It is rebuilt per request from the persisted Memory and is not safe for
// concurrent use.
type Controller[T any, In any] struct {
	entity   Entity[T, In]
	resource Resource[T, In]
	sess     apiclient.Session

	mem      Memory
	snapshot []T
	stale    bool
}

func NewController[T any, In any](
	entity Entity[T, In],
	resource Resource[T, In],
	sess apiclient.Session,
	mem Memory,
) *Controller[T, In] {
	return &Controller[T, In]{
		entity:   entity,
		resource: resource,
		sess:     sess,
		mem:      mem,
		stale:    true,
	}
}

func (c *Controller[T, In]) Memory() Memory {
	return c.mem
}

func (c *Controller[T, In]) State() State {
	return c.mem.State
}

// NeedsRefresh reports whether the snapshot must be refetched before it is
// shown again.
func (c *Controller[T, In]) NeedsRefresh() bool {
	return c.stale
}

// Load replaces the snapshot wholesale with a fresh list from the API. On
// failure the snapshot is left empty.
func (c *Controller[T, In]) Load(ctx context.Context) error {
	items, err := c.resource.List(ctx, c.sess)
	if err != nil {
		c.snapshot = nil
		return err
	}
	c.snapshot = items
	c.stale = false
	return nil
}

func (c *Controller[T, In]) Snapshot() []T {
	return c.snapshot
}

func (c *Controller[T, In]) SetSearch(term string) {
	c.mem.Search = term
}

func (c *Controller[T, In]) Search() string {
	return c.mem.Search
}

// Rows is the snapshot filtered by the current search term.
func (c *Controller[T, In]) Rows() []T {
	return Filter(c.snapshot, c.mem.Search, c.entity.Fields)
}

// Filter keeps the items for which any field contains term, ignoring case.
// An empty term returns items unchanged.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)

	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// --------- Form ---------

func (c *Controller[T, In]) OpenCreate() {
	c.mem.State = FormOpen
	c.mem.Mode = ModeCreate
	c.mem.EditID = 0
	c.mem.Errors = nil
	if c.entity.Blank != nil {
		c.mem.Draft = c.entity.Blank()
	} else {
		c.mem.Draft = validators.Draft{}
	}
}

// OpenEdit seeds the draft from the snapshot row with the given id. The
// snapshot must be loaded.
func (c *Controller[T, In]) OpenEdit(id int) error {
	for _, it := range c.snapshot {
		if c.entity.ID(it) == id {
			c.mem.State = FormOpen
			c.mem.Mode = ModeEdit
			c.mem.EditID = id
			c.mem.Errors = nil
			c.mem.Draft = c.entity.Seed(it)
			return nil
		}
	}
	return ErrRowNotFound
}

func (c *Controller[T, In]) Cancel() {
	c.closeForm()
}

func (c *Controller[T, In]) closeForm() {
	c.mem.State = Idle
	c.mem.Mode = 0
	c.mem.EditID = 0
	c.mem.Draft = nil
	c.mem.Errors = nil
}

// Submit validates the draft and, when it is accepted, sends it to the API.
// The returned error is the validation or API failure, already reflected in
// the view state and notice.
func (c *Controller[T, In]) Submit(ctx context.Context, draft validators.Draft) error {
	if c.mem.State != FormOpen {
		return ErrFormClosed
	}

	c.mem.Draft = draft.Clone()
	msgs := c.entity.Messages

	in, err := c.entity.Validate(draft)
	if err != nil {
		var fe *validators.FieldErrors
		if errors.As(err, &fe) {
			c.mem.Errors = fe.Map()
			c.setNotice(NoticeError, "Error de validación", fe.Message())
		}
		return err
	}
	c.mem.Errors = nil

	mode := c.mem.Mode
	c.mem.State = Submitting
	if mode == ModeEdit {
		err = c.resource.Update(ctx, c.sess, c.mem.EditID, in)
	} else {
		err = c.resource.Create(ctx, c.sess, in)
	}

	failTitle := msgs.CreateFailedTitle
	if mode == ModeEdit {
		failTitle = msgs.UpdateFailedTitle
	}

	switch httperr.KindOf(err) {
	case httperr.KindNone:
		c.closeForm()
		c.stale = true
		if mode == ModeEdit {
			c.setNotice(NoticeSuccess, msgs.UpdatedTitle, msgs.UpdatedText)
		} else {
			c.setNotice(NoticeSuccess, msgs.CreatedTitle, msgs.CreatedText)
		}
	case httperr.KindForbidden:
		c.mem.State = FormOpen
		c.setNotice(NoticeWarning, forbiddenTitle, forbiddenText)
	case httperr.KindServer:
		c.mem.State = FormOpen
		c.setNotice(NoticeError, failTitle, httperr.Message(err, unknownError))
	case httperr.KindTransport:
		c.closeForm()
		c.setNotice(NoticeError, networkTitle, msgs.NetworkText)
	case httperr.KindUnauthorized:
		c.closeForm()
		c.setNotice(NoticeWarning, expiredTitle, expiredText)
	default:
		c.mem.State = FormOpen
		c.setNotice(NoticeError, failTitle, genericError)
	}
	return err
}

// --------- Delete ---------

// RequestDelete opens the confirmation step; nothing is sent yet.
func (c *Controller[T, In]) RequestDelete(id int) {
	c.mem.ConfirmDeleteID = id
}

func (c *Controller[T, In]) PendingDelete() int {
	return c.mem.ConfirmDeleteID
}

// ConfirmDelete resolves the confirmation step. Declining sends nothing.
// Affirming sends the delete and marks the list for refetch whatever the
// outcome.
func (c *Controller[T, In]) ConfirmDelete(ctx context.Context, affirm bool) error {
	id := c.mem.ConfirmDeleteID
	c.mem.ConfirmDeleteID = 0
	if id == 0 {
		return ErrNoPendingDelete
	}
	if !affirm {
		return nil
	}

	err := c.resource.Delete(ctx, c.sess, id)
	c.stale = true

	msgs := c.entity.Messages
	switch httperr.KindOf(err) {
	case httperr.KindNone:
		c.setNotice(NoticeSuccess, msgs.DeletedTitle, msgs.DeletedText)
	case httperr.KindForbidden:
		c.setNotice(NoticeWarning, forbiddenTitle, forbiddenText)
	case httperr.KindTransport:
		c.setNotice(NoticeError, "Error", msgs.DeleteNetworkText)
	case httperr.KindUnauthorized:
		c.setNotice(NoticeWarning, expiredTitle, expiredText)
	default:
		c.setNotice(NoticeError, "Error", msgs.DeleteFailedText)
	}
	return err
}

// --------- Notices ---------

func (c *Controller[T, In]) setNotice(kind NoticeKind, title, text string) {
	c.mem.Notice = &Notice{Kind: kind, Title: title, Text: text}
}

// Notify replaces the pending notice.
func (c *Controller[T, In]) Notify(kind NoticeKind, title, text string) {
	c.setNotice(kind, title, text)
}

// TakeNotice returns the pending notice and clears it.
func (c *Controller[T, In]) TakeNotice() *Notice {
	n := c.mem.Notice
	c.mem.Notice = nil
	return n
}
