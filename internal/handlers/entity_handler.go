package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/apiclient"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/audit"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/httperr"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/middleware"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/validators"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/view"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/viewstate"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/web"
)

const (
	loadFailedTitle = "Error"
	loadFailedText  = "No se pudieron cargar los datos."
	rowMissingText  = "El registro ya no existe."
)

type formView struct {
	Base      string
	CSRFField template.HTML
	Mode      view.Mode
	EditID    int
	Draft     validators.Draft
	Errors    map[string][]string
}

type confirmView struct {
	Base      string
	CSRFField template.HTML
	ID        int
	Title     string
	Text      string
}

type rowView struct {
	Base      string
	CSRFField template.HTML
	ID        int
}

type entityPage[T any] struct {
	web.Layout

	Base              string
	Search            string
	SearchPlaceholder string
	Rows              []T
	Total             int

	Form          *formView
	ConfirmDelete *confirmView

	Estados        []string
	Statuses       []string
	Clients        []models.Client
	Establishments []models.Establishment
}

func (p entityPage[T]) Row(id int) rowView {
	return rowView{Base: p.Base, CSRFField: p.CSRFField, ID: id}
}

type submitOutcome struct {
	kind httperr.Kind
}

// EntityHandler serves the list page of one entity and its form and delete
// actions. Every POST ends in a redirect back to the list.
type EntityHandler[T any, In any] struct {
	entity   view.Entity[T, In]
	resource view.Resource[T, In]
	store    viewstate.Store
	audit    *audit.Dispatcher
	log      *zap.Logger

	base        string
	title       string
	placeholder string

	// decorate fills page extras once the snapshot is loaded.
	decorate func(ctx context.Context, sess apiclient.Session, page *entityPage[T])

	submits singleflight.Group
}

func (h *EntityHandler[T, In]) Base() string {
	return h.base
}

func (h *EntityHandler[T, In]) controller(c *gin.Context) (*view.Controller[T, In], error) {
	return h.restore(c.Request.Context(), middleware.SID(c), middleware.Session(c))
}

func (h *EntityHandler[T, In]) restore(ctx context.Context, sid string, sess apiclient.Session) (*view.Controller[T, In], error) {
	mem, err := h.store.Load(ctx, sid, h.entity.Name)
	if err != nil {
		return nil, err
	}
	return view.NewController(h.entity, h.resource, sess, mem), nil
}

func (h *EntityHandler[T, In]) save(c *gin.Context, ctl *view.Controller[T, In]) error {
	return h.persist(c.Request.Context(), middleware.SID(c), ctl)
}

func (h *EntityHandler[T, In]) persist(ctx context.Context, sid string, ctl *view.Controller[T, In]) error {
	return h.store.Save(ctx, sid, h.entity.Name, ctl.Memory())
}

func (h *EntityHandler[T, In]) record(subject, action string, id int, err error) {
	ev := audit.Event{
		Subject: subject,
		Action:  action,
		Entity:  h.entity.Name,
		Outcome: httperr.KindOf(err).String(),
	}
	if id != 0 {
		ev.EntityID = &id
	}
	if err != nil {
		ev.Metadata = map[string]string{"error": err.Error()}
	}
	h.audit.Dispatch(ev)
}

func (h *EntityHandler[T, In]) loadFailed(ctl *view.Controller[T, In], err error) {
	switch httperr.KindOf(err) {
	case httperr.KindForbidden:
		ctl.Notify(view.NoticeWarning, "Acceso denegado", "No tienes permisos para realizar esta acción.")
	default:
		ctl.Notify(view.NoticeError, loadFailedTitle, loadFailedText)
	}
	h.log.Warn("list failed", zap.String("view", h.entity.Name), zap.Error(err))
}

// --------- Pages ---------

func (h *EntityHandler[T, In]) Show(c *gin.Context) {
	ctx := c.Request.Context()

	ctl, err := h.controller(c)
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	if q, ok := c.GetQuery("q"); ok {
		ctl.SetSearch(strings.TrimSpace(q))
	}

	pending := ctl.TakeNotice()
	if err := ctl.Load(ctx); err != nil {
		if httperr.KindOf(err) == httperr.KindUnauthorized {
			if pending != nil {
				ctl.Notify(pending.Kind, pending.Title, pending.Text)
			}
			if err := h.save(c, ctl); err != nil {
				h.log.Warn("save view state", zap.String("view", h.entity.Name), zap.Error(err))
			}
			redirectExpired(c)
			return
		}
		h.loadFailed(ctl, err)
	}
	notice := ctl.TakeNotice()
	if pending != nil {
		notice = pending
	}

	if err := h.save(c, ctl); err != nil {
		internalError(c, h.log, err)
		return
	}

	page := entityPage[T]{
		Layout:            layout(c, h.entity.Name, h.title, true),
		Base:              h.base,
		Search:            ctl.Search(),
		SearchPlaceholder: h.placeholder,
		Rows:              ctl.Rows(),
		Total:             len(ctl.Snapshot()),
	}
	page.Notice = notice

	mem := ctl.Memory()
	if mem.State != view.Idle {
		page.Form = &formView{
			Base:      h.base,
			CSRFField: page.CSRFField,
			Mode:      mem.Mode,
			EditID:    mem.EditID,
			Draft:     mem.Draft,
			Errors:    mem.Errors,
		}
	}
	if mem.ConfirmDeleteID != 0 {
		page.ConfirmDelete = &confirmView{
			Base:      h.base,
			CSRFField: page.CSRFField,
			ID:        mem.ConfirmDeleteID,
			Title:     h.entity.Messages.ConfirmDeleteTitle,
			Text:      h.entity.Messages.ConfirmDeleteText,
		}
	}
	if h.decorate != nil {
		h.decorate(ctx, middleware.Session(c), &page)
	}

	c.HTML(http.StatusOK, web.Root, page)
}

// --------- Form ---------

func (h *EntityHandler[T, In]) New(c *gin.Context) {
	ctl, err := h.controller(c)
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	ctl.OpenCreate()
	if err := h.save(c, ctl); err != nil {
		internalError(c, h.log, err)
		return
	}
	redirect(c, h.base)
}

func (h *EntityHandler[T, In]) Edit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		redirect(c, h.base)
		return
	}

	ctl, err := h.controller(c)
	if err != nil {
		internalError(c, h.log, err)
		return
	}

	if err := ctl.Load(c.Request.Context()); err != nil {
		if httperr.KindOf(err) == httperr.KindUnauthorized {
			redirectExpired(c)
			return
		}
		h.loadFailed(ctl, err)
	} else if err := ctl.OpenEdit(id); errors.Is(err, view.ErrRowNotFound) {
		ctl.Notify(view.NoticeWarning, loadFailedTitle, rowMissingText)
	}

	if err := h.save(c, ctl); err != nil {
		internalError(c, h.log, err)
		return
	}
	redirect(c, h.base)
}

func (h *EntityHandler[T, In]) Submit(c *gin.Context) {
	draft, err := draftFrom(c)
	if err != nil {
		redirect(c, h.base)
		return
	}

	ctx := c.Request.Context()
	sid, sess, subject := middleware.SID(c), middleware.Session(c), middleware.Username(c)

	// The mutation outlives the request that started it so joined submits
	// are not cancelled with it.
	shared := context.WithoutCancel(ctx)
	ch := h.submits.DoChan(sid+"|"+h.entity.Name, func() (any, error) {
		ctl, err := h.restore(shared, sid, sess)
		if err != nil {
			return nil, err
		}

		mem := ctl.Memory()
		action, id := audit.ActionCreate, 0
		if mem.Mode == view.ModeEdit {
			action, id = audit.ActionUpdate, mem.EditID
		}

		subErr := ctl.Submit(shared, draft)
		if err := h.persist(shared, sid, ctl); err != nil {
			return nil, err
		}

		kind := httperr.KindOf(subErr)
		switch kind {
		case httperr.KindValidation, httperr.KindInternal:
		default:
			h.record(subject, action, id, subErr)
		}
		return submitOutcome{kind: kind}, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return
	case res = <-ch:
	}
	if res.Err != nil {
		internalError(c, h.log, res.Err)
		return
	}

	if res.Val.(submitOutcome).kind == httperr.KindUnauthorized {
		redirectExpired(c)
		return
	}
	redirect(c, h.base)
}

func (h *EntityHandler[T, In]) Cancel(c *gin.Context) {
	ctl, err := h.controller(c)
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	ctl.Cancel()
	if err := h.save(c, ctl); err != nil {
		internalError(c, h.log, err)
		return
	}
	redirect(c, h.base)
}

// --------- Delete ---------

func (h *EntityHandler[T, In]) AskDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		redirect(c, h.base)
		return
	}

	ctl, err := h.controller(c)
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	ctl.RequestDelete(id)
	if err := h.save(c, ctl); err != nil {
		internalError(c, h.log, err)
		return
	}
	redirect(c, h.base)
}

func (h *EntityHandler[T, In]) ConfirmDelete(c *gin.Context) {
	affirm := c.PostForm("confirm") == "yes"

	ctl, err := h.controller(c)
	if err != nil {
		internalError(c, h.log, err)
		return
	}

	id := ctl.PendingDelete()
	delErr := ctl.ConfirmDelete(c.Request.Context(), affirm)
	if err := h.save(c, ctl); err != nil {
		internalError(c, h.log, err)
		return
	}

	if id == 0 || !affirm {
		redirect(c, h.base)
		return
	}
	h.record(middleware.Username(c), audit.ActionDelete, id, delErr)

	if httperr.KindOf(delErr) == httperr.KindUnauthorized {
		redirectExpired(c)
		return
	}
	redirect(c, h.base)
}
