package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/apiclient"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/audit"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/domain/reservation"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/view"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/viewstate"
)

type ReservationHandler = EntityHandler[models.Reservation, models.ReservationInput]

func NewReservationHandler(
	api *apiclient.Client,
	store viewstate.Store,
	dispatcher *audit.Dispatcher,
	log *zap.Logger,
) *ReservationHandler {
	return &ReservationHandler{
		entity:      view.Reservations,
		resource:    api.Reservations(),
		store:       store,
		audit:       dispatcher,
		log:         log,
		base:        "/reservations",
		title:       "Reservations",
		placeholder: "Search reservations...",
		decorate: func(ctx context.Context, sess apiclient.Session, page *entityPage[models.Reservation]) {
			page.Statuses = reservationStatuses(page.Form)
			if page.Form == nil {
				return
			}

			// The selects are filled only while the form is open.
			clients, err := api.Clients().List(ctx, sess)
			if err != nil {
				log.Warn("load clients for reservation form", zap.Error(err))
			}
			establishments, err := api.Establishments().List(ctx, sess)
			if err != nil {
				log.Warn("load establishments for reservation form", zap.Error(err))
			}
			page.Clients = clients
			page.Establishments = establishments
		},
	}
}

// reservationStatuses appends an unknown stored status so editing keeps it
// selectable.
func reservationStatuses(form *formView) []string {
	opts := reservation.Options()
	if form == nil {
		return opts
	}
	if s := form.Draft.Get("estado"); s != "" && !reservation.IsKnown(s) {
		opts = append(opts, s)
	}
	return opts
}
