package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/apiclient"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/audit"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/view"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/viewstate"
)

type EstablishmentHandler = EntityHandler[models.Establishment, models.EstablishmentInput]

func NewEstablishmentHandler(
	api *apiclient.Client,
	store viewstate.Store,
	dispatcher *audit.Dispatcher,
	log *zap.Logger,
) *EstablishmentHandler {
	return &EstablishmentHandler{
		entity:      view.Establishments,
		resource:    api.Establishments(),
		store:       store,
		audit:       dispatcher,
		log:         log,
		base:        "/establishments",
		title:       "Establishments",
		placeholder: "Search establishments...",
		decorate: func(_ context.Context, _ apiclient.Session, page *entityPage[models.Establishment]) {
			page.Estados = models.EstablishmentStatuses
		},
	}
}
