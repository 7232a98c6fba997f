package handlers

import (
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/apiclient"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/audit"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/view"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/viewstate"
)

type ClientHandler = EntityHandler[models.Client, models.ClientInput]

func NewClientHandler(
	api *apiclient.Client,
	store viewstate.Store,
	dispatcher *audit.Dispatcher,
	log *zap.Logger,
) *ClientHandler {
	return &ClientHandler{
		entity:      view.Clients,
		resource:    api.Clients(),
		store:       store,
		audit:       dispatcher,
		log:         log,
		base:        "/clients",
		title:       "Clients",
		placeholder: "Search clients...",
	}
}
