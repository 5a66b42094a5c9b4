package handlers

import (
	"net/http"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/application/event"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/metrics"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/validate"
)

type EventsHandler struct {
	svc *event.Service
}

func NewEventsHandler(svc *event.Service) *EventsHandler {
	return &EventsHandler{svc: svc}
}

// GetEvent returns the event view, enriched for the caller when signed in.
func (h *EventsHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	who := middleware.PrincipalFrom(r)
	view, err := h.svc.GetDetails(r.Context(), id, who)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	metrics.RecordEventView(who.IsSignedIn())
	response.Data(w, http.StatusOK, view)
}

// ListCampaignEvents returns the anonymous views of a campaign's events.
func (h *EventsHandler) ListCampaignEvents(w http.ResponseWriter, r *http.Request) {
	campaignID, err := validate.PathID(r, "campaign_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	views, err := h.svc.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.NewListResp(views))
}
