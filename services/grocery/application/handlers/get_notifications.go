package handlers

import (
	"net/http"

	"github.com/ghuser/pricetrack/pkg/httpx"
	appsvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
	"github.com/ghuser/pricetrack/services/grocery/domain/events"
)

// GetNotificationsHandler handles GET /notifications requests.
type GetNotificationsHandler struct {
	svc *appsvcs.Services
}

// NewGetNotificationsHandler returns a GetNotificationsHandler backed by the given services.
func NewGetNotificationsHandler(svc *appsvcs.Services) *GetNotificationsHandler {
	return &GetNotificationsHandler{svc: svc}
}

// Execute returns the most recent notifications, newest first.
//
//	@Summary		Recent notifications
//	@Tags			notifications
//	@Produce		json
//	@Success		200	{object}	NotificationsResponse
//	@Router			/notifications [get]
func (h *GetNotificationsHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	notes := []events.Notification{}
	if h.svc.Feed != nil {
		notes = h.svc.Feed.Recent()
	}
	httpx.JSON(w, http.StatusOK, NotificationsResponse{Notifications: notes})
}
