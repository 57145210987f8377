package handlers

import (
	"net/http"

	"github.com/ghuser/pricetrack/pkg/errhttp"
	"github.com/ghuser/pricetrack/pkg/httpx"
	appsvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
	domainsvcs "github.com/ghuser/pricetrack/services/grocery/domain/services"
)

// GetComparisonHandler handles GET /comparison requests.
type GetComparisonHandler struct {
	svc          *appsvcs.Services
	hideInternal bool
}

// NewGetComparisonHandler returns a GetComparisonHandler backed by the given services.
func NewGetComparisonHandler(svc *appsvcs.Services, hideInternal bool) *GetComparisonHandler {
	return &GetComparisonHandler{svc: svc, hideInternal: hideInternal}
}

// Execute compares store prices over a window.
//
//	@Summary		Compare prices
//	@Description	Latest price per item and store within the window, the best deal per item and the total savings
//	@Tags			comparison
//	@Produce		json
//	@Param			window	query		string	false	"Window preset"	Enums(all, week, month, 3months)	default(all)
//	@Success		200		{object}	ComparisonResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/comparison [get]
func (h *GetComparisonHandler) Execute(w http.ResponseWriter, r *http.Request) {
	preset, err := domainsvcs.ParsePreset(r.URL.Query().Get("window"))
	if err != nil {
		errhttp.WriteError(w, err, h.hideInternal)
		return
	}
	c := h.svc.Store.Compare(preset)
	httpx.JSON(w, http.StatusOK, newComparisonResponse(c, preset, h.svc.Store.Currency()))
}
