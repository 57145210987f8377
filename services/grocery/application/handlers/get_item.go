package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/pricetrack/pkg/errhttp"
	"github.com/ghuser/pricetrack/pkg/httpx"
	appsvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
)

// GetItemHandler handles GET /items/{id} requests.
type GetItemHandler struct {
	svc          *appsvcs.Services
	hideInternal bool
}

// NewGetItemHandler returns a GetItemHandler backed by the given services.
func NewGetItemHandler(svc *appsvcs.Services, hideInternal bool) *GetItemHandler {
	return &GetItemHandler{svc: svc, hideInternal: hideInternal}
}

// Execute returns one item with its full price history.
//
//	@Summary		Get item
//	@Tags			items
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	ItemResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Store.Get(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err, h.hideInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponse(item, h.svc.Store.Currency()))
}
