package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/pricetrack/pkg/errhttp"
	"github.com/ghuser/pricetrack/pkg/httpx"
	appsvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
)

// DeleteItemHandler handles DELETE /items/{id} requests.
type DeleteItemHandler struct {
	svc          *appsvcs.Services
	hideInternal bool
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services, hideInternal bool) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc, hideInternal: hideInternal}
}

// Execute removes the item and returns it.
//
//	@Summary		Delete item
//	@Description	Removes an item; undo with POST /items/undo-delete
//	@Tags			items
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	ItemResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err, h.hideInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponse(item, h.svc.Store.Currency()))
}
