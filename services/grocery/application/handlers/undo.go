package handlers

import (
	"net/http"

	"github.com/ghuser/pricetrack/pkg/errhttp"
	"github.com/ghuser/pricetrack/pkg/httpx"
	appsvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
)

// UndoDeleteHandler handles POST /items/undo-delete requests.
type UndoDeleteHandler struct {
	svc          *appsvcs.Services
	hideInternal bool
}

// NewUndoDeleteHandler returns an UndoDeleteHandler backed by the given services.
func NewUndoDeleteHandler(svc *appsvcs.Services, hideInternal bool) *UndoDeleteHandler {
	return &UndoDeleteHandler{svc: svc, hideInternal: hideInternal}
}

// Execute restores the last deleted item.
//
//	@Summary		Undo delete
//	@Tags			undo
//	@Produce		json
//	@Success		200	{object}	ItemResponse
//	@Failure		409	{object}	ErrorResponse	"Nothing to undo, or the id is taken again"
//	@Router			/items/undo-delete [post]
func (h *UndoDeleteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Store.UndoDelete(r.Context())
	if err != nil {
		errhttp.WriteError(w, err, h.hideInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponse(item, h.svc.Store.Currency()))
}

// UndoPriceHandler handles POST /items/undo-price requests.
type UndoPriceHandler struct {
	svc          *appsvcs.Services
	hideInternal bool
}

// NewUndoPriceHandler returns an UndoPriceHandler backed by the given services.
func NewUndoPriceHandler(svc *appsvcs.Services, hideInternal bool) *UndoPriceHandler {
	return &UndoPriceHandler{svc: svc, hideInternal: hideInternal}
}

// Execute reverts the last price update.
//
//	@Summary		Undo price update
//	@Tags			undo
//	@Produce		json
//	@Success		200	{object}	ItemResponse
//	@Failure		404	{object}	ErrorResponse	"The updated item was deleted since"
//	@Failure		409	{object}	ErrorResponse	"Nothing to undo"
//	@Router			/items/undo-price [post]
func (h *UndoPriceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Store.UndoPriceUpdate(r.Context())
	if err != nil {
		errhttp.WriteError(w, err, h.hideInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponse(item, h.svc.Store.Currency()))
}
