package handlers

import (
	"net/http"

	"github.com/ghuser/pricetrack/pkg/httpx"
	appsvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists items, optionally filtered by name or store.
//
//	@Summary		List items
//	@Description	Lists tracked items with their latest price and price change
//	@Tags			items
//	@Produce		json
//	@Param			q	query		string	false	"Case-insensitive name or store filter"
//	@Success		200	{object}	ListItemsResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Store.Search(r.URL.Query().Get("q"))
	currency := h.svc.Store.Currency()

	resp := ListItemsResponse{Items: make([]ItemResponse, 0, len(items)), Count: len(items)}
	for _, item := range items {
		resp.Items = append(resp.Items, newItemResponse(item, currency))
	}
	pending := h.svc.Store.PendingUndo()
	resp.Undo = UndoState{DeletedItemID: pending.DeletedItemID, PriceItemID: pending.PriceItemID}

	httpx.JSON(w, http.StatusOK, resp)
}
