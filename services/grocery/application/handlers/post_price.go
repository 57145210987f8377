package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ghuser/pricetrack/pkg/errhttp"
	"github.com/ghuser/pricetrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/pricetrack/pkg/validator"
	appsvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
)

// UpdatePriceRequest is the request body for POST /items/{id}/prices.
type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price" validate:"required,gt=0" swaggertype:"number" example:"4.50"`
} // @name UpdatePriceRequest

// PostPriceHandler handles POST /items/{id}/prices requests.
type PostPriceHandler struct {
	svc          *appsvcs.Services
	hideInternal bool
}

// NewPostPriceHandler returns a PostPriceHandler backed by the given services.
func NewPostPriceHandler(svc *appsvcs.Services, hideInternal bool) *PostPriceHandler {
	return &PostPriceHandler{svc: svc, hideInternal: hideInternal}
}

// Execute records a new price for the item, dated today.
//
//	@Summary		Update price
//	@Description	Appends a price point dated today; undo with POST /items/undo-price
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Item ID"
//	@Param			request	body		UpdatePriceRequest	true	"New price"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/{id}/prices [post]
func (h *PostPriceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdatePriceRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Store.UpdatePrice(r.Context(), chi.URLParam(r, "id"), req.Price)
	if err != nil {
		errhttp.WriteError(w, err, h.hideInternal)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponse(item, h.svc.Store.Currency()))
}
