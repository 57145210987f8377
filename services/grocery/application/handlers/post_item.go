package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ghuser/pricetrack/pkg/errhttp"
	"github.com/ghuser/pricetrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/pricetrack/pkg/validator"
	appsvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Name  string          `json:"name"  validate:"required,min=2,max=255" example:"Cheese"`
	Store string          `json:"store" validate:"required,min=2,max=255" example:"Acme"`
	Price decimal.Decimal `json:"price" validate:"required,gt=0" swaggertype:"number" example:"4.00"`
} // @name CreateItemRequest

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc          *appsvcs.Services
	hideInternal bool
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, hideInternal bool) *PostItemHandler {
	return &PostItemHandler{svc: svc, hideInternal: hideInternal}
}

// Execute adds an item with its initial price dated today.
//
//	@Summary		Add item
//	@Description	Adds a grocery item at a store with its initial price
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item to add"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Store.Add(r.Context(), req.Name, req.Store, req.Price)
	if err != nil {
		errhttp.WriteError(w, err, h.hideInternal)
		return
	}

	httpx.JSON(w, http.StatusCreated, newItemResponse(item, h.svc.Store.Currency()))
}
