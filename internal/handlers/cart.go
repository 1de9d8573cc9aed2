package handlers

import (
	"net/http"

	"campus-events/internal/middleware"
	"campus-events/internal/services"

	"github.com/gin-gonic/gin"
)

// CartHandler handles the caller's draft transaction and checkout
type CartHandler struct {
	cartService services.CartServiceInterface
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService services.CartServiceInterface) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddItemRequest is the body of add-item and update-quantity
type AddItemRequest struct {
	OfferingID string `json:"offering_id"`
	Quantity   int    `json:"quantity"`
}

// ApplyPromoRequest is the body of apply-promo
type ApplyPromoRequest struct {
	PromotionCode string `json:"promotion_code"`
}

// CheckoutRequest is the optional body of checkout
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// RegisterRoutes mounts the cart endpoints on an authenticated group
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.GET("", h.GetCart)
	cart.POST("/add-item", h.AddItem)
	cart.PUT("/update-quantity", h.UpdateQuantity)
	cart.DELETE("/remove-item/:offeringId", h.RemoveItem)
	cart.POST("/apply-promo", h.ApplyPromo)
	cart.POST("/checkout", h.Checkout)
}

// GetCart returns the caller's draft, creating an empty one if needed
//
//	@Summary	Get the current cart
//	@Tags		cart
//	@Produce	json
//	@Security	AccessToken
//	@Success	200	{object}	models.Transaction
//	@Failure	401	{object}	middleware.ErrorResponse
//	@Router		/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	tx, err := h.cartService.GetOrCreateDraft(c.Request.Context(), id.UserID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// AddItem adds an offering to the cart or increases its quantity
//
//	@Summary	Add an offering to the cart
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Security	AccessToken
//	@Param		body	body		AddItemRequest	true	"offering and quantity"
//	@Success	200		{object}	models.Transaction
//	@Failure	400		{object}	middleware.ErrorResponse
//	@Failure	404		{object}	middleware.ErrorResponse
//	@Router		/cart/add-item [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if !bindJSON(c, &req, false) {
		return
	}

	tx, err := h.cartService.AddItem(c.Request.Context(), id.UserID, req.OfferingID, req.Quantity)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// UpdateQuantity sets the quantity of a line item
//
//	@Summary	Change the quantity of a cart line
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Security	AccessToken
//	@Param		body	body		AddItemRequest	true	"offering and new quantity"
//	@Success	200		{object}	models.Transaction
//	@Failure	400		{object}	middleware.ErrorResponse
//	@Router		/cart/update-quantity [put]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if !bindJSON(c, &req, false) {
		return
	}

	tx, err := h.cartService.UpdateQuantity(c.Request.Context(), id.UserID, req.OfferingID, req.Quantity)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// RemoveItem drops a line item from the cart
//
//	@Summary	Remove a cart line
//	@Tags		cart
//	@Produce	json
//	@Security	AccessToken
//	@Param		offeringId	path		string	true	"offering id"
//	@Success	200			{object}	models.Transaction
//	@Failure	400			{object}	middleware.ErrorResponse
//	@Router		/cart/remove-item/{offeringId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	tx, err := h.cartService.RemoveItem(c.Request.Context(), id.UserID, c.Param("offeringId"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// ApplyPromo attaches a promotion code to the cart
//
//	@Summary	Apply a promotion code
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Security	AccessToken
//	@Param		body	body		ApplyPromoRequest	true	"promotion code"
//	@Success	200		{object}	models.Transaction
//	@Failure	400		{object}	middleware.ErrorResponse
//	@Router		/cart/apply-promo [post]
func (h *CartHandler) ApplyPromo(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req ApplyPromoRequest
	if !bindJSON(c, &req, false) {
		return
	}

	tx, err := h.cartService.ApplyPromoCode(c.Request.Context(), id.UserID, req.PromotionCode)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// Checkout completes the cart. The caller's access token is forwarded to
// the collaborators that register participants.
//
//	@Summary	Check out the cart
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Security	AccessToken
//	@Param		body	body		CheckoutRequest	false	"payment method, defaults to card"
//	@Success	200		{object}	models.Transaction
//	@Failure	400		{object}	middleware.ErrorResponse
//	@Failure	409		{object}	middleware.ErrorResponse
//	@Router		/cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if !bindJSON(c, &req, true) {
		return
	}

	tx, err := h.cartService.Checkout(c.Request.Context(), id.UserID, req.PaymentMethod, middleware.AccessToken(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}
