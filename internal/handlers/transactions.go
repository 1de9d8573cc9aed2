package handlers

import (
	"net/http"

	"campus-events/internal/middleware"
	"campus-events/internal/models"
	"campus-events/internal/repositories"
	"campus-events/internal/services"

	"github.com/gin-gonic/gin"
)

const defaultListLimit = 50

// TransactionHandler exposes transaction history
type TransactionHandler struct {
	cartService services.CartServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(cartService services.CartServiceInterface) *TransactionHandler {
	return &TransactionHandler{cartService: cartService}
}

// StatusUpdateRequest is the body of an administrative status change
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// RegisterRoutes mounts the history endpoints on an authenticated group
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	transactions.GET("/my-transactions", h.ListMine)
	transactions.GET("/admin/all", middleware.RequireRole(models.RoleAdmin), h.ListAll)
	transactions.GET("/:id", h.Get)
	transactions.PUT("/:id/status", middleware.RequireRole(models.RoleAdmin), h.UpdateStatus)
}

// ListMine returns the caller's committed transactions
//
//	@Summary	List my transactions
//	@Tags		transactions
//	@Produce	json
//	@Security	AccessToken
//	@Success	200	{array}		models.Transaction
//	@Failure	401	{object}	middleware.ErrorResponse
//	@Router		/transactions/my-transactions [get]
func (h *TransactionHandler) ListMine(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	transactions, err := h.cartService.ListMine(c.Request.Context(), id.UserID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(transactions))
}

// ListAll returns every transaction, optionally filtered by status
//
//	@Summary	List all transactions
//	@Tags		transactions
//	@Produce	json
//	@Security	AccessToken
//	@Param		status	query		string	false	"status filter"
//	@Param		limit	query		int		false	"page size"	default(50)
//	@Param		offset	query		int		false	"page offset"
//	@Success	200		{array}		models.Transaction
//	@Failure	403		{object}	middleware.ErrorResponse
//	@Router		/transactions/admin/all [get]
func (h *TransactionHandler) ListAll(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	filter := repositories.TransactionFilter{}
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseTransactionStatus(raw)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}
		filter.Status = status
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit", defaultListLimit); err != nil {
		middleware.RespondError(c, err)
		return
	}
	if filter.Offset, err = queryInt(c, "offset", 0); err != nil {
		middleware.RespondError(c, err)
		return
	}

	transactions, err := h.cartService.ListAll(c.Request.Context(), id, filter)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(transactions))
}

// Get returns one transaction to its owner or an admin
//
//	@Summary	Get a transaction
//	@Tags		transactions
//	@Produce	json
//	@Security	AccessToken
//	@Param		id	path		string	true	"transaction id"
//	@Success	200	{object}	models.Transaction
//	@Failure	403	{object}	middleware.ErrorResponse
//	@Failure	404	{object}	middleware.ErrorResponse
//	@Router		/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	tx, err := h.cartService.GetTransaction(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// UpdateStatus moves a committed transaction between completed and refunded
//
//	@Summary	Change a transaction status
//	@Tags		transactions
//	@Accept		json
//	@Produce	json
//	@Security	AccessToken
//	@Param		id		path		string				true	"transaction id"
//	@Param		body	body		StatusUpdateRequest	true	"new status"
//	@Success	200		{object}	models.Transaction
//	@Failure	400		{object}	middleware.ErrorResponse
//	@Failure	409		{object}	middleware.ErrorResponse
//	@Router		/transactions/{id}/status [put]
func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req StatusUpdateRequest
	if !bindJSON(c, &req, false) {
		return
	}
	status, err := models.ParseTransactionStatus(req.Status)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	tx, err := h.cartService.UpdateStatus(c.Request.Context(), id, c.Param("id"), status)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// nonNil keeps empty lists encoded as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
