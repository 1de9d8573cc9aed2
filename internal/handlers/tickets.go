package handlers

import (
	"net/http"

	"campus-events/internal/middleware"
	"campus-events/internal/models"
	"campus-events/internal/services"

	"github.com/gin-gonic/gin"
)

// TicketHandler handles e-ticket issuance and door validation
type TicketHandler struct {
	ticketService services.TicketServiceInterface
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService services.TicketServiceInterface) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// ValidateTicketRequest carries the entry code scanned at the door
type ValidateTicketRequest struct {
	Code string `json:"code"`
}

// RegisterRoutes mounts the ticket endpoints. Issuance is called by the
// transaction service and is guarded by serviceAuth instead of user authn.
func (h *TicketHandler) RegisterRoutes(rg *gin.RouterGroup, authn, serviceAuth gin.HandlerFunc) {
	tickets := rg.Group("/tickets")
	tickets.POST("/issue", serviceAuth, h.Issue)

	protected := tickets.Group("", authn)
	protected.GET("/mine", h.ListMine)
	protected.GET("/offering/:id", middleware.RequireRole(models.RoleAdmin), h.ListByOffering)
	protected.PUT("/validate", middleware.RequireRole(models.RoleAdmin, models.RoleClubLeader), h.Validate)
	protected.PUT("/:id/cancel", h.Cancel)
}

// Issue stores an e-ticket for one line item. Repeats return the existing
// ticket with 200.
//
//	@Summary	Issue a ticket
//	@Tags		tickets
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.TicketIssueRequest	true	"recipient and artifact"
//	@Success	201		{object}	models.Ticket
//	@Success	200		{object}	models.Ticket
//	@Failure	400		{object}	middleware.ErrorResponse
//	@Failure	401		{object}	middleware.ErrorResponse
//	@Security	ServiceKey
//	@Router		/tickets/issue [post]
func (h *TicketHandler) Issue(c *gin.Context) {
	var req models.TicketIssueRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ticket, created, err := h.ticketService.Issue(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, ticket)
}

// ListMine returns the caller's tickets
//
//	@Summary	List my tickets
//	@Tags		tickets
//	@Produce	json
//	@Security	AccessToken
//	@Success	200	{array}	models.Ticket
//	@Router		/tickets/mine [get]
func (h *TicketHandler) ListMine(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	tickets, err := h.ticketService.ListMine(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(tickets))
}

// ListByOffering returns every ticket issued for an offering
//
//	@Summary	List tickets of an offering
//	@Tags		tickets
//	@Produce	json
//	@Security	AccessToken
//	@Param		id	path		string	true	"offering id"
//	@Success	200	{array}		models.Ticket
//	@Failure	403	{object}	middleware.ErrorResponse
//	@Router		/tickets/offering/{id} [get]
func (h *TicketHandler) ListByOffering(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	tickets, err := h.ticketService.ListByOffering(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(tickets))
}

// Validate marks a ticket as used
//
//	@Summary	Validate a ticket at the door
//	@Tags		tickets
//	@Accept		json
//	@Produce	json
//	@Security	AccessToken
//	@Param		body	body		ValidateTicketRequest	true	"entry code"
//	@Success	200		{object}	models.Ticket
//	@Failure	400		{object}	middleware.ErrorResponse
//	@Failure	404		{object}	middleware.ErrorResponse
//	@Router		/tickets/validate [put]
func (h *TicketHandler) Validate(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req ValidateTicketRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ticket, err := h.ticketService.Validate(c.Request.Context(), id, req.Code)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Cancel voids an unused ticket
//
//	@Summary	Cancel a ticket
//	@Tags		tickets
//	@Produce	json
//	@Security	AccessToken
//	@Param		id	path		string	true	"ticket id"
//	@Success	200	{object}	models.Ticket
//	@Failure	403	{object}	middleware.ErrorResponse
//	@Router		/tickets/{id}/cancel [put]
func (h *TicketHandler) Cancel(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.Cancel(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}
