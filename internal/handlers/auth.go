package handlers

import (
	"net/http"

	"campus-events/internal/middleware"
	"campus-events/internal/models"
	"campus-events/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and account administration
type AuthHandler struct {
	identityService services.IdentityServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(identityService services.IdentityServiceInterface) *AuthHandler {
	return &AuthHandler{identityService: identityService}
}

// RefreshResponse carries a renewed access token
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// PointsRequest is the body of a points credit
type PointsRequest struct {
	Points int `json:"points"`
}

// PointsResponse reports the balance after a credit
type PointsResponse struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
}

// RegisterRoutes mounts the identity endpoints. authn guards the routes that
// need a caller; limiter throttles login attempts per client IP.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authn gin.HandlerFunc, limiter *middleware.LoginRateLimiter) {
	rg.POST("/register", h.Register)
	rg.POST("/login", middleware.LoginRateLimit(limiter), h.Login)
	rg.POST("/refresh", h.Refresh)
	rg.GET("/profile", authn, h.Profile)

	admin := rg.Group("/users", authn, middleware.RequireRole(models.RoleAdmin))
	admin.POST("/:id/points", h.AddPoints)
	admin.DELETE("/:id", h.DeleteUser)
}

// Register creates an account and returns its credential pair
//
//	@Summary	Register
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.UserCreateRequest	true	"account details"
//	@Success	201		{object}	services.AuthResponse
//	@Failure	400		{object}	middleware.ErrorResponse
//	@Router		/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserCreateRequest
	if !bindJSON(c, &req, false) {
		return
	}

	resp, err := h.identityService.Register(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login exchanges credentials for a credential pair
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		services.LoginRequest	true	"credentials"
//	@Success	200		{object}	services.AuthResponse
//	@Failure	401		{object}	middleware.ErrorResponse
//	@Failure	429		{object}	middleware.ErrorResponse
//	@Router		/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req, false) {
		return
	}

	resp, err := h.identityService.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Profile returns the caller's account
//
//	@Summary	Current user
//	@Tags		auth
//	@Produce	json
//	@Security	AccessToken
//	@Success	200	{object}	models.User
//	@Failure	401	{object}	middleware.ErrorResponse
//	@Router		/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	user, err := h.identityService.Profile(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Refresh issues a new access token from the x-refresh-token header
//
//	@Summary	Refresh the access token
//	@Tags		auth
//	@Produce	json
//	@Param		x-refresh-token	header		string	true	"refresh token"
//	@Success	200				{object}	RefreshResponse
//	@Failure	401				{object}	middleware.ErrorResponse
//	@Router		/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := h.identityService.Refresh(c.Request.Context(), c.GetHeader(middleware.HeaderRefreshToken))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RefreshResponse{AccessToken: token})
}

// AddPoints credits points to a user
//
//	@Summary	Credit points
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	AccessToken
//	@Param		id		path		string			true	"user id"
//	@Param		body	body		PointsRequest	true	"points to add"
//	@Success	200		{object}	PointsResponse
//	@Failure	403		{object}	middleware.ErrorResponse
//	@Router		/users/{id}/points [post]
func (h *AuthHandler) AddPoints(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var req PointsRequest
	if !bindJSON(c, &req, false) {
		return
	}

	userID := c.Param("id")
	balance, err := h.identityService.AddPoints(c.Request.Context(), id, userID, req.Points)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PointsResponse{UserID: userID, Points: balance})
}

// DeleteUser removes an account
//
//	@Summary	Delete a user
//	@Tags		users
//	@Security	AccessToken
//	@Param		id	path	string	true	"user id"
//	@Success	204
//	@Failure	403	{object}	middleware.ErrorResponse
//	@Failure	404	{object}	middleware.ErrorResponse
//	@Router		/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	if err := h.identityService.DeleteUser(c.Request.Context(), id, c.Param("id")); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
