package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faq-chatbot/internal/domain/auth"
)

// Register creates an account.
func (h *Handler) Register(c *gin.Context) {
	var req auth.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	view, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "auth_failed"))
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Login exchanges credentials for an access token.
func (h *Handler) Login(c *gin.Context) {
	var req auth.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "auth_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout always succeeds; tokens are not revoked.
func (h *Handler) Logout(c *gin.Context) {
	var userID int64
	if claims, ok := getClaims(c); ok {
		userID = claims.UserID
	}
	if err := h.authSvc.Logout(c.Request.Context(), userID); err != nil {
		h.logger.Warn("logout failed", "error", err)
	}
	c.Status(http.StatusNoContent)
}

// Me returns the profile of the token holder.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return
	}
	view, err := h.authSvc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		abortWithError(c, domainError(err, "auth_failed"))
		return
	}
	c.JSON(http.StatusOK, view)
}
