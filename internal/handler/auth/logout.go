package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Logout revokes the refresh token
// @Summary      Logout
// @Description  Revoke the refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if refreshToken != "" {
		ctx := c.Request.Context()
		// revocation failure does not change the response
		_ = h.authService.Logout(ctx, refreshToken)
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "logged out",
	})
}
