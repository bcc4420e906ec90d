// Package shareauth answers the FastGPT share-link authentication hooks.
// The token check is a fixed literal used for testing share links, not an
// access control boundary.
package shareauth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/like-mike/fastgpt-gateway/shared/models"
)

type tokenRequest struct {
	Token string `json:"token"`
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type initData struct {
	UID string `json:"uid"`
}

// Register claims /shareAuth and everything under it, for every method.
func Register(r gin.IRouter, cfg models.ShareAuthConfig, logger *zap.Logger) {
	auth := Authenticate(cfg.Token, logger)
	h := handler(cfg.UID)
	r.Any("/shareAuth", auth, h)
	r.Any("/shareAuth/*action", auth, h)
}

// Authenticate rejects requests whose body token differs from token.
func Authenticate(token string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tokenRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Token != token {
			logger.Debug("share auth rejected", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, response{Message: "Authentication failed"})
			return
		}
		c.Next()
	}
}

func handler(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost {
			switch c.Param("action") {
			case "/start", "/finish":
				c.JSON(http.StatusOK, response{Success: true})
				return
			}
		}
		c.JSON(http.StatusOK, response{Success: true, Data: initData{UID: uid}})
	}
}
