package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"messenger/internal/auth"
	"messenger/internal/domain"
	"messenger/internal/store"
)

type Handlers struct {
	Auth     *auth.Service
	Messages *store.Messages
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges a username/password form for a bearer token.
func (h *Handlers) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := h.Auth.Login(username, password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handlers) ValidateToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "valid"})
}

// History returns the chat's messages in ascending timestamp order.
func (h *Handlers) History(c *gin.Context) {
	chatID := domain.ChatID(c.Param("chat_id"))
	records, err := h.Messages.ListByChat(chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// authRequired guards an endpoint with a bearer token and stashes the
// resolved user in the request context.
func authRequired(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}
		user, err := svc.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}
		c.Set("user", user)
		c.Next()
	}
}
