package security

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LoginHandler struct {
	accounts []Account
}

func NewLoginHandler(accounts []Account) *LoginHandler {
	return &LoginHandler{accounts: accounts}
}

func (l *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/login", l.Login)
}

func (l *LoginHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	account, err := AuthenticateUser(req.Username, req.Password, l.accounts)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := GenerateJWT(account.Username, account.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"role":  account.Role,
	})
}
