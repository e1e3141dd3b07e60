package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/arenalab/rooms-admin/internal/middleware"
)

// LoginRequest is the login request body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued panel token.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Login issues a panel access token when the "jwt" auth strategy is enabled.
// Credentials are checked against the configured admin user.
func Login(jwtSecret, adminUser, adminPassword string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Invalid request body"})
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(adminUser)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(adminPassword)) == 1
		if adminPassword == "" || !userOK || !passOK {
			c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Invalid credentials"})
			return
		}

		claims := middleware.PanelClaims{
			UserID: req.Username,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				NotBefore: jwt.NewNumericDate(time.Now()),
			},
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, LoginResponse{Token: tokenString, UserID: req.Username})
	}
}
