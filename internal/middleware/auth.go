package middleware

import (
	"net/http"
	"strings"

	"gestorcn/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every access token. The admin
// flag travels in the signed token, never in a client-supplied cookie, so
// privileged endpoints re-derive it from verified data on every request.
type JWTClaims struct {
	UserID        int    `json:"user_id"`
	NombreUsuario string `json:"nombre_usuario"`
	RolAdmin      bool   `json:"rol_admin"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin rejects requests whose verified token lacks the admin flag.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ClaimsKey)
		claims, ok := v.(*JWTClaims)
		if !exists || !ok || !claims.RolAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
// Returns nil when the request did not pass through JWTAuth.
func GetClaims(c *gin.Context) *JWTClaims {
	v, _ := c.Get(ClaimsKey)
	claims, _ := v.(*JWTClaims)
	return claims
}
