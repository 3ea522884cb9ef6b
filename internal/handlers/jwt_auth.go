package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/NCHRD-2025/training-service/internal/models"
)

const principalKey = "principal"

// AuthClaims is the token payload issued at login.
type AuthClaims struct {
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuthMiddleware validates bearer tokens and loads the caller's
// principal into the request context.
type JWTAuthMiddleware struct {
	secret []byte
	expiry time.Duration
}

func NewJWTAuthMiddleware(secret string, expiry time.Duration) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{secret: []byte(secret), expiry: expiry}
}

// IssueToken signs a token for an authenticated user.
func (m *JWTAuthMiddleware) IssueToken(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(m.expiry)
	claims := AuthClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// AuthMiddleware rejects requests without a valid bearer token.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header missing")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims := &AuthClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		var userID uint
		if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil || userID == 0 {
			abortUnauthorized(c, "invalid token subject")
			return
		}
		if !claims.Role.Valid() {
			abortUnauthorized(c, "unknown role in token")
			return
		}

		principal := &models.Principal{
			ID:       userID,
			Username: claims.Username,
			Role:     claims.Role,
		}
		c.Set(principalKey, principal)
		c.Set("user_id", principal.ID)
		c.Set("user_role", principal.Role)

		c.Next()
	}
}

// RequireRoleMiddleware allows only the listed roles past. Admin always
// passes; fine-grained checks stay in the policy table behind the services.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			abortUnauthorized(c, "authentication required")
			return
		}

		if principal.Role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "insufficient role permissions",
		})
		c.Abort()
	}
}

// GetPrincipal extracts the authenticated caller from the gin context,
// or nil when the request is anonymous.
func GetPrincipal(c *gin.Context) *models.Principal {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, ok := v.(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   "unauthenticated",
		Message: message,
	})
	c.Abort()
}
