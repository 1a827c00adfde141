package middleware

import (
	"net/http"
	"os"
	"strings"

	"time-tracker-api/config"
	"time-tracker-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims issued at login: the stable NetID identity plus
// the role used for route guards.
type Claims struct {
	NetID string `json:"net_id"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

const currentUserKey = "currentUser"

// AuthMiddleware validates the session token and resolves the caller to a
// live user row. Tokens are accepted from the Authorization header (Bearer)
// or, for browser clients, the jwt cookie set at login.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication token is required"})
			c.Abort()
			return
		}

		opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
		if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
			opts = append(opts, jwt.WithIssuer(issuer))
		}
		if audience := os.Getenv("JWT_AUDIENCE"); audience != "" {
			opts = append(opts, jwt.WithAudience(audience))
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		}, opts...)
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok || claims.NetID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		// The token may outlive the account; resolve the claim to a row.
		var user models.User
		if err := config.DB.Where("net_id = ?", claims.NetID).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
			c.Abort()
			return
		}

		c.Set(currentUserKey, &user)
		c.Set("netID", user.NetID)
		c.Set("role", user.Role)

		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set. It must
// run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}
	}

	cookie, err := c.Cookie("jwt")
	if err != nil {
		return ""
	}
	return cookie
}
