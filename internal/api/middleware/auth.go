package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMThomas/Timenest/pkg/jwt"
	"github.com/ChristianMThomas/Timenest/pkg/redis"
	"github.com/ChristianMThomas/Timenest/pkg/response"
)

// Context keys populated by JWTAuth.
const (
	ContextUserID    = "user_id"
	ContextRole      = "role"
	ContextCompanyID = "company_id"
	ContextClaims    = "claims"
)

// JWTAuth validates the Bearer access token and injects the caller's
// identity into the request context. When rdb is non-nil, revoked tokens
// are rejected; a Redis outage degrades to allowing the request.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "invalid token type")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextCompanyID, claims.CompanyID)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RoleAuth allows the request through only when the caller holds one of the
// given roles. Must run after JWTAuth.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient permissions")
		c.Abort()
	}
}
