package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ChristianMThomas/Timenest/pkg/jwt"
	"github.com/ChristianMThomas/Timenest/pkg/response"
)

// MustGetUserID extracts user_id injected by the JWT middleware. On failure
// it writes a 401 and the caller should return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetCompanyID extracts the caller's company. An empty company means the
// user has not created or joined one yet, which is a 403 for company-scoped
// routes.
func MustGetCompanyID(c *gin.Context) (string, bool) {
	v, exists := c.Get("company_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Forbidden(c, 10003, "join or create a company first")
		return "", false
	}
	return s, true
}

// MustGetClaims extracts the parsed token claims.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	return claims, true
}
