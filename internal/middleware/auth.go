package middleware

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"docreview/internal/domain"
)

// ContextKeyUserUUID is the gin context key holding the caller's identity.
const ContextKeyUserUUID = "user_uuid"

// Identity extracts the caller's identity from an already-verified bearer
// token. The signature is NOT checked: the gateway in front of this service
// has done that. The "uuid" claim is preferred, then "sub". A missing header
// or claim aborts with 400.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userUUID, err := IdentityFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "IDENTITY_MISSING", "message": "Unable to identify user"},
			})
			return
		}
		c.Set(ContextKeyUserUUID, userUUID)
		c.Next()
	}
}

// IdentityFromHeader returns the uuid (or sub) claim of a bearer token
// without verifying its signature. Numeric claims are used as written.
func IdentityFromHeader(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", domain.ErrIdentityMissing
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if raw == "" {
		return "", domain.ErrIdentityMissing
	}

	claims, err := decodeClaims(raw)
	if err != nil {
		return "", domain.ErrIdentityMissing
	}
	for _, key := range []string{"uuid", "sub"} {
		if v := claimString(claims[key]); v != "" {
			return v, nil
		}
	}
	return "", domain.ErrIdentityMissing
}

// decodeClaims reads the payload segment of a compact JWT. The header's alg
// is never consulted, so tokens signed with any algorithm, or none, decode.
func decodeClaims(raw string) (map[string]interface{}, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, jwt.ErrTokenMalformed
	}
	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var claims map[string]interface{}
	if err := dec.Decode(&claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func claimString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		if f, err := val.Float64(); err == nil && f == 0 {
			return ""
		}
		return val.String()
	default:
		return ""
	}
}

// GetUserUUID extracts the caller identity set by Identity.
func GetUserUUID(c *gin.Context) (string, error) {
	val, exists := c.Get(ContextKeyUserUUID)
	if !exists {
		return "", domain.ErrIdentityMissing
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return "", domain.ErrIdentityMissing
	}
	return s, nil
}

// APIKey guards a collaborator service with a shared key accepted either as
// "Authorization: Bearer <key>" or in the "apikey" header. An empty key
// disables the check.
func APIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		presented := c.GetHeader("apikey")
		if presented == "" {
			presented = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid api key"},
			})
			return
		}
		c.Next()
	}
}
