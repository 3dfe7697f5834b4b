package middleware_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreview/internal/domain"
	"docreview/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	// Any key works: the middleware never verifies signatures.
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("gateway-secret"))
	require.NoError(t, err)
	return tok
}

func rawToken(header, payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(header)) + "." + enc.EncodeToString([]byte(payload)) + "."
}

func TestIdentityFromHeader(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"uuid claim", "Bearer " + signedToken(t, jwt.MapClaims{"uuid": "u-1", "sub": "s-1"}), "u-1", false},
		{"sub fallback", "Bearer " + signedToken(t, jwt.MapClaims{"sub": "s-1"}), "s-1", false},
		{"empty uuid falls back to sub", "Bearer " + signedToken(t, jwt.MapClaims{"uuid": "", "sub": "s-2"}), "s-2", false},
		{"no claims", "Bearer " + signedToken(t, jwt.MapClaims{"email": "a@b.c"}), "", true},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"garbage token", "Bearer not.a.jwt", "", true},
		{"two segments", "Bearer eyJhbGciOiJub25lIn0.eyJ1dWlkIjoidS0xIn0", "", true},
		{"unregistered alg", "Bearer " + rawToken(`{"alg":"XS999","typ":"JWT"}`, `{"uuid":"u-3"}`), "u-3", false},
		{"missing alg", "Bearer " + rawToken(`{"typ":"JWT"}`, `{"sub":"s-3"}`), "s-3", false},
		{"numeric uuid", "Bearer " + rawToken(`{"alg":"HS256"}`, `{"uuid":12345678901234567890,"sub":"s-4"}`), "12345678901234567890", false},
		{"zero uuid falls back to sub", "Bearer " + rawToken(`{"alg":"HS256"}`, `{"uuid":0,"sub":"s-5"}`), "s-5", false},
		{"payload not an object", "Bearer " + rawToken(`{"alg":"HS256"}`, `["u-1"]`), "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := middleware.IdentityFromHeader(tc.header)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrIdentityMissing)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIdentity_SetsUserUUID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Identity())
	r.GET("/test", func(c *gin.Context) {
		id, err := middleware.GetUserUUID(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"user_uuid": id})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.MapClaims{"uuid": "user-9"}))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_uuid":"user-9"}`, w.Body.String())
}

func TestIdentity_MissingClaimsAborts(t *testing.T) {
	called := false
	r := gin.New()
	r.Use(middleware.Identity())
	r.GET("/test", func(c *gin.Context) { called = true })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "IDENTITY_MISSING", resp["error"].(map[string]interface{})["code"])
}

func TestGetUserUUID_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := middleware.GetUserUUID(c)
	assert.ErrorIs(t, err, domain.ErrIdentityMissing)
}

func TestAPIKey(t *testing.T) {
	r := gin.New()
	r.Use(middleware.APIKey("s3cret"))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"bearer", "Authorization", "Bearer s3cret", http.StatusOK},
		{"apikey header", "apikey", "s3cret", http.StatusOK},
		{"wrong key", "apikey", "nope", http.StatusUnauthorized},
		{"no key", "", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestAPIKey_DisabledWhenEmpty(t *testing.T) {
	r := gin.New()
	r.Use(middleware.APIKey(""))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
