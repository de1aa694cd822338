package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sumire/projecthub/internal/service"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, tokenType string, subject string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"token_type": tokenType,
		"sub":        subject,
		"iat":        jwt.NewNumericDate(time.Now()),
		"exp":        jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuth(t *testing.T) {
	auth := service.NewAuthService(nil, service.AuthConfig{JWTSecret: testSecret})
	userID := primitive.NewObjectID()

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler

	next := func(c echo.Context) error {
		got, ok := GetUserID(c)
		require.True(t, ok)
		assert.Equal(t, userID, got)
		return c.NoContent(http.StatusOK)
	}

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + signTestToken(t, "access", userID.Hex(), time.Minute), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"expired token", "Bearer " + signTestToken(t, "access", userID.Hex(), -time.Minute), http.StatusUnauthorized},
		{"refresh token rejected", "Bearer " + signTestToken(t, "refresh", userID.Hex(), time.Minute), http.StatusUnauthorized},
		{"malformed subject", "Bearer " + signTestToken(t, "access", "not-an-id", time.Minute), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := JWTAuth(auth)(next)(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
