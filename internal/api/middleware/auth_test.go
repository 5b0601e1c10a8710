package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/remind-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtService := &auth.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
			switch tokenString {
			case "valid-token":
				return &auth.Claims{UserID: userID, Email: "user@example.com"}, nil
			case "expired-token":
				return nil, auth.ErrExpiredToken
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}

	var gotID uuid.UUID
	var gotEmail string
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotID, _ = GetUserID(r)
		gotEmail, _ = GetUserEmail(r)
		w.WriteHeader(http.StatusOK)
	})

	middleware := NewAuthMiddleware(jwtService)
	handler := middleware.Authenticate(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{"valid token", "Bearer valid-token", http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"not a bearer scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, false},
		{"bare token", "valid-token", http.StatusUnauthorized, false},
		{"expired token", "Bearer expired-token", http.StatusUnauthorized, false},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called = false

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantNext, called)
		})
	}

	t.Run("propagates identity to the request context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, "user@example.com", gotEmail)
	})
}

func TestGetUserEmailMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	_, ok := GetUserEmail(req)
	assert.False(t, ok)

	_, ok = GetUserID(req)
	assert.False(t, ok)
}
