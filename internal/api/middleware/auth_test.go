package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/mocks"
	"github.com/taskhive/taskhive-api/internal/service/auth"
	"github.com/taskhive/taskhive-api/internal/store"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	newFixture := func(t *testing.T) (*mocks.MockJWTService, *mocks.MockUserStore, *domain.User) {
		t.Helper()

		user, err := domain.NewUser("ada@example.com", "ada", "", "password12345")
		require.NoError(t, err)
		user.HashedPassword = "hashed"

		userStore := mocks.NewMockUserStore()
		userStore.AddUser(user)

		jwtService := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: user.ID, Subject: user.ID.String()},
		}

		return jwtService, userStore, user
	}

	// next records whether the protected handler was reached and which user
	// ID it saw.
	makeNext := func(gotUserID *uuid.UUID, called *bool) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*called = true
			if id, ok := GetUserID(r); ok {
				*gotUserID = id
			}
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("valid token reaches handler with user ID", func(t *testing.T) {
		t.Parallel()
		jwtService, userStore, user := newFixture(t)

		var gotUserID uuid.UUID
		var called bool
		mw := NewAuthMiddleware(jwtService, userStore)

		req := httptest.NewRequest(http.MethodGet, "/api/task-lists", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		mw.Authenticate(makeNext(&gotUserID, &called)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
		assert.Equal(t, user.ID, gotUserID)
	})

	tests := []struct {
		name       string
		setup      func(jwt *mocks.MockJWTService, users *mocks.MockUserStore, user *domain.User)
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			setup:      func(*mocks.MockJWTService, *mocks.MockUserStore, *domain.User) {},
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authorization header required",
		},
		{
			name:       "wrong scheme",
			setup:      func(*mocks.MockJWTService, *mocks.MockUserStore, *domain.User) {},
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid authorization format",
		},
		{
			name:       "bearer with no token",
			setup:      func(*mocks.MockJWTService, *mocks.MockUserStore, *domain.User) {},
			authHeader: "Bearer",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid authorization format",
		},
		{
			name: "expired token",
			setup: func(jwt *mocks.MockJWTService, _ *mocks.MockUserStore, _ *domain.User) {
				jwt.Claims = nil
				jwt.ValidateErr = auth.ErrExpiredToken
			},
			authHeader: "Bearer expired-token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Token expired",
		},
		{
			name: "garbage token",
			setup: func(jwt *mocks.MockJWTService, _ *mocks.MockUserStore, _ *domain.User) {
				jwt.Claims = nil
				jwt.ValidateErr = auth.ErrInvalidToken
			},
			authHeader: "Bearer garbage",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid token",
		},
		{
			name: "token for vanished user",
			setup: func(_ *mocks.MockJWTService, users *mocks.MockUserStore, _ *domain.User) {
				users.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
					return nil, store.ErrUserNotFound
				}
			},
			authHeader: "Bearer orphan-token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "User not found",
		},
		{
			name: "token for deactivated user",
			setup: func(_ *mocks.MockJWTService, _ *mocks.MockUserStore, user *domain.User) {
				user.IsActive = false
			},
			authHeader: "Bearer stale-token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Account is inactive",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			jwtService, userStore, user := newFixture(t)
			tt.setup(jwtService, userStore, user)

			var gotUserID uuid.UUID
			var called bool
			mw := NewAuthMiddleware(jwtService, userStore)

			req := httptest.NewRequest(http.MethodGet, "/api/task-lists", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			mw.Authenticate(makeNext(&gotUserID, &called)).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.False(t, called)
		})
	}
}
