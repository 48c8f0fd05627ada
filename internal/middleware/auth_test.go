package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navneet-kaur7/todo-app/internal/crypto"
	"github.com/Navneet-kaur7/todo-app/internal/model"
	"github.com/Navneet-kaur7/todo-app/internal/repository"
)

type stubUsers map[string]*model.User

func (s stubUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	if id == "broken" {
		return nil, errors.New("connection refused")
	}
	user, ok := s[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func TestAuthenticate(t *testing.T) {
	tokens := crypto.NewJWTService("test-secret", "todo-app", time.Hour)
	alice := &model.User{ID: "user-1", Name: "Alice", Email: "alice@example.com"}
	users := stubUsers{alice.ID: alice}

	issue := func(userID string) string {
		token, err := tokens.Issue(userID)
		require.NoError(t, err)
		return token
	}
	expired := crypto.NewJWTService("test-secret", "todo-app", -time.Minute)
	expiredToken, err := expired.Issue(alice.ID)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			t.Error("expected user in context")
			return
		}
		w.Write([]byte(user.ID))
	})
	handler := Authenticate(tokens, users)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"valid token", "Bearer " + issue(alice.ID), http.StatusOK, ""},
		{"lowercase scheme", "bearer " + issue(alice.ID), http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "missing authorization header"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "invalid authorization format"},
		{"no token", "Bearer ", http.StatusUnauthorized, "invalid authorization format"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "invalid or expired token"},
		{"expired token", "Bearer " + expiredToken, http.StatusUnauthorized, "invalid or expired token"},
		{"deleted user", "Bearer " + issue("user-2"), http.StatusUnauthorized, "invalid or expired token"},
		{"store failure", "Bearer " + issue("broken"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError == "" {
				assert.Equal(t, alice.ID, rec.Body.String())
				return
			}

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	user := &model.User{ID: "user-1"}
	got, ok := UserFromContext(WithUser(context.Background(), user))
	assert.True(t, ok)
	assert.Same(t, user, got)
}
