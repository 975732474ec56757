package jwtmw

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockUserResolver is a mock implementation of the UserResolver interface.
type mockUserResolver struct {
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
}

func (m *mockUserResolver) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func protectedRouter(issuer *Issuer, users UserResolver) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthRequired(issuer, users), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	r.GET("/admin", AuthRequired(issuer, users), AdminRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(t *testing.T, r *gin.Engine, path, authHeader string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestAuthRequired_TokenTaxonomy(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	r := protectedRouter(issuer, &mockUserResolver{})

	expired, err := NewIssuer(testSecret, -time.Minute).Issue(testUser())
	require.NoError(t, err)
	foreignKey, err := NewIssuer("other-secret", time.Hour).Issue(testUser())
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantCode   string
	}{
		{"missing header", "", "NO_TOKEN"},
		{"basic auth scheme", "Basic dXNlcjpwYXNz", "INVALID_TOKEN_FORMAT"},
		{"lowercase bearer", "bearer abc", "INVALID_TOKEN_FORMAT"},
		{"garbage token", "Bearer not-a-jwt", "INVALID_TOKEN"},
		{"expired token", "Bearer " + expired, "TOKEN_EXPIRED"},
		{"wrong signing key", "Bearer " + foreignKey, "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := doGet(t, r, "/protected", tt.authHeader)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.wantCode, body["error"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestAuthRequired_ResolvesCurrentUser(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	users := &mockUserResolver{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			if id == 42 {
				return testUser(), nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	r := protectedRouter(issuer, users)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	w, body := doGet(t, r, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", body["username"])
}

func TestAuthRequired_DeletedUser(t *testing.T) {
	// A valid token for an account that no longer exists must be rejected
	// even though the signature still verifies.
	issuer := NewIssuer(testSecret, time.Hour)
	r := protectedRouter(issuer, &mockUserResolver{})

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	w, body := doGet(t, r, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", body["error"])
}

func TestAdminRequired(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	t.Run("non-admin is denied", func(t *testing.T) {
		users := &mockUserResolver{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return testUser(), nil
			},
		}
		r := protectedRouter(issuer, users)

		token, err := issuer.Issue(testUser())
		require.NoError(t, err)

		w, body := doGet(t, r, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "ACCESS_DENIED", body["error"])
	})

	t.Run("admin passes", func(t *testing.T) {
		admin := testUser()
		admin.Role = entity.RoleAdmin
		users := &mockUserResolver{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return admin, nil
			},
		}
		r := protectedRouter(issuer, users)

		token, err := issuer.Issue(admin)
		require.NoError(t, err)

		w, _ := doGet(t, r, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stale admin claim does not grant access", func(t *testing.T) {
		// Token minted while the user was admin; record since demoted.
		admin := testUser()
		admin.Role = entity.RoleAdmin
		token, err := issuer.Issue(admin)
		require.NoError(t, err)

		demoted := testUser() // role user
		users := &mockUserResolver{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return demoted, nil
			},
		}
		r := protectedRouter(issuer, users)

		w, body := doGet(t, r, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "ACCESS_DENIED", body["error"])
	})
}
