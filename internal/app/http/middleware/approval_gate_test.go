package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"community-portal/internal/domain/errs"
	"community-portal/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeProfileGetter struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*profiles.Profile
}

func (f *fakeProfileGetter) Get(ctx context.Context, userID uuid.UUID) (*profiles.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[userID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func gateRouter(store ProfileGetter, userID uuid.UUID, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if authed {
			c.Set("user_id", userID)
		}
	})
	r.GET("/protected", RequireApproved(store), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireApproved(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		profile  *profiles.Profile
		authed   bool
		wantCode int
	}{
		{
			name:     "no session",
			authed:   false,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "unapproved profile",
			profile:  &profiles.Profile{UserID: userID, IsApproved: false},
			authed:   true,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "missing profile blocks",
			profile:  nil,
			authed:   true,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "approved profile passes",
			profile:  &profiles.Profile{UserID: userID, IsApproved: true},
			authed:   true,
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeProfileGetter{rows: map[uuid.UUID]*profiles.Profile{}}
			if tt.profile != nil {
				store.rows[userID] = tt.profile
			}
			r := gateRouter(store, userID, tt.authed)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
		})
	}
}

// The gate must re-read the profile per request: a revocation between two
// requests takes effect immediately, with no cached Admitted decision.
func TestRequireApprovedDoesNotCacheDecision(t *testing.T) {
	userID := uuid.New()
	store := &fakeProfileGetter{rows: map[uuid.UUID]*profiles.Profile{
		userID: {UserID: userID, IsApproved: true},
	}}
	r := gateRouter(store, userID, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}

	store.mu.Lock()
	store.rows[userID].IsApproved = false
	store.mu.Unlock()

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("post-revocation status = %d, want 403", w.Code)
	}
}
