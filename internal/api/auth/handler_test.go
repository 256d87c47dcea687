package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"community-portal/config"
	"community-portal/internal/domain/errs"
	"community-portal/internal/domain/identity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type mockAccountStore struct {
	createFn      func(ctx context.Context, acc *identity.Account) error
	byEmailFn     func(ctx context.Context, email string) (*identity.Account, error)
	byGoogleSubFn func(ctx context.Context, sub string) (*identity.Account, error)
}

func (m *mockAccountStore) Create(ctx context.Context, acc *identity.Account) error {
	if m.createFn != nil {
		return m.createFn(ctx, acc)
	}
	acc.ID = uuid.New()
	return nil
}

func (m *mockAccountStore) GetByEmail(ctx context.Context, email string) (*identity.Account, error) {
	if m.byEmailFn != nil {
		return m.byEmailFn(ctx, email)
	}
	return nil, errs.ErrNotFound
}

func (m *mockAccountStore) GetByGoogleSub(ctx context.Context, sub string) (*identity.Account, error) {
	if m.byGoogleSubFn != nil {
		return m.byGoogleSubFn(ctx, sub)
	}
	return nil, errs.ErrNotFound
}

func authRouter(store AccountStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = "test-secret"

	h := NewHandler(store)
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	return r
}

func post(r *gin.Engine, path string, body map[string]string) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]string
		store    *mockAccountStore
		wantCode int
	}{
		{
			name:     "weak password",
			body:     map[string]string{"email": "a@example.com", "password": "short1"},
			store:    &mockAccountStore{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "password without digits",
			body:     map[string]string{"email": "a@example.com", "password": "onlyletters"},
			store:    &mockAccountStore{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing email",
			body:     map[string]string{"password": "goodpass1"},
			store:    &mockAccountStore{},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			body: map[string]string{"email": "a@example.com", "password": "goodpass1"},
			store: &mockAccountStore{
				createFn: func(ctx context.Context, acc *identity.Account) error {
					return errs.ErrConflict
				},
			},
			wantCode: http.StatusConflict,
		},
		{
			name:     "success signs the caller in",
			body:     map[string]string{"email": "a@example.com", "password": "goodpass1"},
			store:    &mockAccountStore{},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authRouter(tt.store)
			w := post(r, "/register", tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantCode == http.StatusOK {
				var resp struct {
					Token string `json:"token"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
					t.Errorf("no token in response: %s", w.Body.String())
				}
			}
		})
	}
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("goodpass1"), bcrypt.DefaultCost)
	hashed := string(hash)
	acc := &identity.Account{ID: uuid.New(), Email: "a@example.com", PasswordHash: &hashed}

	store := &mockAccountStore{
		byEmailFn: func(ctx context.Context, email string) (*identity.Account, error) {
			if email == acc.Email {
				return acc, nil
			}
			return nil, errs.ErrNotFound
		},
	}
	r := authRouter(store)

	if w := post(r, "/login", map[string]string{"email": "a@example.com", "password": "goodpass1"}); w.Code != http.StatusOK {
		t.Errorf("valid login status = %d (body %s)", w.Code, w.Body.String())
	}
	if w := post(r, "/login", map[string]string{"email": "a@example.com", "password": "wrongpass1"}); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", w.Code)
	}
	if w := post(r, "/login", map[string]string{"email": "nobody@example.com", "password": "goodpass1"}); w.Code != http.StatusUnauthorized {
		t.Errorf("unknown email status = %d, want 401", w.Code)
	}

	// Google-only account has no password to compare.
	googleAcc := &identity.Account{ID: uuid.New(), Email: "g@example.com", AuthProvider: "google"}
	store.byEmailFn = func(ctx context.Context, email string) (*identity.Account, error) {
		return googleAcc, nil
	}
	if w := post(r, "/login", map[string]string{"email": "g@example.com", "password": "goodpass1"}); w.Code != http.StatusUnauthorized {
		t.Errorf("google-only login status = %d, want 401", w.Code)
	}
}
