package api

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"taskmind/task-api/internal/model"
	"taskmind/task-api/pkg/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestSignupDuplicateEmail(t *testing.T) {
	a, _ := newTestAPI(t)

	signup(t, a, "a@x.com", "alice", "password123")

	w := doJSON(t, a, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":      "a@x.com",
		"username":   "bob",
		"first_name": "Bob",
		"last_name":  "Builder",
		"password":   "password123",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "email") {
		t.Fatalf("expected email conflict message, got %s", w.Body.String())
	}

	var count int64
	a.DB.Model(model.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected no new record after conflict, have %d users", count)
	}
}

// A second signup racing past the existence checks hits the unique index
// instead. The handler maps that to 409, which only works when the session
// translates driver errors to gorm.ErrDuplicatedKey.
func TestSignupDuplicateInsertTranslatesError(t *testing.T) {
	a, _ := newTestAPI(t)

	signup(t, a, "a@x.com", "alice", "password123")

	err := a.DB.Create(&model.User{
		Email:        "a@x.com",
		Username:     "alice2",
		FirstName:    "Alice",
		LastName:     "Again",
		PasswordHash: "x",
	}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey from duplicate insert, got %v", err)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	a, _ := newTestAPI(t)

	signup(t, a, "a@x.com", "alice", "password123")

	w := doJSON(t, a, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":      "b@x.com",
		"username":   "alice",
		"first_name": "Other",
		"last_name":  "Alice",
		"password":   "password123",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "username") {
		t.Fatalf("expected username conflict message, got %s", w.Body.String())
	}
}

func TestSignupRejectsBadInput(t *testing.T) {
	a, _ := newTestAPI(t)

	cases := []gin.H{
		{"email": "not-an-email", "username": "u", "first_name": "a", "last_name": "b", "password": "password123"},
		{"email": "a@x.com", "username": "", "first_name": "a", "last_name": "b", "password": "password123"},
		{"email": "a@x.com", "username": "u", "first_name": "a", "last_name": "b", "password": "short"},
		{"email": "a@x.com", "username": "u", "first_name": "", "last_name": "b", "password": "password123"},
	}
	for i, body := range cases {
		w := doJSON(t, a, http.MethodPost, "/api/auth/signup", "", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d", i, w.Code)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	a, _ := newTestAPI(t)
	signup(t, a, "a@x.com", "alice", "password123")

	w := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@x.com",
		"password": "password123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginUnverifiedAccount(t *testing.T) {
	a, _ := newTestAPI(t)

	hash, err := a.Argon.GenerateFromPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	err = a.DB.Create(&model.User{
		Email:        "a@x.com",
		Username:     "alice",
		FirstName:    "Alice",
		LastName:     "Smith",
		PasswordHash: hash,
		IsVerified:   false,
	}).Error
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	w := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "password123",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unverified account, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "token") {
		t.Fatal("unverified login must never return a token")
	}
}

func TestLoginSuccessReturnsBothTokens(t *testing.T) {
	a, _ := newTestAPI(t)
	signup(t, a, "a@x.com", "alice", "password123")

	w := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["access_token"] == "" || body["access_token"] == nil {
		t.Fatal("missing access_token")
	}
	if body["refresh_token"] == "" || body["refresh_token"] == nil {
		t.Fatal("missing refresh_token")
	}
	if _, ok := body["user"].(map[string]any); !ok {
		t.Fatal("missing user object")
	}
}

func TestMe(t *testing.T) {
	a, _ := newTestAPI(t)
	signup(t, a, "a@x.com", "alice", "password123")
	bearer := login(t, a, "a@x.com", "password123")

	w := doJSON(t, a, http.MethodGet, "/api/auth/me", bearer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["email"] != "a@x.com" {
		t.Fatalf("expected own user record, got %s", w.Body.String())
	}
	if _, leaked := body["password_hash"]; leaked {
		t.Fatal("password hash leaked in response")
	}
}

func TestMeUnauthorized(t *testing.T) {
	a, _ := newTestAPI(t)

	for name, bearer := range map[string]string{
		"missing": "",
		"garbage": "not.a.token",
	} {
		w := doJSON(t, a, http.MethodGet, "/api/auth/me", bearer, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s token: expected 401, got %d", name, w.Code)
		}
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	a, _ := newTestAPI(t)
	signup(t, a, "a@x.com", "alice", "password123")

	expired := token.New(token.Config{Secret: "test-secret", AccessTTL: -time.Minute})
	bearer, err := expired.Access("a@x.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	w := doJSON(t, a, http.MethodGet, "/api/auth/me", bearer, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestUnknownSubjectRejected(t *testing.T) {
	a, _ := newTestAPI(t)

	bearer, err := a.Tokens.Access("ghost@x.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	w := doJSON(t, a, http.MethodGet, "/api/auth/me", bearer, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown subject, got %d", w.Code)
	}
}

func TestRefreshToken(t *testing.T) {
	a, _ := newTestAPI(t)
	signup(t, a, "a@x.com", "alice", "password123")

	w := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "password123",
	})
	refresh := decodeBody(t, w)["refresh_token"].(string)

	w = doJSON(t, a, http.MethodPost, "/api/auth/refresh", "", gin.H{
		"refresh_token": refresh,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	bearer := decodeBody(t, w)["access_token"].(string)
	if got := doJSON(t, a, http.MethodGet, "/api/auth/me", bearer, nil); got.Code != http.StatusOK {
		t.Fatalf("refreshed access token rejected: %d", got.Code)
	}
}

func TestRefreshRejectsResetToken(t *testing.T) {
	a, _ := newTestAPI(t)
	signup(t, a, "a@x.com", "alice", "password123")

	reset, err := a.Tokens.Reset("a@x.com")
	if err != nil {
		t.Fatalf("failed to issue reset token: %v", err)
	}

	w := doJSON(t, a, http.MethodPost, "/api/auth/refresh", "", gin.H{
		"refresh_token": reset,
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for reset token, got %d", w.Code)
	}
}

func TestChangePassword(t *testing.T) {
	a, _ := newTestAPI(t)
	signup(t, a, "a@x.com", "alice", "password123")
	bearer := login(t, a, "a@x.com", "password123")

	w := doJSON(t, a, http.MethodPost, "/api/auth/change-password", bearer, gin.H{
		"old_password": "wrong-password",
		"new_password": "newpassword123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong old password, got %d", w.Code)
	}

	w = doJSON(t, a, http.MethodPost, "/api/auth/change-password", bearer, gin.H{
		"old_password": "password123",
		"new_password": "newpassword123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Old password is gone, new one works
	bad := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "password123",
	})
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("expected old password to be rejected, got %d", bad.Code)
	}
	login(t, a, "a@x.com", "newpassword123")
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doJSON(t, a, http.MethodPost, "/api/auth/forgot-password", "", gin.H{
		"email": "nobody@x.com",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestForgotResetFlow(t *testing.T) {
	a, _ := newTestAPI(t)
	signup(t, a, "a@x.com", "alice", "password123")

	w := doJSON(t, a, http.MethodPost, "/api/auth/forgot-password", "", gin.H{
		"email": "a@x.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resetToken, _ := decodeBody(t, w)["reset_token"].(string)
	if resetToken == "" {
		t.Fatal("expected reset_token in response")
	}

	w = doJSON(t, a, http.MethodPost, "/api/auth/reset-password", "", gin.H{
		"reset_token":  resetToken,
		"new_password": "newpassword123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	login(t, a, "a@x.com", "newpassword123")
}

func TestResetPasswordRejectsAccessToken(t *testing.T) {
	a, _ := newTestAPI(t)
	signup(t, a, "a@x.com", "alice", "password123")
	bearer := login(t, a, "a@x.com", "password123")

	// Well-formed and unexpired, but missing the reset tag
	w := doJSON(t, a, http.MethodPost, "/api/auth/reset-password", "", gin.H{
		"reset_token":  bearer,
		"new_password": "newpassword123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for untagged token, got %d", w.Code)
	}

	login(t, a, "a@x.com", "password123")
}

func TestLogout(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doJSON(t, a, http.MethodPost, "/api/auth/logout", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
