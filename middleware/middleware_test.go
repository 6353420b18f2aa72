package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"tripdeck/globals"
)

func sign(t *testing.T, secret []byte, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Username: "desk-1",
		UserID:   "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + s
}

func echoUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	name, _ := r.Context().Value(globals.UsernameKey).(string)
	w.Write([]byte(name))
}

func TestAuthenticate(t *testing.T) {
	globals.JwtSecret = []byte("test-secret")
	h := Authenticate(echoUser)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, ""},
		{"bad format", "Token abc", http.StatusUnauthorized, ""},
		{"wrong secret", sign(t, []byte("other"), time.Now().Add(time.Hour)), http.StatusUnauthorized, ""},
		{"expired", sign(t, globals.JwtSecret, time.Now().Add(-time.Hour)), http.StatusUnauthorized, ""},
		{"valid", sign(t, globals.JwtSecret, time.Now().Add(time.Hour)), http.StatusOK, "desk-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/catalog/refresh", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req, nil)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	globals.JwtSecret = []byte("test-secret")
	h := OptionalAuth(echoUser)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h(rec, req, nil)
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Errorf("anonymous: status %d body %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", sign(t, globals.JwtSecret, time.Now().Add(time.Hour)))
	rec = httptest.NewRecorder()
	h(rec, req, nil)
	if rec.Body.String() != "desk-1" {
		t.Errorf("body = %q, want desk-1", rec.Body.String())
	}
}

func TestValidateJWT(t *testing.T) {
	globals.JwtSecret = []byte("test-secret")
	claims, err := ValidateJWT(sign(t, globals.JwtSecret, time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "u-1" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if _, err := ValidateJWT("short"); err == nil {
		t.Error("expected error for short header")
	}
}
