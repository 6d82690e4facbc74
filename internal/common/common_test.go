package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestCacheService_GetIntoDecodesStoredValue(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)
	c.Set("roles", []string{"mentor", "admin"}, time.Minute)

	var roles []string
	if !c.GetInto("roles", &roles) {
		t.Fatal("Expected cached value")
	}
	if !reflect.DeepEqual(roles, []string{"mentor", "admin"}) {
		t.Errorf("Unexpected roles: %v", roles)
	}

	c.Delete("roles")
	if c.GetInto("roles", &roles) {
		t.Error("Expected value to be deleted")
	}
}

func TestSessionService_Lifecycle(t *testing.T) {
	sessions := NewSessionService(NewCacheService(time.Minute, time.Minute), time.Hour)

	s := sessions.CreateSession("p1")
	got, err := sessions.GetSession(s.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.PrincipalID != "p1" {
		t.Errorf("Expected principal p1, got %s", got.PrincipalID)
	}

	sessions.DeleteSession(s.SessionID)
	if _, err := sessions.GetSession(s.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestTokenSigner_RoundTrip(t *testing.T) {
	signer := NewTokenSigner([]byte("secret"), time.Hour)

	token, exp, err := signer.Sign("p1", "s1")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Error("Expected expiry in the future")
	}

	claims, err := signer.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.PrincipalID != "p1" || claims.SessionID != "s1" {
		t.Errorf("Unexpected claims: %+v", claims)
	}

	other := NewTokenSigner([]byte("other"), time.Hour)
	if _, err := other.Parse(token); err == nil {
		t.Error("Expected signature check to fail with another secret")
	}
}

func TestTokenSigner_RejectsExpired(t *testing.T) {
	signer := NewTokenSigner([]byte("secret"), -time.Minute)

	token, _, err := signer.Sign("p1", "s1")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if _, err := signer.Parse(token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestNormalizeSet(t *testing.T) {
	got := NormalizeSet([]string{" go ", "sql", "go", "", "  "})
	if !reflect.DeepEqual(got, []string{"go", "sql"}) {
		t.Errorf("Unexpected set: %v", got)
	}
}

func TestRespondError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, time.Now(), errors.New("boom"), "fallback", http.StatusConflict)

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "error" || body["message"] != "boom" {
		t.Errorf("Unexpected envelope: %v", body)
	}
}
