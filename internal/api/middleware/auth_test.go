package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/service"
)

const (
	aliceID = "64b7f0c2a1b2c3d4e5f60718"
	bobID   = "64b7f0c2a1b2c3d4e5f60719"
)

func newTestGate(t *testing.T) (*Gate, *service.TokenService) {
	t.Helper()
	tokens, err := service.NewTokenService("secret", 0)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return NewGate(tokens), tokens
}

func issue(t *testing.T, tokens *service.TokenService, id domain.Identity) string {
	t.Helper()
	signed, err := tokens.Issue(id)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

func newContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(TokenHeader, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGate_RequireToken_Valid(t *testing.T) {
	gate, tokens := newTestGate(t)
	want := domain.Identity{SubjectID: aliceID, IsAdmin: true}
	c, _ := newContext("Bearer " + issue(t, tokens, want))

	got, err := gate.RequireToken(c)
	if err != nil {
		t.Fatalf("RequireToken returned error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if stored, ok := IdentityFrom(c.Request().Context()); !ok || stored != want {
		t.Fatalf("identity not stored on request context: %+v", stored)
	}
}

func TestGate_RequireToken_Idempotent(t *testing.T) {
	gate, tokens := newTestGate(t)
	c, _ := newContext("Bearer " + issue(t, tokens, domain.Identity{SubjectID: aliceID}))

	first, err := gate.RequireToken(c)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := gate.RequireToken(c)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first != second {
		t.Fatalf("identities differ: %+v vs %+v", first, second)
	}
}

func TestGate_RequireToken_Rejects(t *testing.T) {
	gate, tokens := newTestGate(t)
	valid := issue(t, tokens, domain.Identity{SubjectID: aliceID})

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", domain.ErrNoToken},
		{"blank header", "   ", domain.ErrNoToken},
		{"single segment", valid, domain.ErrInvalidToken},
		{"garbage token", "Bearer not-a-token", domain.ErrInvalidToken},
		{"tampered token", "Bearer " + valid + "x", domain.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(tt.header)
			if _, err := gate.RequireToken(c); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if _, ok := IdentityFrom(c.Request().Context()); ok {
				t.Fatalf("identity must not be stored on failure")
			}
		})
	}
}

func TestGate_RequireToken_AnySchemeAccepted(t *testing.T) {
	gate, tokens := newTestGate(t)
	c, _ := newContext("Token " + issue(t, tokens, domain.Identity{SubjectID: aliceID}))

	if _, err := gate.RequireToken(c); err != nil {
		t.Fatalf("expected scheme to be ignored, got %v", err)
	}
}

func TestGate_TokenMiddleware(t *testing.T) {
	gate, tokens := newTestGate(t)
	c, rec := newContext("Bearer " + issue(t, tokens, domain.Identity{SubjectID: aliceID}))

	called := false
	handler := gate.Token()(func(c echo.Context) error {
		called = true
		id, ok := IdentityFrom(c.Request().Context())
		if !ok || id.SubjectID != aliceID {
			t.Fatalf("identity not visible downstream: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGate_TokenMiddleware_MissingHeader(t *testing.T) {
	gate, _ := newTestGate(t)
	c, _ := newContext("")

	handler := gate.Token()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}
