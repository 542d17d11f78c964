package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/session"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (session.Data, bool, error) {
	return session.Data{}, false, errors.New("redis down")
}

func (failingStore) Put(context.Context, string, session.Data, time.Duration) error {
	return errors.New("redis down")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("redis down")
}

func TestSessionMiddleware_StoreFailureFallsBackToAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager(failingStore{}, time.Hour)

	r := gin.New()
	r.Use(SessionMiddleware(zap.NewNop(), sessions, SessionConfig{Secure: true}))
	r.GET("/whoami", func(c *gin.Context) {
		s := GetSession(c)
		if s == nil {
			c.String(http.StatusInternalServerError, "missing session")
			return
		}
		c.String(http.StatusOK, "token=%t", s.HasToken())
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "abc"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "token=false" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].Secure || cookies[0].Value == "abc" {
		t.Fatalf("expected a fresh secure cookie, got %+v", cookies)
	}
}

func TestRequireToken_PassesWithToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour)
	s := sessions.New()
	if err := sessions.SetToken(context.Background(), s, "tok", "admin@example.com"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	r := gin.New()
	r.Use(SessionMiddleware(zap.NewNop(), sessions, SessionConfig{}))
	r.GET("/admin", RequireToken(), func(c *gin.Context) {
		c.String(http.StatusOK, "admin")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: s.ID()})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "admin" {
		t.Fatalf("expected guarded handler to run, got %d %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/show-products" {
		t.Fatalf("expected redirect without token, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
