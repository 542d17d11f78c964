package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/remote"
)

type fakeRest struct {
	response string
	prefer   []string
	methods  []string
}

func newFakeRest(t *testing.T, response string) (*remote.Client, *fakeRest) {
	t.Helper()
	f := &fakeRest{response: response}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.prefer = append(f.prefer, r.Header.Get("Prefer"))
		f.methods = append(f.methods, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(f.response))
	}))
	t.Cleanup(srv.Close)
	return remote.NewClient(srv.URL, "anon-key", time.Second, zap.NewNop()), f
}

func TestRemoteProductRepository_UpdateDeleteMissingRow(t *testing.T) {
	client, fake := newFakeRest(t, "[]")
	repo := NewRemoteProductRepository(client)
	ctx := context.Background()

	product := domain.Product{ID: 99, Title: "Dune", Price: decimal.RequireFromString("9.99"), CategoryID: 1}
	if err := repo.Update(ctx, product); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := repo.Delete(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	for i, p := range fake.prefer {
		if p != "return=representation" {
			t.Fatalf("request %d (%s): expected representation, got %q", i, fake.methods[i], p)
		}
	}
}

func TestRemoteProductRepository_UpdateDeleteExistingRow(t *testing.T) {
	client, _ := newFakeRest(t, `[{"id":10,"Title":"Dune","Price":9.99,"product_category_id":1}]`)
	repo := NewRemoteProductRepository(client)
	ctx := context.Background()

	product := domain.Product{ID: 10, Title: "Dune", Price: decimal.RequireFromString("9.99"), CategoryID: 1}
	if err := repo.Update(ctx, product); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.Delete(ctx, 10); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestRemoteCategoryRepository_UpdateDeleteMissingRow(t *testing.T) {
	client, _ := newFakeRest(t, "[]")
	repo := NewRemoteCategoryRepository(client)
	ctx := context.Background()

	if err := repo.Update(ctx, domain.Category{ID: 7, Name: "Music"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := repo.Delete(ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}

	client, _ = newFakeRest(t, `[{"id":7,"category_name":"Music"}]`)
	repo = NewRemoteCategoryRepository(client)
	if err := repo.Update(ctx, domain.Category{ID: 7, Name: "Music"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.Delete(ctx, 7); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
