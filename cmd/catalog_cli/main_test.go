package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/service"
)

type stubAuth struct{ signedOut bool }

func (s *stubAuth) SignInWithPassword(_ context.Context, _, password string) (domain.AuthSession, error) {
	if password != "secret" {
		return domain.AuthSession{}, errors.New("Invalid login credentials")
	}
	return domain.AuthSession{AccessToken: "tok"}, nil
}

func (s *stubAuth) SignOut(context.Context, string) error {
	s.signedOut = true
	return errors.New("provider unreachable")
}

type stubProducts struct{ created []domain.Product }

func (s *stubProducts) List(context.Context) ([]domain.Product, error) {
	return append([]domain.Product{{ID: 10, Title: "Dune", Price: decimal.RequireFromString("9.99"), CategoryID: 1}}, s.created...), nil
}

func (s *stubProducts) GetByID(context.Context, int64) (domain.Product, error) {
	return domain.Product{}, repository.ErrNotFound
}

func (s *stubProducts) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	p.ID = 11
	s.created = append(s.created, p)
	return p, nil
}

func (s *stubProducts) Update(context.Context, domain.Product) error { return nil }

func (s *stubProducts) Delete(context.Context, int64) error { return nil }

type stubCategories struct{}

func (stubCategories) List(context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: 1, Name: "Books"}}, nil
}

func (stubCategories) GetByID(context.Context, int64) (domain.Category, error) {
	return domain.Category{ID: 1, Name: "Books"}, nil
}

func (stubCategories) Create(_ context.Context, c domain.Category) (domain.Category, error) {
	c.ID = 2
	return c, nil
}

func (stubCategories) Update(context.Context, domain.Category) error { return nil }

func (stubCategories) Delete(context.Context, int64) error { return nil }

func runCLI(t *testing.T, input string) (string, *stubAuth, *stubProducts) {
	t.Helper()
	auth := &stubAuth{}
	products := &stubProducts{}
	logger := zap.NewNop()
	var out bytes.Buffer
	cli := &catalogCLI{
		in:      bufio.NewReader(strings.NewReader(input)),
		out:     &out,
		auth:    service.NewAuthService(logger, auth),
		catalog: service.NewCatalogService(logger, products, stubCategories{}, nil),
		logger:  logger,
	}
	if err := cli.run(context.Background()); err != nil {
		t.Fatalf("run: %v\noutput:\n%s", err, out.String())
	}
	return out.String(), auth, products
}

func TestCatalogCLI_LoginListAndLogout(t *testing.T) {
	out, auth, _ := runCLI(t, "admin@example.com\nwrong\nadmin@example.com\nsecret\n1\n5\n")

	if !strings.Contains(out, "Login failed: Invalid login credentials") {
		t.Fatalf("expected failed login notice, got:\n%s", out)
	}
	if !strings.Contains(out, "Login successful!") {
		t.Fatalf("expected login success, got:\n%s", out)
	}
	if !strings.Contains(out, "Dune") || !strings.Contains(out, "9.99") || !strings.Contains(out, "Books") {
		t.Fatalf("expected joined product row, got:\n%s", out)
	}
	if !auth.signedOut || !strings.Contains(out, "Logged out.") {
		t.Fatalf("expected logout, got:\n%s", out)
	}
}

func TestCatalogCLI_AddProductValidatesFirst(t *testing.T) {
	out, _, products := runCLI(t, "admin@example.com\nsecret\n4\n\nDune\n9.99\n4\n1\nEmma\n12\n5\n")

	if !strings.Contains(out, "Please select a category.") {
		t.Fatalf("expected category notice, got:\n%s", out)
	}
	if len(products.created) != 1 || products.created[0].Title != "Emma" {
		t.Fatalf("expected only the valid product to be created, got %+v", products.created)
	}
	if !strings.Contains(out, "Product added successfully!") {
		t.Fatalf("expected success notice, got:\n%s", out)
	}
}
