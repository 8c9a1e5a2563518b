package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace-api/internal/domain"
)

func TestListCategories_RequiresAuth(t *testing.T) {
	router := testRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestListCategories_NonAdminForbidden(t *testing.T) {
	users := &stubUserService{user: &domain.User{ID: "u1"}}
	router := testRouter(t, Deps{UserSvc: users})

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestCreateCategory_Admin(t *testing.T) {
	categories := &stubCategoryService{category: &domain.Category{ID: "c1", Title: "Art", Slug: "art"}}
	users := &stubUserService{user: &domain.User{ID: "admin", Admin: true}}
	router := testRouter(t, Deps{CategorySvc: categories, UserSvc: users})

	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"title":"Art"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCategory_Conflict(t *testing.T) {
	categories := &stubCategoryService{err: domain.ErrAlreadyExists}
	users := &stubUserService{user: &domain.User{ID: "admin", Admin: true}}
	router := testRouter(t, Deps{CategorySvc: categories, UserSvc: users})

	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"title":"Art"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteCategory_Admin(t *testing.T) {
	users := &stubUserService{user: &domain.User{ID: "admin", Admin: true}}
	router := testRouter(t, Deps{UserSvc: users})

	req := httptest.NewRequest(http.MethodDelete, "/categories/c1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
