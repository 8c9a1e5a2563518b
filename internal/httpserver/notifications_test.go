package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace-api/internal/domain"
)

type stubNotificationRepo struct {
	notifications []domain.Notification
	listUser      string
	readUser      string
	readID        string
	err           error
}

func (s *stubNotificationRepo) ListByUser(_ context.Context, userID string, _ int) ([]domain.Notification, error) {
	s.listUser = userID
	return s.notifications, s.err
}

func (s *stubNotificationRepo) MarkRead(_ context.Context, userID, id string) error {
	s.readUser = userID
	s.readID = id
	return s.err
}

func TestListNotifications_RequiresAuth(t *testing.T) {
	router := testRouter(t, Deps{NotificationRepo: &stubNotificationRepo{}})

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestListNotifications_ScopedToUser(t *testing.T) {
	repo := &stubNotificationRepo{}
	users := &stubUserService{user: &domain.User{ID: "u1"}}
	router := testRouter(t, Deps{NotificationRepo: repo, UserSvc: users})

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.listUser != "u1" {
		t.Fatalf("expected listing scoped to u1, got %q", repo.listUser)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	repo := &stubNotificationRepo{}
	users := &stubUserService{user: &domain.User{ID: "u1"}}
	router := testRouter(t, Deps{NotificationRepo: repo, UserSvc: users})

	req := httptest.NewRequest(http.MethodPost, "/notifications/n1/read", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if repo.readUser != "u1" || repo.readID != "n1" {
		t.Fatalf("unexpected mark-read call: user=%q id=%q", repo.readUser, repo.readID)
	}
}

func TestMarkNotificationRead_NotFound(t *testing.T) {
	repo := &stubNotificationRepo{err: domain.ErrNotFound}
	users := &stubUserService{user: &domain.User{ID: "u1"}}
	router := testRouter(t, Deps{NotificationRepo: repo, UserSvc: users})

	req := httptest.NewRequest(http.MethodPost, "/notifications/n1/read", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
