package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"marketplace-api/internal/domain"
	tokenrepo "marketplace-api/internal/repository/token"
)

type stubUserRepo struct {
	user      *domain.User
	createErr error
	getErr    error
	created   *domain.User
}

func (s *stubUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &u
	return &u, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.getErr
}

func (s *stubUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.getErr
}

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (m *memTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := m.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	m.tokens[t.Token] = t
	return nil
}

func (m *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := m.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tokens, token)
	return nil
}

func TestSignup_HashesPassword(t *testing.T) {
	repo := &stubUserRepo{}
	svc := New(repo, newMemTokenRepo())

	u, err := svc.Signup(context.Background(), SignupInput{Email: "User@Example.com", Password: "Abcdefg1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "user@example.com" {
		t.Fatalf("email must be normalized, got %q", u.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Abcdefg1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if u.Admin {
		t.Fatalf("signup must not grant admin")
	}
}

func TestSignup_PasswordPolicy(t *testing.T) {
	svc := New(&stubUserRepo{}, newMemTokenRepo())
	for _, password := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		if _, err := svc.Signup(context.Background(), SignupInput{Email: "u@example.com", Password: password}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected policy rejection for %q, got %v", password, err)
		}
	}
}

func TestSignup_RequiresEmail(t *testing.T) {
	svc := New(&stubUserRepo{}, newMemTokenRepo())
	if _, err := svc.Signup(context.Background(), SignupInput{Password: "Abcdefg1"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin_IssuesTokens(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Abcdefg1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	tokens := newMemTokenRepo()
	svc := New(&stubUserRepo{user: &domain.User{ID: "u1", Email: "u@example.com", PasswordHash: string(hash)}}, tokens)

	u, access, refresh, err := svc.Login(context.Background(), "u@example.com", "Abcdefg1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" || access == "" || refresh == "" || access == refresh {
		t.Fatalf("unexpected login result user=%+v access=%q refresh=%q", u, access, refresh)
	}

	got, err := svc.LookupByToken(context.Background(), access)
	if err != nil {
		t.Fatalf("lookup by access token: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("unexpected user %+v", got)
	}

	// Refresh tokens are not valid for resource access.
	if _, err := svc.LookupByToken(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh token, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Abcdefg1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	svc := New(&stubUserRepo{user: &domain.User{ID: "u1", PasswordHash: string(hash)}}, newMemTokenRepo())

	if _, _, _, err := svc.Login(context.Background(), "u@example.com", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := New(&stubUserRepo{getErr: domain.ErrNotFound}, newMemTokenRepo())
	if _, _, _, err := svc.Login(context.Background(), "nobody@example.com", "Abcdefg1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLookupByToken_Expired(t *testing.T) {
	tokens := newMemTokenRepo()
	tokens.tokens["expired"] = tokenrepo.Token{
		Token:     "expired",
		UserID:    "u1",
		Kind:      "access",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	svc := New(&stubUserRepo{user: &domain.User{ID: "u1"}}, tokens)

	if _, err := svc.LookupByToken(context.Background(), "expired"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, ok := tokens.tokens["expired"]; ok {
		t.Fatalf("expired token must be deleted on validation")
	}
}
