package product

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"marketplace-api/internal/domain"
	"marketplace-api/internal/mail"
	"marketplace-api/internal/moderation"
	productrepo "marketplace-api/internal/repository/product"
	userrepo "marketplace-api/internal/repository/user"
)

// Service orchestrates product CRUD and the moderation workflow.
type Service struct {
	repo   productrepo.Repository
	users  userrepo.Repository
	mailer mail.Mailer
	logger *log.Logger
}

func New(repo productrepo.Repository, users userrepo.Repository, mailer mail.Mailer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, users: users, mailer: mailer, logger: logger}
}

// CreateInput carries the fields accepted on product creation.
type CreateInput struct {
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category"`
}

// UpdateInput carries partial field updates, state excluded.
type UpdateInput struct {
	Title       *string          `json:"title"`
	Slug        *string          `json:"slug"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"category"`
}

// TransitionResult reports an applied state change. Notified is false when
// no notification was owed or when mail delivery failed after commit.
type TransitionResult struct {
	State    string
	Notified bool
}

// List returns products visible to the actor: everything for admins,
// accepted listings for everyone else.
func (s *Service) List(ctx context.Context, actor *moderation.Actor) ([]domain.Product, error) {
	f := productrepo.Filter{State: string(moderation.StateAccepted)}
	if actor != nil && actor.Admin {
		f.State = ""
	}
	return s.repo.List(ctx, f)
}

// Mine returns every product owned by the actor, in any state.
func (s *Service) Mine(ctx context.Context, creatorID string) ([]domain.Product, error) {
	return s.repo.List(ctx, productrepo.Filter{CreatorID: creatorID})
}

// Get applies the same visibility rule as List, with the creator also able
// to read their own product. Invisible products read as not found.
func (s *Service) Get(ctx context.Context, id string, actor *moderation.Actor) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.State == string(moderation.StateAccepted) {
		return p, nil
	}
	if actor != nil && (actor.Admin || actor.ID == p.CreatorID) {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

// Create stores a new draft product owned by creatorID.
func (s *Service) Create(ctx context.Context, creatorID string, in CreateInput) (*domain.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", domain.ErrInvalidInput)
	}
	if in.CategoryID == "" {
		return nil, fmt.Errorf("%w: category required", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	slugValue := strings.TrimSpace(in.Slug)
	if slugValue == "" {
		slugValue = slug.Make(title)
	}

	return s.repo.Create(ctx, domain.Product{
		Title:       title,
		Slug:        slugValue,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		CreatorID:   creatorID,
		State:       string(moderation.StateDraft),
	})
}

// Update applies field changes. Only the creator or an admin may update.
func (s *Service) Update(ctx context.Context, id string, actor moderation.Actor, in UpdateInput) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && actor.ID != existing.CreatorID {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title required", domain.ErrInvalidInput)
		}
		existing.Title = title
	}
	if in.Slug != nil {
		slugValue := strings.TrimSpace(*in.Slug)
		if slugValue == "" {
			slugValue = slug.Make(existing.Title)
		}
		existing.Slug = slugValue
	}
	if in.Description != nil {
		existing.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
		}
		existing.Price = *in.Price
	}
	if in.CategoryID != nil && *in.CategoryID != "" {
		existing.CategoryID = *in.CategoryID
	}
	return s.repo.Update(ctx, *existing)
}

// Delete removes a product. Only the creator or an admin may delete.
func (s *Service) Delete(ctx context.Context, id string, actor moderation.Actor) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Admin && actor.ID != existing.CreatorID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// ChangeState runs one transition through the moderation table. The state
// write carries an optimistic guard on the state the decision was made
// against; the creator notification row commits with it, and the email goes
// out best-effort after commit.
func (s *Service) ChangeState(ctx context.Context, id, target string, actor moderation.Actor) (*TransitionResult, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decision, err := moderation.Decide(moderation.State(p.State), target, actor, p.CreatorID)
	if err != nil {
		return nil, err
	}

	var n *domain.Notification
	if decision.Notify {
		n = &domain.Notification{
			UserID:    p.CreatorID,
			ProductID: p.ID,
			Message:   fmt.Sprintf("Your product %q is now %s.", p.Title, decision.To),
		}
	}

	applied, err := s.repo.UpdateState(ctx, p.ID, string(decision.From), string(decision.To), n)
	if err != nil {
		return nil, err
	}
	if !applied {
		// The product's state moved between read and write; the validated
		// transition no longer exists against the committed state.
		return nil, &moderation.InvalidTransitionError{From: decision.From, To: target}
	}

	result := &TransitionResult{State: string(decision.To)}
	if decision.Notify {
		result.Notified = s.notifyCreator(ctx, p, decision.To)
	}
	return result, nil
}

func (s *Service) notifyCreator(ctx context.Context, p *domain.Product, to moderation.State) bool {
	creator, err := s.users.GetByID(ctx, p.CreatorID)
	if err != nil {
		s.logger.Printf("product service: lookup creator=%s for notification: %v", p.CreatorID, err)
		return false
	}
	subject := fmt.Sprintf("Your product %q is now %s", p.Title, to)
	body := fmt.Sprintf(
		"Hello,\n\nthe state of your product %q changed to %q.\n\nThe marketplace team",
		p.Title, to,
	)
	if err := s.mailer.Send(ctx, creator.Email, subject, body); err != nil {
		s.logger.Printf("product service: notify creator=%s product=%s: %v", creator.Email, p.ID, err)
		return false
	}
	return true
}
