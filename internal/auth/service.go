package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-cms/inkwell/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo  Repository
	codec *Codec
	audit *shared.AuditLogger
}

// NewService constructs a new Service. The audit logger may be nil.
func NewService(repo Repository, codec *Codec, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, codec: codec, audit: audit}
}

// Login validates email/password credentials and issues a signed credential
// for the authenticated identity.
func (s *Service) Login(ctx context.Context, email, password string) (*shared.Identity, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, "", shared.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}

	identity := &shared.Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Image: user.Image,
		Role:  user.Role,
	}
	credential, err := s.codec.Issue(*identity)
	if err != nil {
		return nil, "", err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  user.ID,
			Action:   "login",
			Entity:   "user",
			EntityID: user.ID,
		})
	}
	return identity, credential, nil
}

// RecordLogout writes an audit trail entry for an explicit logout.
func (s *Service) RecordLogout(ctx context.Context, identity *shared.Identity) {
	if s.audit == nil || identity == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  identity.ID,
		Action:   "logout",
		Entity:   "user",
		EntityID: identity.ID,
	})
}
