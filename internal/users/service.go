package users

import (
	"context"
	"fmt"

	"github.com/inkwell-cms/inkwell/internal/shared"
)

// RoleInvalidator drops cached privilege entries after a role change.
// Satisfied by auth.CachedRoleStore; nil when no cache is configured.
type RoleInvalidator interface {
	Invalidate(ctx context.Context, email string) error
}

// Service handles user business logic.
type Service struct {
	repo        RepositoryPort
	invalidator RoleInvalidator
	audit       *shared.AuditLogger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, invalidator RoleInvalidator, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, invalidator: invalidator, audit: audit}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// ChangeRole updates a user's privilege level. The cached role entry is
// invalidated before success is reported, so the resolver's next lookup
// sees the new value and stale credentials stop resolving immediately.
func (s *Service) ChangeRole(ctx context.Context, actor *shared.Identity, userID, role string) (*User, error) {
	if role != shared.RoleAdmin && role != shared.RoleUser {
		return nil, fmt.Errorf("users: unknown role %q", role)
	}
	user, err := s.repo.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, user.Email); err != nil {
			return nil, fmt.Errorf("users: invalidate role cache: %w", err)
		}
	}
	if s.audit != nil && actor != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actor.ID,
			Action:   "change_role",
			Entity:   "user",
			EntityID: user.ID,
			Meta:     map[string]any{"role": role},
		})
	}
	return user, nil
}
