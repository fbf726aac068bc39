package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/inkwell-cms/inkwell/internal/observability"
	"github.com/inkwell-cms/inkwell/internal/shared"
)

// Resolver turns an inbound credential into a trusted identity. Resolution
// is a pure read: it is idempotent and safe to call concurrently. Every
// authentication failure collapses to a nil identity; the only surfaced
// error is an unreachable authoritative store.
type Resolver struct {
	codec   *Codec
	roles   RoleStore
	metrics *observability.Metrics
}

// NewResolver constructs a Resolver. Metrics may be nil.
func NewResolver(codec *Codec, roles RoleStore, metrics *observability.Metrics) *Resolver {
	return &Resolver{codec: codec, roles: roles, metrics: metrics}
}

// Resolve extracts the session cookie from the source, verifies the
// credential, and re-checks the claimed role against the authoritative
// store. The embedded role claim is a cached hint, not a trust source: a
// signature-valid token whose role no longer matches the store is rejected,
// so mid-lifetime privilege downgrades take effect on the next request.
func (r *Resolver) Resolve(ctx context.Context, src CredentialSource) (*shared.Identity, error) {
	credential, ok := src.Cookie(SessionCookieName)
	if !ok {
		return nil, nil
	}

	claims, err := r.codec.Verify(credential)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			r.metrics.AuthFailure(observability.ReasonExpired)
		} else {
			r.metrics.AuthFailure(observability.ReasonMalformed)
		}
		return nil, nil
	}

	role, err := r.roles.FindRoleByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			r.metrics.AuthFailure(observability.ReasonUnknownUser)
			return nil, nil
		}
		return nil, fmt.Errorf("auth: role lookup: %w", err)
	}
	if role != claims.Role {
		r.metrics.AuthFailure(observability.ReasonStaleRole)
		return nil, nil
	}

	return &shared.Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Image: claims.Image,
		Role:  claims.Role,
	}, nil
}

// ResolveRequest resolves against an explicit request.
func (r *Resolver) ResolveRequest(req *http.Request) (*shared.Identity, error) {
	return r.Resolve(req.Context(), RequestSource{Request: req})
}

// ResolveContext resolves against the ambient per-request cookie jar.
func (r *Resolver) ResolveContext(ctx context.Context) (*shared.Identity, error) {
	return r.Resolve(ctx, SourceFromContext(ctx))
}
