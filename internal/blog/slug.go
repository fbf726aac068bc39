package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/inkwell-cms/inkwell/internal/observability"
	"github.com/inkwell-cms/inkwell/internal/shared"
)

// maxSlugAttempts bounds the suffix search. Beyond it allocation fails
// with shared.ErrSlugExhausted instead of looping forever.
const maxSlugAttempts = 100

// Slugify lowercases the title, folds accented letters to their base
// form, drops everything that is not an ASCII letter, digit or space, and
// collapses whitespace runs into single hyphens. The mapping is many to
// one; uniqueness is enforced at allocation, never assumed from input.
//
// The transform chain carries internal buffer state and must not be
// shared across goroutines, so it is built fresh on every call.
func Slugify(title string) string {
	deaccent := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(deaccent, title); err == nil {
		title = folded
	}
	title = strings.ToLower(title)
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// SlugStore is the authoritative-store surface the allocator consumes.
type SlugStore interface {
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// Allocator derives collision-free slugs under concurrent writers.
type Allocator struct {
	store   SlugStore
	metrics *observability.Metrics
}

// NewAllocator constructs an Allocator. Metrics may be nil.
func NewAllocator(store SlugStore, metrics *observability.Metrics) *Allocator {
	return &Allocator{store: store, metrics: metrics}
}

// Allocate walks base, base-1, base-2, … and invokes create with each
// candidate until a write sticks. The pre-write existence check is only an
// optimization to skip known-taken suffixes; the unique index behind
// create is the source of truth, so two concurrent allocations of the same
// title cannot both win a candidate — the loser observes
// shared.ErrDuplicateSlug from the write itself and moves on to the next
// suffix. Any other store error aborts with no record created.
func (a *Allocator) Allocate(ctx context.Context, title string, create func(ctx context.Context, slug string) error) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "untitled"
	}
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}

		exists, err := a.store.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("blog: slug existence check: %w", err)
		}
		if exists {
			a.metrics.SlugCollision()
			continue
		}

		switch err := create(ctx, candidate); {
		case err == nil:
			return candidate, nil
		case errors.Is(err, shared.ErrDuplicateSlug):
			a.metrics.SlugCollision()
		default:
			return "", err
		}
	}
	return "", shared.ErrSlugExhausted
}
