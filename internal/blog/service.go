package blog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-cms/inkwell/internal/shared"
)

// wordsPerMinute is the reading-speed estimate used for reading time.
const wordsPerMinute = 200

// Service handles blog business logic.
type Service struct {
	repo      Repository
	allocator *Allocator
	audit     *shared.AuditLogger
}

// NewService builds a Service instance. The audit logger may be nil.
func NewService(repo Repository, allocator *Allocator, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, allocator: allocator, audit: audit}
}

// CreateInput carries the fields accepted for a new blog record.
type CreateInput struct {
	Title           string
	Content         string
	Excerpt         string
	CoverImage      string
	Category        string
	Tags            []string
	MetaDescription string
	Published       bool
	Featured        bool
}

// Create allocates a unique slug for the title and persists the record.
// The write happens inside the allocation loop, so no record ever exists
// with an unverified slug.
func (s *Service) Create(ctx context.Context, author *shared.Identity, in CreateInput) (*Blog, error) {
	now := time.Now().UTC()
	record := &Blog{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Content:         in.Content,
		Excerpt:         in.Excerpt,
		CoverImage:      in.CoverImage,
		Category:        in.Category,
		Tags:            in.Tags,
		MetaDescription: in.MetaDescription,
		Published:       in.Published,
		Featured:        in.Featured,
		ReadingTime:     readingTime(in.Content),
		AuthorID:        author.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if record.Tags == nil {
		record.Tags = []string{}
	}

	slug, err := s.allocator.Allocate(ctx, in.Title, func(ctx context.Context, slug string) error {
		record.Slug = slug
		return s.repo.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	record.Slug = slug

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  author.ID,
			Action:   "create",
			Entity:   "blog",
			EntityID: record.ID,
			Meta:     map[string]any{"slug": record.Slug},
		})
	}
	return record, nil
}

// List returns records matching the filter with pagination metadata.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Blog, shared.Pagination, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	if records == nil {
		records = []Blog{}
	}
	return records, shared.NewPagination(filter.Page, filter.Limit, total), nil
}

// GetBySlug fetches a single record; unpublished drafts stay hidden from
// non-administrative readers.
func (s *Service) GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*Blog, error) {
	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !record.Published && !includeDrafts {
		return nil, shared.ErrNotFound
	}
	return record, nil
}

func readingTime(content string) int {
	words := len(strings.Fields(content))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
