package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-cms/inkwell/internal/shared"
)

// Repository defines persistence operations for the blog module.
type Repository interface {
	SlugStore
	Create(ctx context.Context, record *Blog) error
	GetBySlug(ctx context.Context, slug string) (*Blog, error)
	List(ctx context.Context, filter ListFilter) ([]Blog, int, error)
}

// PGRepository implements Repository using PostgreSQL. The blogs table
// carries a unique index on slug; Create maps violations of it to
// shared.ErrDuplicateSlug so the allocator can retry.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ExistsBySlug reports whether a record with the exact slug exists.
func (r *PGRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM blogs WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new blog record.
func (r *PGRepository) Create(ctx context.Context, record *Blog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO blogs (id, title, slug, content, excerpt, cover_image, category, tags, meta_description, published, featured, reading_time, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		record.ID, record.Title, record.Slug, record.Content, record.Excerpt, record.CoverImage,
		record.Category, record.Tags, record.MetaDescription, record.Published, record.Featured,
		record.ReadingTime, record.AuthorID, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrDuplicateSlug
		}
		return fmt.Errorf("blog: create: %w", err)
	}
	return nil
}

// GetBySlug fetches a record by its slug.
func (r *PGRepository) GetBySlug(ctx context.Context, slug string) (*Blog, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, slug, content, COALESCE(excerpt, ''), COALESCE(cover_image, ''), COALESCE(category, ''), tags, COALESCE(meta_description, ''), published, featured, reading_time, author_id, created_at, updated_at
		FROM blogs WHERE slug = $1`, slug)
	record, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// List returns records matching the filter plus the unpaginated total.
func (r *PGRepository) List(ctx context.Context, filter ListFilter) ([]Blog, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.PublishedOnly {
		where += " AND published = TRUE"
	}
	if filter.Category != "" {
		where += " AND category = " + arg(filter.Category)
	}
	if filter.Tag != "" {
		where += " AND " + arg(filter.Tag) + " = ANY(tags)"
	}
	if filter.Featured != nil {
		where += " AND featured = " + arg(*filter.Featured)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pagination := shared.NewPagination(filter.Page, filter.Limit, total)
	query := `
		SELECT id, title, slug, content, COALESCE(excerpt, ''), COALESCE(cover_image, ''), COALESCE(category, ''), tags, COALESCE(meta_description, ''), published, featured, reading_time, author_id, created_at, updated_at
		FROM blogs` + where + ` ORDER BY created_at DESC LIMIT ` + arg(pagination.PerPage) + ` OFFSET ` + arg(pagination.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []Blog
	for rows.Next() {
		record, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func scanBlog(row pgx.Row) (*Blog, error) {
	var record Blog
	if err := row.Scan(&record.ID, &record.Title, &record.Slug, &record.Content, &record.Excerpt,
		&record.CoverImage, &record.Category, &record.Tags, &record.MetaDescription,
		&record.Published, &record.Featured, &record.ReadingTime, &record.AuthorID,
		&record.CreatedAt, &record.UpdatedAt); err != nil {
		return nil, err
	}
	return &record, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Repository = (*PGRepository)(nil)
