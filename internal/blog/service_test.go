package blog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/shared"
)

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	return NewService(repo, NewAllocator(repo, nil), nil), repo
}

func author() *shared.Identity {
	return &shared.Identity{ID: "usr-1", Email: "admin@inkwell.local", Role: shared.RoleAdmin}
}

func TestCreateAllocatesSlugAndDefaults(t *testing.T) {
	service, repo := newTestService()

	record, err := service.Create(context.Background(), author(), CreateInput{
		Title:   "Hello, World!",
		Content: "one two three",
	})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", record.Slug)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "usr-1", record.AuthorID)
	assert.Equal(t, 1, record.ReadingTime)
	assert.NotNil(t, record.Tags)
	assert.False(t, record.CreatedAt.IsZero())

	stored, err := repo.GetBySlug(context.Background(), "hello-world")
	require.NoError(t, err)
	assert.Equal(t, record.ID, stored.ID)
}

func TestCreateDisambiguatesDuplicateTitles(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	first, err := service.Create(ctx, author(), CreateInput{Title: "Hello, World!", Content: "x"})
	require.NoError(t, err)
	second, err := service.Create(ctx, author(), CreateInput{Title: "Hello, World!", Content: "x"})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, "hello-world-1", second.Slug)
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, readingTime(""))
	assert.Equal(t, 1, readingTime("just a few words"))
	assert.Equal(t, 1, readingTime(words(200)))
	assert.Equal(t, 2, readingTime(words(201)))
	assert.Equal(t, 5, readingTime(words(1000)))
}

func words(n int) string {
	out := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		out = append(out, 'w', ' ')
	}
	return string(out)
}

func TestGetBySlugHidesDrafts(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Blog{Slug: "draft", Published: false}))
	require.NoError(t, repo.Create(ctx, &Blog{Slug: "live", Published: true}))

	_, err := service.GetBySlug(ctx, "draft", false)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	record, err := service.GetBySlug(ctx, "draft", true)
	require.NoError(t, err)
	assert.Equal(t, "draft", record.Slug)

	record, err = service.GetBySlug(ctx, "live", false)
	require.NoError(t, err)
	assert.Equal(t, "live", record.Slug)
}

func TestListNeverReturnsNil(t *testing.T) {
	service, _ := newTestService()

	records, pagination, err := service.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 0, pagination.Total)
}
