package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porto-anggi/porto-backend/internal/projects/domain"
)

func setupCache(t *testing.T) (*ProjectCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewProjectCache(rdb, nil), mr
}

func sampleProject(id string) domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Project{
		ID:           id,
		Name:         "Portfolio Website",
		StartDate:    now.AddDate(0, -2, 0),
		EndDate:      now,
		Technologies: []string{"Node.js", "React.js"},
		Image:        "/img/demo-image-1.jpg",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestProjectCache_ListRoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	_, ok := c.GetList(ctx)
	assert.False(t, ok, "empty cache must miss")

	want := []domain.Project{sampleProject("p1"), sampleProject("p2")}
	c.SetList(ctx, want)

	got, ok := c.GetList(ctx)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, []string{"Node.js", "React.js"}, got[0].Technologies)
}

func TestProjectCache_ItemRoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	p := sampleProject("p1")
	c.Set(ctx, &p)

	got, ok := c.Get(ctx, "p1")
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Image, got.Image)

	_, ok = c.Get(ctx, "other")
	assert.False(t, ok)
}

func TestProjectCache_Invalidate(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	p := sampleProject("p1")
	c.Set(ctx, &p)
	c.SetList(ctx, []domain.Project{p})

	c.Invalidate(ctx, "p1")

	_, ok := c.Get(ctx, "p1")
	assert.False(t, ok)
	_, ok = c.GetList(ctx)
	assert.False(t, ok)
}

func TestProjectCache_RedisDownIsAMiss(t *testing.T) {
	c, mr := setupCache(t)
	mr.Close()

	_, ok := c.GetList(context.Background())
	assert.False(t, ok)
}

func TestProjectCache_CorruptEntryIsAMiss(t *testing.T) {
	c, mr := setupCache(t)
	require.NoError(t, mr.Set(listKey, "not json"))

	_, ok := c.GetList(context.Background())
	assert.False(t, ok)
}
