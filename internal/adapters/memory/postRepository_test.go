package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"bloghub/internal/core/post"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("p%d", n)
	}
}

func newTestRepo(clock *fakeClock) *PostRepositoryMemory {
	return NewPostRepositoryMemory(WithClock(clock.Now), WithIDGenerator(sequentialIDs()))
}

func draft(title, authorID string, status post.Status, likes int) post.Draft {
	return post.Draft{
		Title:   title,
		Content: title + " content",
		Excerpt: title + " excerpt",
		Author:  post.Author{ID: authorID, Name: "Author " + authorID, Email: authorID + "@example.com"},
		Status:  status,
		Likes:   likes,
	}
}

func ids(posts []post.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestCreate_AssignsDistinctIDsAndTimestamps(t *testing.T) {
	clock := newFakeClock()
	repo := NewPostRepositoryMemory(WithClock(clock.Now))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		repo.Create(draft(fmt.Sprintf("post %d", i), "u1", post.StatusPending, 0))
	}
	all := repo.ListByAuthor("u1")
	require.Len(t, all, 50)
	for _, p := range all {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.Equal(t, clock.Now(), p.CreatedAt)
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	}
}

func TestCreate_GeneratorCollisionStillUnique(t *testing.T) {
	repo := NewPostRepositoryMemory(WithIDGenerator(func() string { return "same" }))

	repo.Create(draft("a", "u1", post.StatusPending, 0))
	repo.Create(draft("b", "u1", post.StatusPending, 0))
	repo.Create(draft("c", "u1", post.StatusPending, 0))

	assert.Equal(t, []string{"same", "same-2", "same-3"}, ids(repo.ListByAuthor("u1")))
}

func TestCreate_VisibleInListByAuthorExactlyOnce(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("other", "u2", post.StatusApproved, 0))
	repo.Create(draft("mine", "u1", post.StatusPending, 0))

	mine := repo.ListByAuthor("u1")
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].Title)
	assert.Equal(t, "Author u1", mine[0].Author.Name)
	assert.Equal(t, 2, repo.Len())
}

func TestCreate_KeepsCallerFieldsVerbatim(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	d := draft("t", "u1", post.StatusApproved, 7)
	d.Excerpt = "hand written"
	repo.Create(d)

	p, ok := repo.FindByID("p1")
	require.True(t, ok)
	assert.Equal(t, "hand written", p.Excerpt)
	assert.Equal(t, post.StatusApproved, p.Status)
	assert.Equal(t, 7, p.Likes)
}

func TestCreate_NormalizesInvalidDraftValues(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("t", "u1", post.Status("draft"), -4))

	p, ok := repo.FindByID("p1")
	require.True(t, ok)
	assert.Equal(t, post.StatusPending, p.Status)
	assert.Equal(t, 0, p.Likes)
}

func TestSetStatus(t *testing.T) {
	clock := newFakeClock()
	repo := newTestRepo(clock)
	repo.Create(draft("t", "u1", post.StatusPending, 0))
	before, _ := repo.FindByID("p1")

	clock.Advance(time.Minute)
	repo.SetStatus("p1", post.StatusApproved)

	after, ok := repo.FindByID("p1")
	require.True(t, ok)
	assert.Equal(t, post.StatusApproved, after.Status)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
}

func TestSetStatus_SameStatusStillBumpsUpdatedAt(t *testing.T) {
	clock := newFakeClock()
	repo := newTestRepo(clock)
	repo.Create(draft("t", "u1", post.StatusApproved, 0))

	clock.Advance(time.Second)
	repo.SetStatus("p1", post.StatusApproved)

	p, _ := repo.FindByID("p1")
	assert.Equal(t, post.StatusApproved, p.Status)
	assert.Equal(t, clock.Now(), p.UpdatedAt)
}

func TestSetStatus_AnyTransitionAllowed(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("t", "u1", post.StatusPending, 0))

	for _, s := range []post.Status{post.StatusRejected, post.StatusApproved, post.StatusPending, post.StatusRejected} {
		repo.SetStatus("p1", s)
		p, _ := repo.FindByID("p1")
		assert.Equal(t, s, p.Status)
	}
}

func TestSetStatus_ClockGoingBackwardsKeepsOrdering(t *testing.T) {
	clock := newFakeClock()
	repo := newTestRepo(clock)
	repo.Create(draft("t", "u1", post.StatusPending, 0))

	clock.Advance(-time.Hour)
	repo.SetStatus("p1", post.StatusApproved)

	p, _ := repo.FindByID("p1")
	assert.Equal(t, post.StatusApproved, p.Status)
	assert.False(t, p.UpdatedAt.Before(p.CreatedAt))
}

func TestMutationsOnUnknownIDAreNoOps(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("a", "u1", post.StatusPending, 0))
	repo.Create(draft("b", "u2", post.StatusApproved, 3))

	before := append(repo.ListByAuthor("u1"), repo.ListByAuthor("u2")...)
	version := repo.Version()

	repo.SetStatus("missing", post.StatusApproved)
	repo.Like("missing")

	after := append(repo.ListByAuthor("u1"), repo.ListByAuthor("u2")...)
	assert.Equal(t, before, after)
	assert.Equal(t, 2, repo.Len())
	assert.Equal(t, version, repo.Version())
}

func TestSetStatus_InvalidStatusIgnored(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("a", "u1", post.StatusPending, 0))

	repo.SetStatus("p1", post.Status("archived"))

	p, _ := repo.FindByID("p1")
	assert.Equal(t, post.StatusPending, p.Status)
}

func TestLike_IncrementsWithoutTouchingUpdatedAt(t *testing.T) {
	clock := newFakeClock()
	repo := newTestRepo(clock)
	repo.Create(draft("t", "u1", post.StatusApproved, 0))
	before, _ := repo.FindByID("p1")

	clock.Advance(time.Hour)
	repo.Like("p1")

	after, _ := repo.FindByID("p1")
	assert.Equal(t, before.Likes+1, after.Likes)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestListApproved_FiltersAndKeepsOrder(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("a", "u1", post.StatusApproved, 0))
	repo.Create(draft("b", "u1", post.StatusPending, 0))
	repo.Create(draft("c", "u1", post.StatusRejected, 0))
	repo.Create(draft("d", "u1", post.StatusApproved, 0))

	approved := repo.ListApproved()
	assert.Equal(t, []string{"p1", "p4"}, ids(approved))
	for _, p := range approved {
		assert.Equal(t, post.StatusApproved, p.Status)
	}
}

func TestListTrending_StableTieBreak(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("five-a", "u1", post.StatusApproved, 5))
	repo.Create(draft("five-b", "u1", post.StatusApproved, 5))
	repo.Create(draft("nine", "u1", post.StatusApproved, 9))
	repo.Create(draft("one", "u1", post.StatusApproved, 1))

	trending := repo.ListTrending(3)
	require.Len(t, trending, 3)
	assert.Equal(t, []string{"p3", "p1", "p2"}, ids(trending))
}

func TestListTrending_TiesStableAcrossManyEqualCounts(t *testing.T) {
	// an unstable sort would reorder these at random
	repo := newTestRepo(newFakeClock())
	for i := 0; i < 40; i++ {
		repo.Create(draft(fmt.Sprintf("t%d", i), "u1", post.StatusApproved, 2))
	}

	trending := repo.ListTrending(40)
	for i, p := range trending {
		assert.Equal(t, fmt.Sprintf("p%d", i+1), p.ID)
	}
}

func TestListTrending_OnlyApprovedAndDefaultLimit(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("pending", "u1", post.StatusPending, 100))
	repo.Create(draft("rejected", "u1", post.StatusRejected, 99))
	for i := 0; i < 5; i++ {
		repo.Create(draft(fmt.Sprintf("ok%d", i), "u1", post.StatusApproved, i))
	}

	trending := repo.ListTrending(0)
	assert.Equal(t, []string{"p7", "p6", "p5"}, ids(trending))

	assert.Len(t, repo.ListTrending(10), 5)
}

func TestListTrending_DoesNotReorderCollection(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("low", "u1", post.StatusApproved, 1))
	repo.Create(draft("high", "u1", post.StatusApproved, 9))

	_ = repo.ListTrending(3)
	assert.Equal(t, []string{"p1", "p2"}, ids(repo.ListApproved()))
}

func TestListByAuthor_StatusAgnostic(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("a", "u1", post.StatusPending, 0))
	repo.Create(draft("b", "u2", post.StatusApproved, 0))
	repo.Create(draft("c", "u1", post.StatusRejected, 0))
	repo.Create(draft("d", "u1", post.StatusApproved, 0))

	assert.Equal(t, []string{"p1", "p3", "p4"}, ids(repo.ListByAuthor("u1")))
	assert.Empty(t, repo.ListByAuthor("nobody"))
}

func TestListPending(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	assert.Empty(t, repo.ListPending())

	repo.Create(draft("a", "u1", post.StatusApproved, 0))
	assert.Empty(t, repo.ListPending())

	repo.Create(draft("b", "u1", post.StatusPending, 0))
	repo.Create(draft("c", "u1", post.StatusRejected, 0))
	assert.Equal(t, []string{"p2"}, ids(repo.ListPending()))
}

func TestProjectionsReturnCopies(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("a", "u1", post.StatusApproved, 0))

	approved := repo.ListApproved()
	approved[0].Likes = 1000
	approved[0].Author.Name = "changed"

	p, _ := repo.FindByID("p1")
	assert.Equal(t, 0, p.Likes)
	assert.Equal(t, "Author u1", p.Author.Name)
}

func TestSnapshotIsolation(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("a", "u1", post.StatusPending, 0))

	old := repo.snapshot()
	repo.SetStatus("p1", post.StatusApproved)
	repo.Like("p1")

	assert.Equal(t, post.StatusPending, old[0].Status)
	assert.Equal(t, 0, old[0].Likes)
}

func TestVersionCountsAppliedMutations(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	assert.Equal(t, uint64(0), repo.Version())

	repo.Create(draft("a", "u1", post.StatusPending, 0))
	repo.SetStatus("p1", post.StatusApproved)
	repo.Like("p1")
	_ = repo.ListApproved()

	assert.Equal(t, uint64(3), repo.Version())
}

func TestSeed(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Seed(post.SeedPosts()...)
	repo.Seed(post.SeedPosts()...)

	assert.Equal(t, 3, repo.Len())
	assert.Equal(t, uint64(1), repo.Version())

	trending := repo.ListTrending(3)
	assert.Equal(t, []string{"3", "1", "2"}, ids(trending))

	p, ok := repo.FindByID("1")
	require.True(t, ok)
	assert.Equal(t, "John Doe", p.Author.Name)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), p.CreatedAt)
}

func TestModerationScenario(t *testing.T) {
	repo := newTestRepo(newFakeClock())
	repo.Create(draft("P", "u1", post.StatusPending, 0))

	assert.Equal(t, []string{"p1"}, ids(repo.ListPending()))
	assert.Empty(t, repo.ListApproved())

	repo.SetStatus("p1", post.StatusApproved)
	assert.Equal(t, []string{"p1"}, ids(repo.ListApproved()))
	assert.Empty(t, repo.ListPending())

	for i := 0; i < 3; i++ {
		repo.Like("p1")
	}
	p, _ := repo.FindByID("p1")
	assert.Equal(t, 3, p.Likes)
}

func TestConcurrentWriters(t *testing.T) {
	repo := NewPostRepositoryMemory()
	repo.Create(draft("hot", "u1", post.StatusApproved, 0))
	hot := repo.ListApproved()[0].ID

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				repo.Like(hot)
				if j%10 == 0 {
					repo.Create(draft(fmt.Sprintf("w%d-%d", i, j), "u2", post.StatusPending, 0))
				}
				_ = repo.ListTrending(3)
			}
		}(i)
	}
	wg.Wait()

	p, _ := repo.FindByID(hot)
	assert.Equal(t, 1000, p.Likes)
	assert.Len(t, repo.ListByAuthor("u2"), 100)
}
