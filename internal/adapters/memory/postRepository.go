package memory

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"bloghub/internal/core/post"

	"github.com/gofrs/uuid"
)

// DefaultTrendingLimit تعداد پیش‌فرض پست‌های پرطرفدار
const DefaultTrendingLimit = 3

// PostRepositoryMemory پیاده‌سازی PostRepository در حافظه
//
// Writers are serialized by mu and replace the whole collection on every
// mutation; readers load the current snapshot without locking.
type PostRepositoryMemory struct {
	mu      sync.Mutex
	posts   atomic.Pointer[[]post.Post]
	version atomic.Uint64
	now     func() time.Time
	newID   func() string
}

type Option func(*PostRepositoryMemory)

// WithClock sets the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *PostRepositoryMemory) { r.now = now }
}

// WithIDGenerator sets the generator used for new post ids.
func WithIDGenerator(gen func() string) Option {
	return func(r *PostRepositoryMemory) { r.newID = gen }
}

// NewPostRepositoryMemory سازنده PostRepositoryMemory
func NewPostRepositoryMemory(opts ...Option) *PostRepositoryMemory {
	r := &PostRepositoryMemory{
		now:   time.Now,
		newID: func() string { return uuid.Must(uuid.NewV4()).String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	empty := []post.Post{}
	r.posts.Store(&empty)
	return r
}

// Seed appends prebuilt posts as they are, ids and timestamps included.
// Posts whose id is already present are skipped.
func (r *PostRepositoryMemory) Seed(posts ...post.Post) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snapshot()
	next := slices.Clone(cur)
	for _, p := range posts {
		if p.ID == "" || indexOf(next, p.ID) >= 0 {
			continue
		}
		next = append(next, normalize(p))
	}
	if len(next) == len(cur) {
		return
	}
	r.publish(next)
}

func (r *PostRepositoryMemory) Create(draft post.Draft) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snapshot()
	now := r.now()
	p := normalize(post.Post{
		ID:        r.uniqueID(cur),
		Title:     draft.Title,
		Content:   draft.Content,
		Excerpt:   draft.Excerpt,
		Author:    draft.Author,
		Status:    draft.Status,
		Likes:     draft.Likes,
		CreatedAt: now,
		UpdatedAt: now,
	})

	next := make([]post.Post, len(cur), len(cur)+1)
	copy(next, cur)
	r.publish(append(next, p))
}

func (r *PostRepositoryMemory) SetStatus(id string, status post.Status) {
	if !status.Valid() {
		return
	}
	r.update(id, func(p *post.Post) {
		p.Status = status
		// createdAt <= updatedAt در صورت عقب رفتن ساعت هم حفظ می‌شود
		if now := r.now(); now.After(p.UpdatedAt) {
			p.UpdatedAt = now
		}
	})
}

func (r *PostRepositoryMemory) Like(id string) {
	r.update(id, func(p *post.Post) {
		p.Likes++
	})
}

func (r *PostRepositoryMemory) FindByID(id string) (post.Post, bool) {
	cur := r.snapshot()
	if i := indexOf(cur, id); i >= 0 {
		return cur[i], true
	}
	return post.Post{}, false
}

func (r *PostRepositoryMemory) ListApproved() []post.Post {
	return r.filter(func(p post.Post) bool { return p.Status == post.StatusApproved })
}

// ListTrending returns approved posts ordered by likes, most liked first.
// Ties keep collection order. A non-positive limit means DefaultTrendingLimit.
func (r *PostRepositoryMemory) ListTrending(limit int) []post.Post {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	approved := r.ListApproved()
	slices.SortStableFunc(approved, func(a, b post.Post) int {
		return b.Likes - a.Likes
	})
	if len(approved) > limit {
		approved = approved[:limit]
	}
	return approved
}

func (r *PostRepositoryMemory) ListByAuthor(authorID string) []post.Post {
	return r.filter(func(p post.Post) bool { return p.Author.ID == authorID })
}

func (r *PostRepositoryMemory) ListPending() []post.Post {
	return r.filter(func(p post.Post) bool { return p.Status == post.StatusPending })
}

// Version grows by one with every mutation that changed the collection.
func (r *PostRepositoryMemory) Version() uint64 {
	return r.version.Load()
}

// Len returns the number of posts in the current snapshot.
func (r *PostRepositoryMemory) Len() int {
	return len(r.snapshot())
}

func (r *PostRepositoryMemory) snapshot() []post.Post {
	return *r.posts.Load()
}

// publish باید با قفل mu صدا زده شود
func (r *PostRepositoryMemory) publish(next []post.Post) {
	r.posts.Store(&next)
	r.version.Add(1)
}

func (r *PostRepositoryMemory) update(id string, mutate func(p *post.Post)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snapshot()
	i := indexOf(cur, id)
	if i < 0 {
		return
	}
	next := slices.Clone(cur)
	mutate(&next[i])
	r.publish(next)
}

func (r *PostRepositoryMemory) filter(keep func(p post.Post) bool) []post.Post {
	res := []post.Post{}
	for _, p := range r.snapshot() {
		if keep(p) {
			res = append(res, p)
		}
	}
	return res
}

// uniqueID asks the generator for an id and suffixes it if it is taken.
func (r *PostRepositoryMemory) uniqueID(cur []post.Post) string {
	id := r.newID()
	if indexOf(cur, id) < 0 {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if indexOf(cur, candidate) < 0 {
			return candidate
		}
	}
}

func indexOf(posts []post.Post, id string) int {
	return slices.IndexFunc(posts, func(p post.Post) bool { return p.ID == id })
}

// normalize keeps the entity invariants for caller supplied values.
func normalize(p post.Post) post.Post {
	if !p.Status.Valid() {
		p.Status = post.StatusPending
	}
	if p.Likes < 0 {
		p.Likes = 0
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}
	return p
}
