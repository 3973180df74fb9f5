package starterblog

import (
	"sync"
	"time"

	"github.com/eringen/starterblog/views"
)

// PostLoader loads the full, sorted post list.
type PostLoader func() ([]views.Post, error)

// PostCache is an in-memory cache of loaded posts with TTL, used by the
// preview server so each request does not re-read the content tree.
type PostCache struct {
	mu      sync.RWMutex
	posts   []views.Post
	fetched time.Time
	ttl     time.Duration
	load    PostLoader
}

// NewPostCache creates a PostCache backed by load.
func NewPostCache(load PostLoader, ttl time.Duration) *PostCache {
	return &PostCache{load: load, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// ensureLoaded returns cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]views.Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.load()
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []views.Post{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return c.posts, nil
}

// ListPosts returns all posts, newest first.
func (c *PostCache) ListPosts() ([]views.Post, error) {
	return c.ensureLoaded()
}

// GetPost returns a post by slug together with its neighbours.
func (c *PostCache) GetPost(slug string) (views.Post, views.PostNav, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return views.Post{}, views.PostNav{}, err
	}
	for i, p := range posts {
		if p.Slug == slug {
			return p, Neighbours(posts, i), nil
		}
	}
	return views.Post{}, views.PostNav{}, ErrNotFound
}
