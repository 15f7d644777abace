// Package session holds the in-memory application state for one run of
// the dashboard: the current article set and the bookmark set. Bookmarks
// are weak references by link; a bookmarked link that disappears from
// the current set simply resolves to nothing.
package session

import (
	"sync"

	"newsdash/internal/aggregate"
)

type State struct {
	mu        sync.RWMutex
	current   aggregate.Set
	bookmarks map[string]struct{}
}

func NewState() *State {
	return &State{
		bookmarks: make(map[string]struct{}),
	}
}

// SetArticles replaces the current article set. Bookmarks survive the
// replacement; stale links just stop resolving.
func (s *State) SetArticles(set aggregate.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = set
}

func (s *State) Articles() aggregate.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Bookmark marks a link. It reports false when the link was already
// bookmarked.
func (s *State) Bookmark(link string) bool {
	if link == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookmarks[link]; exists {
		return false
	}
	s.bookmarks[link] = struct{}{}
	return true
}

func (s *State) Unbookmark(link string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookmarks, link)
}

func (s *State) IsBookmarked(link string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.bookmarks[link]
	return ok
}

// Bookmarked resolves the bookmark set against the current articles,
// preserving article order.
func (s *State) Bookmarked() []aggregate.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []aggregate.Article
	for _, a := range s.current.Articles {
		if _, ok := s.bookmarks[a.Link]; ok {
			out = append(out, a)
		}
	}
	return out
}
