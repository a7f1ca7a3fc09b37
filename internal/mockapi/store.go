// Package mockapi is a self-contained stand-in for the remote REST service:
// the same resource-per-collection contract the console speaks, backed by an
// in-memory store. It exists so the console can be developed and demoed
// without an external backend; nothing survives a restart.
package mockapi

import (
	"sort"
	"sync"

	"github.com/recordops/recordadmin/internal/core/domain"
)

// Store is the mutex-guarded in-memory record store. The server assigns ids
// from per-collection counters, mirroring the real backend's behaviour.
type Store struct {
	mu         sync.Mutex
	users      map[int]domain.User
	posts      map[int]domain.Post
	nextUserID int
	nextPostID int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:      make(map[int]domain.User),
		posts:      make(map[int]domain.Post),
		nextUserID: 1,
		nextPostID: 1,
	}
}

// Seed loads a small canonical data set so the console has something to show
// on first contact.
func (s *Store) Seed() {
	users := []domain.User{
		{Name: "Leanne Graham", Username: "Bret", Email: "leanne.graham@example.com"},
		{Name: "Ervin Howell", Username: "Antonette", Email: "ervin.howell@example.com"},
		{Name: "Clementine Bauch", Username: "Samantha", Email: "clementine.bauch@example.com"},
	}
	for _, u := range users {
		s.CreateUser(u)
	}
	posts := []domain.Post{
		{UserID: 1, Title: "sunt aut facere repellat provident"},
		{UserID: 1, Title: "qui est esse"},
		{UserID: 2, Title: "ea molestias quasi exercitationem"},
		{UserID: 2, Title: "eum et est occaecati"},
		{UserID: 3, Title: "nesciunt quas odio"},
	}
	for _, p := range posts {
		s.CreatePost(p)
	}
}

// --- Users ---

func (s *Store) ListUsers() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetUser(id int) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) CreateUser(draft domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft.ID = s.nextUserID
	s.nextUserID++
	s.users[draft.ID] = draft
	return draft
}

// ReplaceUser swaps the full record, keeping the path id authoritative.
func (s *Store) ReplaceUser(id int, u domain.User) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.User{}, false
	}
	u.ID = id
	s.users[id] = u
	return u, true
}

// PatchUser merges the provided fields into the stored record and returns the
// full updated representation.
func (s *Store) PatchUser(id int, fields map[string]any) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, false
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["username"].(string); ok {
		u.Username = v
	}
	if v, ok := fields["email"].(string); ok {
		u.Email = v
	}
	s.users[id] = u
	return u, true
}

func (s *Store) DeleteUser(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}

// --- Posts ---

// ListPosts returns all posts, optionally narrowed to one owner when
// userID > 0, ordered by id.
func (s *Store) ListPosts(userID int) []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if userID > 0 && p.UserID != userID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetPost(id int) (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	return p, ok
}

func (s *Store) CreatePost(draft domain.Post) domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft.ID = s.nextPostID
	s.nextPostID++
	s.posts[draft.ID] = draft
	return draft
}

func (s *Store) ReplacePost(id int, p domain.Post) (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return domain.Post{}, false
	}
	p.ID = id
	s.posts[id] = p
	return p, true
}

func (s *Store) PatchPost(id int, fields map[string]any) (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return domain.Post{}, false
	}
	if v, ok := fields["title"].(string); ok {
		p.Title = v
	}
	// JSON numbers decode as float64.
	if v, ok := fields["userId"].(float64); ok {
		p.UserID = int(v)
	}
	s.posts[id] = p
	return p, true
}

func (s *Store) DeletePost(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return false
	}
	delete(s.posts, id)
	return true
}
