package server

import (
	"time"

	"github.com/patrickmn/go-cache"

	"ui_mockups/generator"
)

// sessionStore 保存内存中的 session，超过 TTL 未访问即过期，不做持久化。
type sessionStore struct {
	ttl   time.Duration
	items *cache.Cache
}

func newStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &sessionStore{ttl: ttl, items: cache.New(ttl, ttl/2)}
}

func (s *sessionStore) set(sess *generator.Session) {
	s.items.Set(sess.ID, sess, s.ttl)
}

// get refreshes the expiry of the returned session.
func (s *sessionStore) get(id string) (*generator.Session, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*generator.Session)
	if !ok {
		return nil, false
	}
	s.items.Set(id, sess, s.ttl)
	return sess, true
}

func (s *sessionStore) count() int { return s.items.ItemCount() }
