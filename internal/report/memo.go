package report

import (
	"context"

	"conversation-report/internal/user"
)

// UserMemo caches user lookups for the lifetime of one report request.
// Missing users are remembered as nil so they are not fetched twice.
// It is not safe for concurrent use.
type UserMemo struct {
	lookup user.Lookup
	users  map[int]*user.User
}

func NewUserMemo(lookup user.Lookup) *UserMemo {
	return &UserMemo{lookup: lookup, users: make(map[int]*user.User)}
}

// Get returns the cached user or fetches it. A nil user means not found.
func (m *UserMemo) Get(ctx context.Context, id int) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}

	u, err := m.lookup.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.users[id] = u
	return u, nil
}
