package report

import (
	"context"
	"database/sql"
	"fmt"

	"conversation-report/internal/access"
	"conversation-report/internal/user"
)

type fakeStore struct {
	courses  map[int]*Course
	convs    []Conversation
	members  map[int][]Member
	messages map[int][]Message
	err      error
}

func (f *fakeStore) GetCourse(ctx context.Context, id int) (*Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
	}
	return c, nil
}

func (f *fakeStore) ListConversations(ctx context.Context) ([]Conversation, error) {
	return f.convs, f.err
}

func (f *fakeStore) ListMembers(ctx context.Context, conversationID int) ([]Member, error) {
	return f.members[conversationID], f.err
}

func (f *fakeStore) ListMessages(ctx context.Context, conversationID int) ([]Message, error) {
	return f.messages[conversationID], f.err
}

type fakeUsers struct {
	users map[int]*user.User
	calls map[int]int
}

func newFakeUsers(users ...*user.User) *fakeUsers {
	f := &fakeUsers{users: map[int]*user.User{}, calls: map[int]int{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id int) (*user.User, error) {
	f.calls[id]++
	return f.users[id], nil
}

// fakeAuth holds grants keyed by "user|capability" and applies the same
// scope rule as the access repository.
type fakeAuth map[string][]access.Scope

func (f fakeAuth) grant(userID int, capability string, scope access.Scope) {
	key := fmt.Sprintf("%d|%s", userID, capability)
	f[key] = append(f[key], scope)
}

func (f fakeAuth) HasCapability(ctx context.Context, userID int, capability string, scope access.Scope) (bool, error) {
	return access.Allowed(f[fmt.Sprintf("%d|%s", userID, capability)], scope), nil
}

// keyTranslator returns keys unchanged except for the not-found placeholder.
type keyTranslator struct{}

func (keyTranslator) Translate(key string) string {
	if key == "usernotfound" {
		return "User not found"
	}
	return key
}

func intPtr(n int) *int { return &n }

func validInt(n int64) sql.NullInt64 { return sql.NullInt64{Int64: n, Valid: true} }

func validString(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

const (
	adminID   = 1
	managerID = 2
	courseID  = 3
	// teacherID holds the course capability at system level.
	teacherID = 4
)

func sampleStore() *fakeStore {
	return &fakeStore{
		courses: map[int]*Course{courseID: {ID: courseID, FullName: "Biology"}},
		convs: []Conversation{
			{ID: 5, Type: TypeGroup, Name: validString("Study group"), ConvHash: validString("d41d8cd98f00b204e980"),
				Enabled: 1, TimeCreated: 1700000000, TimeModified: validInt(1700000000)},
			{ID: 6, Type: 7, Name: validString("<b>odd</b>"), ConvHash: validString("ffff"),
				TimeCreated: 1700000100},
		},
		members: map[int][]Member{
			5: {{ID: 1, ConversationID: 5, UserID: 7}, {ID: 2, ConversationID: 5, UserID: 9}, {ID: 3, ConversationID: 5, UserID: 7}},
			6: {{ID: 4, ConversationID: 6, UserID: 7}},
		},
		messages: map[int][]Message{
			5: {
				{ID: 11, UserIDFrom: 7, ConversationID: 5, Subject: validString("hi"), FullMessage: validString("hello & welcome"),
					FullMessageHTML: validString("<p>hello</p>"), SmallMessage: validString("hello"), CustomData: validString("{}"),
					TimeCreated: 1700000000},
				{ID: 12, UserIDFrom: 9, ConversationID: 5, FullMessage: validString("bye"), TimeCreated: 1700000060},
			},
		},
	}
}

func sampleAuth() fakeAuth {
	a := fakeAuth{}
	a.grant(adminID, access.CapabilitySite, access.SystemScope())
	a.grant(managerID, access.CapabilityCourse, access.CourseScope(courseID))
	a.grant(teacherID, access.CapabilityCourse, access.SystemScope())
	return a
}

func alice() *user.User {
	return &user.User{ID: 7, Username: "alice", FirstName: "Alice", LastName: "Smith"}
}
