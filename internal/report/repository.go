package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("record not found")

// Repository reads the message store. It never writes.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCourse(ctx context.Context, id int) (*Course, error) {
	c := &Course{}
	err := r.db.GetContext(ctx, c, "SELECT id, fullname, shortname FROM course WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

func (r *Repository) ListConversations(ctx context.Context) ([]Conversation, error) {
	query := `
		SELECT id, type, name, convhash, component, itemtype, itemid, contextid,
		       enabled, timecreated, timemodified
		FROM message_conversations
		ORDER BY timecreated, id
	`
	var out []Conversation
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return out, nil
}

func (r *Repository) ListMembers(ctx context.Context, conversationID int) ([]Member, error) {
	query := `
		SELECT id, conversationid, userid, timecreated
		FROM message_conversation_members
		WHERE conversationid = $1
		ORDER BY id
	`
	var out []Member
	if err := r.db.SelectContext(ctx, &out, query, conversationID); err != nil {
		return nil, fmt.Errorf("list members of conversation %d: %w", conversationID, err)
	}
	return out, nil
}

func (r *Repository) ListMessages(ctx context.Context, conversationID int) ([]Message, error) {
	query := `
		SELECT id, useridfrom, conversationid, subject, fullmessage, fullmessageformat,
		       fullmessagehtml, smallmessage, timecreated, timemodified,
		       fullmessagetrust, customdata
		FROM messages
		WHERE conversationid = $1
		ORDER BY timecreated, id
	`
	var out []Message
	if err := r.db.SelectContext(ctx, &out, query, conversationID); err != nil {
		return nil, fmt.Errorf("list messages of conversation %d: %w", conversationID, err)
	}
	return out, nil
}
