package report

import "database/sql"

// Conversation types as stored in message_conversations.type.
const (
	TypeIndividual = 1
	TypeGroup      = 2
	TypeSelf       = 3
)

type Course struct {
	ID        int    `db:"id"`
	FullName  string `db:"fullname"`
	ShortName string `db:"shortname"`
}

type Conversation struct {
	ID           int            `db:"id"`
	Type         int            `db:"type"`
	Name         sql.NullString `db:"name"`
	ConvHash     sql.NullString `db:"convhash"`
	Component    sql.NullString `db:"component"`
	ItemType     sql.NullString `db:"itemtype"`
	ItemID       sql.NullInt64  `db:"itemid"`
	ContextID    sql.NullInt64  `db:"contextid"`
	Enabled      int            `db:"enabled"`
	TimeCreated  int64          `db:"timecreated"`
	TimeModified sql.NullInt64  `db:"timemodified"`
}

type Member struct {
	ID             int   `db:"id"`
	ConversationID int   `db:"conversationid"`
	UserID         int   `db:"userid"`
	TimeCreated    int64 `db:"timecreated"`
}

type Message struct {
	ID                int            `db:"id"`
	UserIDFrom        int            `db:"useridfrom"`
	ConversationID    int            `db:"conversationid"`
	Subject           sql.NullString `db:"subject"`
	FullMessage       sql.NullString `db:"fullmessage"`
	FullMessageFormat int            `db:"fullmessageformat"`
	FullMessageHTML   sql.NullString `db:"fullmessagehtml"`
	SmallMessage      sql.NullString `db:"smallmessage"`
	TimeCreated       int64          `db:"timecreated"`
	TimeModified      sql.NullInt64  `db:"timemodified"`
	FullMessageTrust  int            `db:"fullmessagetrust"`
	CustomData        sql.NullString `db:"customdata"`
}

// Field is one rendered column of a DisplayRecord.
type Field struct {
	Name  string
	Value string
}

// DisplayRecord is a render-ready row: ordered column names with formatted HTML values.
type DisplayRecord []Field

func (d DisplayRecord) Columns() []string {
	cols := make([]string, len(d))
	for i, f := range d {
		cols[i] = f.Name
	}
	return cols
}

// Page is the output of one report request.
type Page struct {
	Title   string
	Heading string
	Body    string
}

// NavNode is an entry added to a course's navigation menu.
type NavNode struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}
