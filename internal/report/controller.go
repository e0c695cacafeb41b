package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"conversation-report/internal/access"
	"conversation-report/internal/user"
)

type Store interface {
	GetCourse(ctx context.Context, id int) (*Course, error)
	ListConversations(ctx context.Context) ([]Conversation, error)
	ListMembers(ctx context.Context, conversationID int) ([]Member, error)
	ListMessages(ctx context.Context, conversationID int) ([]Message, error)
}

type Authorizer interface {
	HasCapability(ctx context.Context, userID int, capability string, scope access.Scope) (bool, error)
}

type Translator interface {
	Translate(key string) string
}

// Request selects what the report lists. Nil ids mean "not given".
type Request struct {
	CourseID       *int
	ConversationID *int
	CallerID       int
}

type Controller struct {
	store Store
	users user.Lookup
	auth  Authorizer
	loc   *time.Location
}

func NewController(store Store, users user.Lookup, auth Authorizer, loc *time.Location) *Controller {
	if loc == nil {
		loc = time.Local
	}
	return &Controller{store: store, users: users, auth: auth, loc: loc}
}

// Render authorizes the caller and builds either the conversation list or,
// when a conversation is selected, its messages.
func (c *Controller) Render(ctx context.Context, req Request, tr Translator) (*Page, error) {
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	page := &Page{
		Title:   tr.Translate("pagetitle"),
		Heading: tr.Translate("pageheading"),
	}
	memo := NewUserMemo(c.users)

	var err error
	if req.ConversationID == nil {
		page.Body, err = c.conversationsBody(ctx, req, memo, tr)
	} else {
		page.Body, err = c.messagesBody(ctx, req, memo, tr)
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (c *Controller) authorize(ctx context.Context, req Request) error {
	capability, scope := access.CapabilitySite, access.SystemScope()
	if req.CourseID != nil {
		if _, err := c.store.GetCourse(ctx, *req.CourseID); err != nil {
			return err
		}
		capability, scope = access.CapabilityCourse, access.CourseScope(*req.CourseID)
	}

	if req.CallerID == 0 {
		return fmt.Errorf("not logged in: %w", access.ErrDenied)
	}
	return c.require(ctx, req.CallerID, capability, scope)
}

func (c *Controller) require(ctx context.Context, userID int, capability string, scope access.Scope) error {
	ok, err := c.auth.HasCapability(ctx, userID, capability, scope)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %d lacks %s in %s: %w", userID, capability, scope, access.ErrDenied)
	}
	return nil
}

func (c *Controller) conversationsBody(ctx context.Context, req Request, memo *UserMemo, tr Translator) (string, error) {
	convs, err := c.store.ListConversations(ctx)
	if err != nil {
		return "", err
	}

	records := make([]DisplayRecord, 0, len(convs))
	for _, conv := range convs {
		members, err := c.store.ListMembers(ctx, conv.ID)
		if err != nil {
			return "", err
		}
		list, err := memberList(ctx, members, memo, tr)
		if err != nil {
			return "", err
		}
		records = append(records, c.conversationRecord(conv, list, req.CourseID, tr))
	}

	return RenderTable(records)
}

func (c *Controller) conversationRecord(conv Conversation, members string, courseID *int, tr Translator) DisplayRecord {
	id := conv.ID
	href := reportURL(courseID, &id)

	return DisplayRecord{
		{"id", link(href, strconv.Itoa(conv.ID))},
		{"type", typeLabel(conv.Type, tr)},
		{"name", link(href, nullString(conv.Name))},
		{"component", nullString(conv.Component)},
		{"itemtype", nullString(conv.ItemType)},
		{"itemid", nullInt(conv.ItemID)},
		{"contextid", nullInt(conv.ContextID)},
		{"enabled", strconv.Itoa(conv.Enabled)},
		{"timecreated", formatTime(conv.TimeCreated, c.loc)},
		{"timemodified", formatNullTime(conv.TimeModified, c.loc)},
		{"members", members},
	}
}

// memberList renders one profile link per distinct member, separated by ", ".
func memberList(ctx context.Context, members []Member, memo *UserMemo, tr Translator) (string, error) {
	seen := make(map[int]bool, len(members))
	links := make([]string, 0, len(members))
	for _, m := range members {
		if seen[m.UserID] {
			continue
		}
		seen[m.UserID] = true

		u, err := memo.Get(ctx, m.UserID)
		if err != nil {
			return "", err
		}
		links = append(links, userLink(m.UserID, u, tr))
	}
	return strings.Join(links, ", "), nil
}

// userLink links to a profile, falling back to the not-found label for unknown users.
func userLink(userID int, u *user.User, tr Translator) string {
	name := tr.Translate("usernotfound")
	if u != nil {
		name = u.FullName()
	}
	return link(profileURL(userID), escape(name))
}

func (c *Controller) messagesBody(ctx context.Context, req Request, memo *UserMemo, tr Translator) (string, error) {
	msgs, err := c.store.ListMessages(ctx, *req.ConversationID)
	if err != nil {
		return "", err
	}

	var body string
	if len(msgs) == 0 {
		body = `<p class="alert alert-info">` + escape(tr.Translate("nomessagesfounderror")) + `</p>`
	} else {
		records := make([]DisplayRecord, 0, len(msgs))
		for _, m := range msgs {
			sender, err := memo.Get(ctx, m.UserIDFrom)
			if err != nil {
				return "", err
			}
			records = append(records, c.messageRecord(m, sender, tr))
		}
		if body, err = RenderTable(records); err != nil {
			return "", err
		}
	}

	back := link(reportURL(req.CourseID, nil), escape(tr.Translate("returntoreport")))
	return body + "<br>" + back, nil
}

func (c *Controller) messageRecord(m Message, sender *user.User, tr Translator) DisplayRecord {
	return DisplayRecord{
		{"id", strconv.Itoa(m.ID)},
		{"useridfrom", userLink(m.UserIDFrom, sender, tr)},
		{"conversationid", strconv.Itoa(m.ConversationID)},
		{"subject", nullString(m.Subject)},
		{"fullmessage", nullString(m.FullMessage)},
		{"timecreated", formatTime(m.TimeCreated, c.loc)},
		{"timemodified", formatNullTime(m.TimeModified, c.loc)},
	}
}

// CourseNavigation returns the report's entry for a course menu, or nothing
// when the caller cannot view conversations in that course.
func (c *Controller) CourseNavigation(ctx context.Context, callerID, courseID int, tr Translator) ([]NavNode, error) {
	if _, err := c.store.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	ok, err := c.auth.HasCapability(ctx, callerID, access.CapabilityCourse, access.CourseScope(courseID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []NavNode{}, nil
	}

	return []NavNode{{
		Title: tr.Translate("pluginname"),
		URL:   reportURL(&courseID, nil),
		Type:  "setting",
	}}, nil
}
