// Package access answers capability checks against the role_capabilities table.
package access

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
)

// ErrDenied is returned when the caller lacks a required capability.
var ErrDenied = errors.New("access denied")

const (
	CapabilityCourse = "report/conversations:course"
	CapabilitySite   = "report/conversations:site"
)

type Level int

const (
	LevelSystem Level = 10
	LevelCourse Level = 50
)

// Scope is the context a capability is checked in.
type Scope struct {
	Level      Level
	InstanceID int
}

func SystemScope() Scope { return Scope{Level: LevelSystem} }

func CourseScope(courseID int) Scope { return Scope{Level: LevelCourse, InstanceID: courseID} }

func (s Scope) String() string {
	switch s.Level {
	case LevelSystem:
		return "system"
	case LevelCourse:
		return "course/" + strconv.Itoa(s.InstanceID)
	default:
		return "level" + strconv.Itoa(int(s.Level)) + "/" + strconv.Itoa(s.InstanceID)
	}
}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Covers reports whether a grant made in s applies to a check in target.
// A system-level grant covers every context.
func (s Scope) Covers(target Scope) bool {
	return s.Level == LevelSystem || s == target
}

// Allowed reports whether any of grants covers scope.
func Allowed(grants []Scope, scope Scope) bool {
	for _, g := range grants {
		if g.Covers(scope) {
			return true
		}
	}
	return false
}

// HasCapability reports whether the user holds capability in scope.
func (r *Repository) HasCapability(ctx context.Context, userID int, capability string, scope Scope) (bool, error) {
	if userID == 0 {
		return false, nil
	}

	query := `SELECT contextlevel, instanceid FROM role_capabilities
		WHERE userid = $1 AND capability = $2`

	var rows []struct {
		Level      int `db:"contextlevel"`
		InstanceID int `db:"instanceid"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, userID, capability); err != nil {
		return false, fmt.Errorf("check %s in %s: %w", capability, scope, err)
	}

	grants := make([]Scope, len(rows))
	for i, row := range rows {
		grants[i] = Scope{Level: Level(row.Level), InstanceID: row.InstanceID}
	}
	return Allowed(grants, scope), nil
}

func (r *Repository) Grant(ctx context.Context, userID int, capability string, scope Scope) error {
	query := `INSERT INTO role_capabilities (userid, capability, contextlevel, instanceid)
		VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, capability, int(scope.Level), scope.InstanceID)
	return err
}
