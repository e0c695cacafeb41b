package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

type Database struct {
	Conn *sqlx.DB
}

func NewDatabase(dsn string) (*Database, error) {
	conn, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(5 * time.Minute)
	return &Database{Conn: conn}, nil
}

func (d *Database) Close() error {
	return d.Conn.Close()
}

// AutoMigrate creates the message store tables the report reads from.
// Timestamps are unix seconds.
func (d *Database) AutoMigrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            username VARCHAR(100) UNIQUE NOT NULL,
            password VARCHAR(255) NOT NULL,
            firstname VARCHAR(100) NOT NULL DEFAULT '',
            lastname VARCHAR(100) NOT NULL DEFAULT '',
            timecreated BIGINT NOT NULL DEFAULT 0
        )`,

		`CREATE TABLE IF NOT EXISTS course (
            id SERIAL PRIMARY KEY,
            fullname VARCHAR(254) NOT NULL DEFAULT '',
            shortname VARCHAR(255) NOT NULL DEFAULT ''
        )`,

		`CREATE TABLE IF NOT EXISTS message_conversations (
            id SERIAL PRIMARY KEY,
            type SMALLINT NOT NULL DEFAULT 1,
            name VARCHAR(255),
            convhash VARCHAR(40),
            component VARCHAR(100),
            itemtype VARCHAR(100),
            itemid BIGINT,
            contextid BIGINT,
            enabled SMALLINT NOT NULL DEFAULT 0,
            timecreated BIGINT NOT NULL,
            timemodified BIGINT
        )`,

		`CREATE TABLE IF NOT EXISTS message_conversation_members (
            id SERIAL PRIMARY KEY,
            conversationid INT REFERENCES message_conversations(id) ON DELETE CASCADE,
            userid INT NOT NULL,
            timecreated BIGINT NOT NULL DEFAULT 0
        )`,

		`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            useridfrom INT NOT NULL,
            conversationid INT REFERENCES message_conversations(id) ON DELETE CASCADE,
            subject TEXT,
            fullmessage TEXT,
            fullmessageformat SMALLINT NOT NULL DEFAULT 0,
            fullmessagehtml TEXT,
            smallmessage TEXT,
            timecreated BIGINT NOT NULL,
            timemodified BIGINT,
            fullmessagetrust SMALLINT NOT NULL DEFAULT 0,
            customdata TEXT
        )`,

		`CREATE TABLE IF NOT EXISTS role_capabilities (
            id SERIAL PRIMARY KEY,
            userid INT REFERENCES users(id) ON DELETE CASCADE,
            capability VARCHAR(255) NOT NULL,
            contextlevel SMALLINT NOT NULL,
            instanceid BIGINT NOT NULL DEFAULT 0,
            UNIQUE (userid, capability, contextlevel, instanceid)
        )`,

		`CREATE INDEX IF NOT EXISTS messages_conversation_time_idx
            ON messages (conversationid, timecreated)`,

		`CREATE INDEX IF NOT EXISTS members_conversation_idx
            ON message_conversation_members (conversationid)`,
	}

	for _, query := range queries {
		_, err := d.Conn.Exec(query)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
