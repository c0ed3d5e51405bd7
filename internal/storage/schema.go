package storage

import (
	"context"
	"fmt"
)

// Content tables carry at minimum the owning user_id; posts additionally
// carry the moderation status. The admin_keys table is mutated only through
// the redemption workflow.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id    VARCHAR(64)  PRIMARY KEY,
		username   VARCHAR(255) NOT NULL,
		is_admin   BOOLEAN      NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP    NOT NULL,
		updated_at TIMESTAMP    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_keys (
		key_code   VARCHAR(64) PRIMARY KEY,
		is_used    BOOLEAN     NOT NULL DEFAULT FALSE,
		used_by    VARCHAR(64) NULL,
		used_at    TIMESTAMP   NULL,
		created_at TIMESTAMP   NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id         VARCHAR(36)  PRIMARY KEY,
		user_id    VARCHAR(64)  NOT NULL,
		status     VARCHAR(16)  NOT NULL,
		content    TEXT         NOT NULL,
		created_at TIMESTAMP    NOT NULL,
		updated_at TIMESTAMP    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         VARCHAR(36)  PRIMARY KEY,
		post_id    VARCHAR(36)  NOT NULL,
		user_id    VARCHAR(64)  NOT NULL,
		content    TEXT         NOT NULL,
		created_at TIMESTAMP    NOT NULL,
		updated_at TIMESTAMP    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		id         VARCHAR(36) PRIMARY KEY,
		post_id    VARCHAR(36) NOT NULL,
		user_id    VARCHAR(64) NOT NULL,
		created_at TIMESTAMP   NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS retweets (
		id         VARCHAR(36) PRIMARY KEY,
		post_id    VARCHAR(36) NOT NULL,
		user_id    VARCHAR(64) NOT NULL,
		created_at TIMESTAMP   NOT NULL
	)`,
}

// CreateSchema creates all tables if they do not exist yet.
func (c *Client) CreateSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := c.exec(ctx, stmt, []any{}); err != nil {
			return fmt.Errorf("storage: create schema: %w", err)
		}
	}

	return nil
}
