package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// DSN builds the MySQL data source name.
func DSN(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)
}

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS layouts (
		id            CHAR(36)      NOT NULL PRIMARY KEY,
		name          VARCHAR(255)  NOT NULL,
		regular_price DECIMAL(10,2) NOT NULL,
		premium_price DECIMAL(10,2) NOT NULL,
		vip_price     DECIMAL(10,2) NOT NULL,
		capacity      INT           NOT NULL DEFAULT 0,
		row_count     INT           NOT NULL DEFAULT 0,
		column_count  INT           NOT NULL DEFAULT 0,
		created_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS layout_seats (
		layout_id    CHAR(36)      NOT NULL,
		seat_id      CHAR(36)      NOT NULL,
		seat_number  VARCHAR(16)   NOT NULL,
		seat_type    VARCHAR(16)   NOT NULL,
		price        DECIMAL(10,2) NOT NULL,
		row_index    INT           NOT NULL,
		column_index INT           NOT NULL,
		PRIMARY KEY (layout_id, seat_id),
		UNIQUE KEY uq_layout_cell (layout_id, row_index, column_index),
		CONSTRAINT fk_layout_seats_layout FOREIGN KEY (layout_id) REFERENCES layouts (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the tables used by the layout repository when they do
// not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
