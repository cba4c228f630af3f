package repository // repository persists saved layout documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/seat-layout-editor/internal/model"
)

// ErrLayoutNotFound is returned when a layout lookup yields no rows.
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutRepo stores layout documents in the layouts and layout_seats
// tables.  A save replaces the whole seat set of the layout.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo constructs a LayoutRepo with the given DB handle.
func NewLayoutRepo(db *sql.DB) *LayoutRepo {
	return &LayoutRepo{db: db}
}

// Save upserts the layout header and rewrites its seats in one
// transaction.
func (r *LayoutRepo) Save(ctx context.Context, doc model.LayoutDocument) (err error) {
	if doc.ID == "" {
		return fmt.Errorf("save layout: %w", ErrInvalidDocument)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const upsert = `INSERT INTO layouts (id, name, regular_price, premium_price, vip_price, capacity, row_count, column_count)
	                VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	                ON DUPLICATE KEY UPDATE name = VALUES(name), regular_price = VALUES(regular_price),
	                premium_price = VALUES(premium_price), vip_price = VALUES(vip_price), capacity = VALUES(capacity),
	                row_count = VALUES(row_count), column_count = VALUES(column_count), updated_at = CURRENT_TIMESTAMP`
	if _, err = tx.ExecContext(ctx, upsert,
		doc.ID, doc.Name, doc.RegularPrice, doc.PremiumPrice, doc.VIPPrice,
		doc.Capacity, doc.RowCount, doc.ColumnCount,
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM layout_seats WHERE layout_id = ?`, doc.ID); err != nil {
		return err
	}
	err = insertSeatsTx(ctx, tx, doc.ID, doc.Seats)
	return err
}

// insertSeatsTx inserts all seats of a layout in a single statement.
// Passing an empty slice has no effect.
func insertSeatsTx(ctx context.Context, tx *sql.Tx, layoutID string, seats []model.DocumentSeat) error {
	if len(seats) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(`INSERT INTO layout_seats (layout_id, seat_id, seat_number, seat_type, price, row_index, column_index) VALUES `)
	args := make([]any, 0, len(seats)*7)
	for i, s := range seats {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, layoutID, s.ID, s.Number, s.Type, s.Price, s.Row, s.Column)
	}
	_, err := tx.ExecContext(ctx, b.String(), args...)
	return err
}

// GetByID loads a saved layout with its seats ordered row by row.
func (r *LayoutRepo) GetByID(ctx context.Context, id string) (*model.LayoutDocument, error) {
	const q = `SELECT id, name, regular_price, premium_price, vip_price, capacity, row_count, column_count
	           FROM layouts WHERE id = ?`
	var doc model.LayoutDocument
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&doc.ID, &doc.Name, &doc.RegularPrice, &doc.PremiumPrice, &doc.VIPPrice,
		&doc.Capacity, &doc.RowCount, &doc.ColumnCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}

	const sq = `SELECT seat_id, seat_number, seat_type, price, row_index, column_index
	            FROM layout_seats
	            WHERE layout_id = ?
	            ORDER BY row_index, column_index`
	rows, err := r.db.QueryContext(ctx, sq, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doc.Seats = []model.DocumentSeat{}
	for rows.Next() {
		var s model.DocumentSeat
		if err := rows.Scan(&s.ID, &s.Number, &s.Type, &s.Price, &s.Row, &s.Column); err != nil {
			return nil, err
		}
		doc.Seats = append(doc.Seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes a saved layout and its seats.
func (r *LayoutRepo) Delete(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM layout_seats WHERE layout_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrLayoutNotFound
	}
	return err
}
