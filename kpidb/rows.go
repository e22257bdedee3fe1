package kpidb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"scorecard.bizops.dev/internal/kpi"
	"scorecard.bizops.dev/internal/logging"
)

// ValueUpdate is one entry of the update audit log.
type ValueUpdate struct {
	ID           string    `json:"id"`
	BusinessUnit string    `json:"businessUnit"`
	Month        kpi.Month `json:"month"`
	KPI          string    `json:"kpi"`
	Subdivision  string    `json:"subdivision,omitempty"`
	OldValue     float64   `json:"oldValue"`
	NewValue     float64   `json:"newValue"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ReplaceRows swaps the stored table for rows in a single transaction. Row
// order is kept so that "first match" lookups agree with the file.
func (c *Client) ReplaceRows(ctx context.Context, rows []kpi.Row) (err error) {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "replace_rows")

	if _, err := tx.ExecContext(ctx, `DELETE FROM kpi_rows`); err != nil {
		return fmt.Errorf("error clearing kpi rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO kpi_rows (position, business_unit, month, perspective, kpi, subdivision, value)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer logging.SafeCloseWithLogging(stmt, c.logger, "replace_rows_statement")

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, i, r.BusinessUnit, int(r.Month), string(r.Perspective), r.KPI, r.Subdivision, r.Value); err != nil {
			return fmt.Errorf("error inserting row %d (%s): %w", i, r.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	logging.LogOperation(c.logger, "kpi_rows_replaced", slog.Int("rows", len(rows)))
	return nil
}

// ListRows returns the stored rows in their original order.
func (c *Client) ListRows(ctx context.Context) ([]kpi.Row, error) {
	rs, err := c.DB.QueryContext(ctx, `
		SELECT business_unit, month, perspective, kpi, subdivision, value
		FROM kpi_rows ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rs.Close() // nolint:errcheck

	rows := []kpi.Row{}
	for rs.Next() {
		var r kpi.Row
		var month int
		var perspective string
		if err := rs.Scan(&r.BusinessUnit, &month, &perspective, &r.KPI, &r.Subdivision, &r.Value); err != nil {
			return nil, err
		}
		r.Month = kpi.Month(month)
		r.Perspective = kpi.Perspective(perspective)
		rows = append(rows, r)
	}
	return rows, rs.Err()
}

// RowCount returns the number of stored rows.
func (c *Client) RowCount(ctx context.Context) (int, error) {
	var n int
	err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM kpi_rows`).Scan(&n)
	return n, err
}

// UpdateValue overwrites the row a scalar lookup of (bu, month, kpi) reads
// and records the change in the audit log. It reports false when no row
// matches, in which case nothing is written.
func (c *Client) UpdateValue(ctx context.Context, bu, kpiName string, month kpi.Month, value float64) (updated bool, err error) {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "update_value")

	var position int
	var subdivision string
	var old float64
	err = tx.QueryRowContext(ctx, `
		SELECT position, subdivision, value FROM kpi_rows
		WHERE business_unit = ? AND month = ? AND kpi = ?
		ORDER BY position LIMIT 1`, bu, int(month), kpiName).Scan(&position, &subdivision, &old)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error finding kpi row: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE kpi_rows SET value = ? WHERE position = ?`, value, position); err != nil {
		return false, fmt.Errorf("error updating kpi row: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO value_updates (id, business_unit, month, kpi, subdivision, old_value, new_value, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), bu, int(month), kpiName, subdivision, old, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return false, fmt.Errorf("error recording value update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("error committing transaction: %w", err)
	}
	return true, nil
}

// ListUpdates returns the most recent audit entries, newest first.
func (c *Client) ListUpdates(ctx context.Context, limit int) ([]ValueUpdate, error) {
	if limit <= 0 {
		limit = 50
	}
	rs, err := c.DB.QueryContext(ctx, `
		SELECT id, business_unit, month, kpi, subdivision, old_value, new_value, updated_at
		FROM value_updates ORDER BY updated_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rs.Close() // nolint:errcheck

	updates := []ValueUpdate{}
	for rs.Next() {
		var u ValueUpdate
		var month int
		var at string
		if err := rs.Scan(&u.ID, &u.BusinessUnit, &month, &u.KPI, &u.Subdivision, &u.OldValue, &u.NewValue, &at); err != nil {
			return nil, err
		}
		u.Month = kpi.Month(month)
		u.UpdatedAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("error parsing update time %q: %w", at, err)
		}
		updates = append(updates, u)
	}
	return updates, rs.Err()
}
