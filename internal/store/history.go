package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Calculation is one evaluated expression, successful or not.
type Calculation struct {
	ID         string
	Expression string
	Result     string
	IsError    bool
	CreatedAt  time.Time
}

// HistoryRepository records evaluated expressions and serves recent ones.
type HistoryRepository struct {
	db *sql.DB
}

// History returns the calculation history repository for this store.
func (s *Store) History() *HistoryRepository {
	return &HistoryRepository{db: s.db}
}

// Record inserts a calculation. A missing ID is filled with a fresh UUID.
func (r *HistoryRepository) Record(c *Calculation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO calculations (id, expression, result, is_error, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Expression, c.Result, boolToInt(c.IsError), c.CreatedAt,
	)
	return err
}

// Recent returns up to limit calculations, newest first.
func (r *HistoryRepository) Recent(limit int) ([]*Calculation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(
		`SELECT id, expression, result, is_error, created_at
		 FROM calculations ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Calculation
	for rows.Next() {
		c := &Calculation{}
		var isError int
		if err := rows.Scan(&c.ID, &c.Expression, &c.Result, &isError, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.IsError = isError != 0
		out = append(out, c)
	}
	return out, rows.Err()
}

// Clear deletes all history rows.
func (r *HistoryRepository) Clear() error {
	_, err := r.db.Exec(`DELETE FROM calculations`)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
