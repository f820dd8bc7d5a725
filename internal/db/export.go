package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ziadkadry99/glossary/internal/glossary"
)

// ExportDocument replaces the stored glossary with doc in a single
// transaction. Row positions keep the document's display order.
func (d *DB) ExportDocument(ctx context.Context, doc *glossary.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning export: %w", err)
	}
	defer tx.Rollback()

	// Children first, so the clear works without foreign key enforcement.
	for _, table := range []string{"window_groups", "windows", "cards", "group_members", "card_groups", "subjects"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, s := range doc.Subjects {
		if err := exportSubject(ctx, tx, i, s); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func exportSubject(ctx context.Context, tx *sql.Tx, pos int, s glossary.Subject) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO subjects (id, position, code, title, description) VALUES (?, ?, ?, ?, ?)`,
		s.ID, pos, s.Code, s.Title, s.Description,
	); err != nil {
		return fmt.Errorf("inserting subject %s: %w", s.ID, err)
	}

	for gi, g := range s.Groups {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO card_groups (id, subject_id, position, title) VALUES (?, ?, ?, ?)`,
			g.ID, s.ID, gi, g.Title,
		); err != nil {
			return fmt.Errorf("inserting group %s: %w", g.ID, err)
		}
		for mi, name := range g.Members {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO group_members (group_id, position, name) VALUES (?, ?, ?)`,
				g.ID, mi, name,
			); err != nil {
				return fmt.Errorf("inserting member of %s: %w", g.ID, err)
			}
		}
		for ci, c := range g.Cards {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cards (id, group_id, subject_id, position, term_es, term_en, def_es, def_en, img)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				c.ID, g.ID, s.ID, ci, c.ES, c.EN, c.DefES, c.DefEN, c.Img,
			); err != nil {
				return fmt.Errorf("inserting card %s: %w", c.ID, err)
			}
		}
	}

	for wi, w := range s.Windows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO windows (subject_id, id, position, title) VALUES (?, ?, ?, ?)`,
			s.ID, w.ID, wi, w.Title,
		); err != nil {
			return fmt.Errorf("inserting window %s: %w", w.ID, err)
		}
		for gi, gid := range w.Groups {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO window_groups (subject_id, window_id, group_id, position) VALUES (?, ?, ?, ?)`,
				s.ID, w.ID, gid, gi,
			); err != nil {
				return fmt.Errorf("inserting window group %s/%s: %w", w.ID, gid, err)
			}
		}
	}
	return nil
}

// CountCards returns the number of stored cards.
func (d *DB) CountCards(ctx context.Context) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var n int
	err := d.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n)
	return n, err
}

// SubjectStats is a per-subject row count.
type SubjectStats struct {
	ID     string
	Code   string
	Title  string
	Groups int
	Cards  int
}

// Stats returns per-subject group and card counts in display order.
func (d *DB) Stats(ctx context.Context) ([]SubjectStats, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows, err := d.QueryContext(ctx, `
		SELECT s.id, s.code, s.title,
		       (SELECT COUNT(*) FROM card_groups g WHERE g.subject_id = s.id),
		       (SELECT COUNT(*) FROM cards c WHERE c.subject_id = s.id)
		FROM subjects s
		ORDER BY s.position`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	var out []SubjectStats
	for rows.Next() {
		var st SubjectStats
		if err := rows.Scan(&st.ID, &st.Code, &st.Title, &st.Groups, &st.Cards); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
