package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jask/catalog/internal/content"
)

var (
	// ErrNotFound is returned by Get when no item has the requested id.
	ErrNotFound = errors.New("content item not found")
	// ErrInvalidLimit is returned by Latest for a non-positive limit.
	ErrInvalidLimit = errors.New("limit must be positive")
)

// ContentRepo stores catalog items. Variant specific fields live in
// item_attrs, commit metadata in git_info.
type ContentRepo struct {
	db *sql.DB
}

func NewContentRepo(db *sql.DB) *ContentRepo { return &ContentRepo{db: db} }

const selectItems = `
	SELECT c.variant, c.id, c.title, c.description, c.body, c.path, c.updated_at,
	       g.item_id, g.author, g.author_email, g.created_date, g.last_modified_date,
	       g.commit_hash, g.commit_message
	FROM content_items c
	LEFT JOIN git_info g ON g.variant = c.variant AND g.item_id = c.id`

// Upsert inserts or replaces items in a single transaction.
func (r *ContentRepo) Upsert(ctx context.Context, items ...content.Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := upsertItem(ctx, tx, item); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func upsertItem(ctx context.Context, tx *sql.Tx, item content.Item) error {
	meta := item.Info()
	v := item.Variant()
	if meta.ID == "" {
		return fmt.Errorf("upsert %s: id is required", v)
	}
	updated := meta.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	if _, err := tx.ExecContext(ctx, `
	INSERT INTO content_items(variant, id, title, description, body, path, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(variant, id) DO UPDATE SET
	 title=excluded.title, description=excluded.description, body=excluded.body,
	 path=excluded.path, updated_at=excluded.updated_at;
	`, string(v), meta.ID, meta.Title, meta.Description, meta.Body, meta.Path, updated.UTC()); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", v, meta.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_attrs WHERE variant = ? AND item_id = ?`, string(v), meta.ID); err != nil {
		return err
	}
	for _, a := range attrsOf(item) {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO item_attrs(variant, item_id, name, position, value) VALUES(?, ?, ?, ?, ?)
		`, string(v), meta.ID, a.name, a.position, a.value); err != nil {
			return fmt.Errorf("upsert %s/%s attr %s: %w", v, meta.ID, a.name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM git_info WHERE variant = ? AND item_id = ?`, string(v), meta.ID); err != nil {
		return err
	}
	if g := meta.Git; g != nil {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO git_info(variant, item_id, author, author_email, created_date, last_modified_date, commit_hash, commit_message)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		`, string(v), meta.ID, g.Author, g.AuthorEmail, nullTime(g.CreatedDate), nullTime(g.LastModifiedDate),
			g.CommitHash, g.CommitMessage); err != nil {
			return fmt.Errorf("upsert %s/%s git info: %w", v, meta.ID, err)
		}
	}
	return nil
}

// AllOfVariant lists every item of one variant ordered by title.
func (r *ContentRepo) AllOfVariant(ctx context.Context, v content.Variant) ([]content.Item, error) {
	if _, err := content.ParseVariant(string(v)); err != nil {
		return nil, err
	}
	return r.query(ctx, selectItems+` WHERE c.variant = ? ORDER BY c.title COLLATE NOCASE, c.id`, string(v))
}

func (r *ContentRepo) AllPrompts(ctx context.Context) ([]*content.Prompt, error) {
	return allAs[*content.Prompt](ctx, r, content.VariantPrompt)
}

func (r *ContentRepo) AllAgents(ctx context.Context) ([]*content.Agent, error) {
	return allAs[*content.Agent](ctx, r, content.VariantAgent)
}

func (r *ContentRepo) AllPowers(ctx context.Context) ([]*content.Power, error) {
	return allAs[*content.Power](ctx, r, content.VariantPower)
}

func (r *ContentRepo) AllHooks(ctx context.Context) ([]*content.Hook, error) {
	return allAs[*content.Hook](ctx, r, content.VariantHook)
}

func (r *ContentRepo) AllSteeringDocs(ctx context.Context) ([]*content.SteeringDoc, error) {
	return allAs[*content.SteeringDoc](ctx, r, content.VariantSteering)
}

func allAs[T content.Item](ctx context.Context, r *ContentRepo, v content.Variant) ([]T, error) {
	items, err := r.AllOfVariant(ctx, v)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		typed, ok := item.(T)
		if !ok {
			return nil, fmt.Errorf("%w: %s/%s", content.ErrVariantMismatch, v, item.Info().ID)
		}
		out = append(out, typed)
	}
	return out, nil
}

// Latest returns up to limit items across all variants, most recently
// modified first. Git modification dates win over the stored update time.
func (r *ContentRepo) Latest(ctx context.Context, limit int) ([]content.Item, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("latest %d: %w", limit, ErrInvalidLimit)
	}
	return r.query(ctx, selectItems+`
	ORDER BY COALESCE(g.last_modified_date, c.updated_at) DESC, c.variant, c.id
	LIMIT ?`, limit)
}

// Get loads a single item.
func (r *ContentRepo) Get(ctx context.Context, v content.Variant, id string) (content.Item, error) {
	items, err := r.query(ctx, selectItems+` WHERE c.variant = ? AND c.id = ?`, string(v), id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s/%s: %w", v, id, ErrNotFound)
	}
	return items[0], nil
}

// Prune deletes items of v whose id is not in keep and returns how many went.
func (r *ContentRepo) Prune(ctx context.Context, v content.Variant, keep []string) (int, error) {
	ids, err := r.ids(ctx, v)
	if err != nil {
		return 0, err
	}
	keepSet := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		keepSet[id] = struct{}{}
	}
	removed := 0
	for _, id := range ids {
		if _, ok := keepSet[id]; ok {
			continue
		}
		if _, err := r.db.ExecContext(ctx, `DELETE FROM content_items WHERE variant = ? AND id = ?`, string(v), id); err != nil {
			return removed, fmt.Errorf("prune %s/%s: %w", v, id, err)
		}
		removed++
	}
	return removed, nil
}

// Counts returns the number of stored items per variant. Variants without
// items are present with zero.
func (r *ContentRepo) Counts(ctx context.Context) (map[content.Variant]int, error) {
	out := make(map[content.Variant]int, len(content.Variants()))
	for _, v := range content.Variants() {
		out[v] = 0
	}
	rows, err := r.db.QueryContext(ctx, `SELECT variant, COUNT(*) FROM content_items GROUP BY variant`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var v string
		var n int
		if err := rows.Scan(&v, &n); err != nil {
			return nil, err
		}
		out[content.Variant(v)] = n
	}
	return out, rows.Err()
}

func (r *ContentRepo) ids(ctx context.Context, v content.Variant) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM content_items WHERE variant = ?`, string(v))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

type row struct {
	variant content.Variant
	meta    content.Meta
}

// query scans item rows first and loads attributes afterwards; the pool has a
// single connection so rows must be closed before the next query.
func (r *ContentRepo) query(ctx context.Context, q string, args ...interface{}) ([]content.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	var scanned []row
	for rows.Next() {
		rw, err := scanRow(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		scanned = append(scanned, rw)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	out := make([]content.Item, 0, len(scanned))
	for _, rw := range scanned {
		attrs, err := r.attrs(ctx, rw.variant, rw.meta.ID)
		if err != nil {
			return nil, err
		}
		item, err := build(rw.variant, rw.meta, attrs)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func scanRow(rows *sql.Rows) (row, error) {
	var (
		rw                    row
		variant               string
		gitID, author, email  sql.NullString
		hash, message         sql.NullString
		created, lastModified sql.NullTime
	)
	if err := rows.Scan(&variant, &rw.meta.ID, &rw.meta.Title, &rw.meta.Description, &rw.meta.Body,
		&rw.meta.Path, &rw.meta.UpdatedAt, &gitID, &author, &email, &created, &lastModified,
		&hash, &message); err != nil {
		return row{}, err
	}
	rw.variant = content.Variant(variant)
	rw.meta.Type = rw.variant
	rw.meta.UpdatedAt = rw.meta.UpdatedAt.UTC()
	if gitID.Valid {
		rw.meta.Git = &content.GitInfo{
			Author:        author.String,
			AuthorEmail:   email.String,
			CommitHash:    hash.String,
			CommitMessage: message.String,
		}
		if created.Valid {
			rw.meta.Git.CreatedDate = created.Time.UTC()
		}
		if lastModified.Valid {
			rw.meta.Git.LastModifiedDate = lastModified.Time.UTC()
		}
	}
	return rw, nil
}

func (r *ContentRepo) attrs(ctx context.Context, v content.Variant, id string) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT name, value FROM item_attrs WHERE variant = ? AND item_id = ? ORDER BY name, position
	`, string(v), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string][]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		out[name] = append(out[name], value)
	}
	return out, rows.Err()
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
