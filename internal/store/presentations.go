package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"slidegen/internal/logging"
	"slidegen/internal/metrics"
	"slidegen/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

const presentationsSchema = `
CREATE TABLE IF NOT EXISTS presentations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	summary TEXT,
	language TEXT DEFAULT 'english',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS sections (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	presentation_id INTEGER,
	title TEXT NOT NULL,
	order_index INTEGER,
	FOREIGN KEY (presentation_id) REFERENCES presentations (id) ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS slides (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	section_id INTEGER,
	title TEXT NOT NULL,
	content TEXT,
	order_index INTEGER,
	FOREIGN KEY (section_id) REFERENCES sections (id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_sections_presentation ON sections(presentation_id);
CREATE INDEX IF NOT EXISTS idx_slides_section ON slides(section_id);
`

// presentationColumns extend the first schema, whose databases may already
// exist on disk.
var presentationColumns = []column{
	{"presentations", "title_slide_header", "TEXT DEFAULT ''"},
	{"presentations", "max_sections", "INTEGER DEFAULT 0"},
	{"presentations", "max_slides", "INTEGER DEFAULT 0"},
	{"presentations", "generated", "INTEGER DEFAULT 0"},
	{"presentations", "snapshot", "TEXT"},
}

// Summary is a row of the presentation list.
type Summary struct {
	ID        int64
	Title     string
	Language  string
	Sections  int
	Slides    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Presentations stores outlines. It is safe for use by one process.
type Presentations struct {
	db      *sql.DB
	mu      sync.Mutex
	metrics *metrics.Recorder
}

// OpenPresentations opens (and creates or upgrades) the presentation
// database at path; ":memory:" gives a private in-memory database.
func OpenPresentations(path string, rec *metrics.Recorder) (*Presentations, error) {
	timer := logging.StartTimer(logging.CategoryStore, "OpenPresentations")
	defer timer.Stop()

	db, err := open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(presentationsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := migrate(db, presentationColumns); err != nil {
		db.Close()
		return nil, err
	}
	logging.Store("Presentation store ready at %s", path)
	return &Presentations{db: db, metrics: rec}, nil
}

// Close closes the database.
func (s *Presentations) Close() error {
	return s.db.Close()
}

func (s *Presentations) record(op string, err error) {
	s.metrics.StoreOp(op, err)
	if err != nil && !errors.Is(err, ErrNotFound) {
		logging.StoreError("%s failed: %v", op, err)
	}
}

// Save inserts p and its sections and slides in one transaction and sets
// p.ID.
func (s *Presentations) Save(ctx context.Context, p *model.Presentation) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.record("save", err) }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO presentations (title, summary, language, title_slide_header, max_sections, max_slides, generated, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Summary, p.Language, p.TitleSlideHeader, p.MaxSections, p.MaxSlides, p.Generated,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert presentation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read presentation id: %w", err)
	}

	saved := *p
	saved.ID = id
	if err := writeTree(ctx, tx, &saved); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	p.ID = id
	logging.StoreDebug("Saved presentation %d (%q, %d sections)", id, p.Title, len(p.Sections))
	return nil
}

// Update overwrites the stored row, sections and slides of p.ID.
func (s *Presentations) Update(ctx context.Context, p *model.Presentation) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.record("update", err) }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE presentations
		 SET title = ?, summary = ?, language = ?, title_slide_header = ?, max_sections = ?,
		     max_slides = ?, generated = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Summary, p.Language, p.TitleSlideHeader, p.MaxSections, p.MaxSlides, p.Generated,
		formatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update presentation %d: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE presentation_id = ?`, p.ID); err != nil {
		return fmt.Errorf("failed to clear sections of %d: %w", p.ID, err)
	}
	if err := writeTree(ctx, tx, p); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	logging.StoreDebug("Updated presentation %d", p.ID)
	return nil
}

// writeTree inserts the sections and slides of p and stores its snapshot.
func writeTree(ctx context.Context, tx *sql.Tx, p *model.Presentation) error {
	for i, section := range p.Sections {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO sections (presentation_id, title, order_index) VALUES (?, ?, ?)`,
			p.ID, section.Title, i)
		if err != nil {
			return fmt.Errorf("failed to insert section %d: %w", i, err)
		}
		sectionID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read section id: %w", err)
		}
		for j, slide := range section.Slides {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO slides (section_id, title, content, order_index) VALUES (?, ?, ?, ?)`,
				sectionID, slide.Title, slide.Content, j); err != nil {
				return fmt.Errorf("failed to insert slide %d of section %d: %w", j, i, err)
			}
		}
	}

	snapshot, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE presentations SET snapshot = ? WHERE id = ?`, string(snapshot), p.ID); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// Get loads presentation id from its snapshot, or from the relational rows
// when the row has no snapshot.
func (s *Presentations) Get(ctx context.Context, id int64) (p *model.Presentation, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.record("get", err) }()

	var (
		title, created, updated                 string
		summary, language, header, snapshotText sql.NullString
		maxSections, maxSlides                  sql.NullInt64
		generated                               sql.NullBool
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT title, summary, language, title_slide_header, max_sections, max_slides, generated,
		        snapshot, created_at, updated_at
		 FROM presentations WHERE id = ?`, id).
		Scan(&title, &summary, &language, &header, &maxSections, &maxSlides, &generated,
			&snapshotText, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load presentation %d: %w", id, err)
	}

	if snapshotText.Valid && snapshotText.String != "" {
		var snap model.Presentation
		if err := json.Unmarshal([]byte(snapshotText.String), &snap); err != nil {
			return nil, fmt.Errorf("malformed snapshot for presentation %d: %w", id, err)
		}
		snap.ID = id
		snap.UpdatedAt = parseTime(updated)
		return &snap, nil
	}

	logging.StoreDebug("Presentation %d has no snapshot, rebuilding from rows", id)
	p = &model.Presentation{
		ID:               id,
		Title:            title,
		Summary:          summary.String,
		Language:         language.String,
		TitleSlideHeader: header.String,
		MaxSections:      int(maxSections.Int64),
		MaxSlides:        int(maxSlides.Int64),
		Generated:        generated.Bool,
		CreatedAt:        parseTime(created),
		UpdatedAt:        parseTime(updated),
	}
	if p.Sections, err = s.loadSections(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Presentations) loadSections(ctx context.Context, id int64) ([]model.Section, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.title, sl.title, sl.content
		 FROM sections s LEFT JOIN slides sl ON sl.section_id = s.id
		 WHERE s.presentation_id = ?
		 ORDER BY s.order_index, s.id, sl.order_index, sl.id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load sections of %d: %w", id, err)
	}
	defer rows.Close()

	var sections []model.Section
	lastID := int64(-1)
	for rows.Next() {
		var sectionID int64
		var sectionTitle string
		var slideTitle, content sql.NullString
		if err := rows.Scan(&sectionID, &sectionTitle, &slideTitle, &content); err != nil {
			return nil, fmt.Errorf("failed to scan section row: %w", err)
		}
		if sectionID != lastID {
			sections = append(sections, model.Section{Title: sectionTitle})
			lastID = sectionID
		}
		if slideTitle.Valid {
			sections[len(sections)-1].AddSlide(model.Slide{Title: slideTitle.String, Content: content.String})
		}
	}
	return sections, rows.Err()
}

// List returns all presentations, most recently updated first.
func (s *Presentations) List(ctx context.Context) (out []Summary, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.record("list", err) }()

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.title, COALESCE(p.language, ''), p.created_at, p.updated_at,
		        (SELECT COUNT(*) FROM sections s WHERE s.presentation_id = p.id),
		        (SELECT COUNT(*) FROM slides sl JOIN sections s ON sl.section_id = s.id
		          WHERE s.presentation_id = p.id)
		 FROM presentations p
		 ORDER BY p.updated_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sum Summary
		var created, updated string
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Language, &created, &updated, &sum.Sections, &sum.Slides); err != nil {
			return nil, fmt.Errorf("failed to scan presentation row: %w", err)
		}
		sum.CreatedAt, sum.UpdatedAt = parseTime(created), parseTime(updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a presentation with its sections and slides.
func (s *Presentations) Delete(ctx context.Context, id int64) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.record("delete", err) }()

	res, err := s.db.ExecContext(ctx, `DELETE FROM presentations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete presentation %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	logging.Store("Deleted presentation %d", id)
	return nil
}

// ClearAll removes every presentation and returns how many there were.
func (s *Presentations) ClearAll(ctx context.Context) (n int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.record("clear", err) }()

	res, err := s.db.ExecContext(ctx, `DELETE FROM presentations`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear presentations: %w", err)
	}
	n, _ = res.RowsAffected()
	logging.Store("Cleared %d presentations", n)
	return n, nil
}
