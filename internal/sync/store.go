// Package sync persists analysis results to a SQLite database for
// external dashboarding.
//
// The analyzer is unaware of this layer: the tool layer pushes
// AnalysisResult-shaped data here after an analysis run. Every sync
// replaces the project's previous rows wholesale, mirroring how the
// in-memory analysis itself is replaced on each run.
package sync

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/offbench/discovery-mcp/internal/analysis"
	"github.com/offbench/discovery-mcp/internal/project"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// Config holds sync store configuration.
type Config struct {
	// Path is the SQLite database file. Parent directories are created
	// as needed.
	Path string
}

// Store persists analysis snapshots per project.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the sync database and runs migrations.
func New(cfg Config) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sync: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("sync: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("sync: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("sync: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS projects (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT,
			synced_at   TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS analyses (
			project_id         TEXT PRIMARY KEY,
			clarity_score      REAL NOT NULL,
			completeness_score REAL NOT NULL,
			alignment_score    REAL NOT NULL,
			overall_confidence REAL NOT NULL,
			client_name        TEXT,
			systems            TEXT,
			synced_at          TEXT NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE TABLE IF NOT EXISTS gaps (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id         TEXT NOT NULL,
			category           TEXT NOT NULL,
			description        TEXT NOT NULL,
			impact             TEXT,
			priority           TEXT NOT NULL,
			suggested_question TEXT,
			answered           INTEGER NOT NULL DEFAULT 0,
			answer             TEXT,
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE TABLE IF NOT EXISTS ambiguities (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id           TEXT NOT NULL,
			term                 TEXT NOT NULL,
			context              TEXT,
			clarification_needed TEXT,
			clarification        TEXT,
			priority             TEXT NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE TABLE IF NOT EXISTS conflicts (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id        TEXT NOT NULL,
			topic             TEXT NOT NULL,
			statements        TEXT NOT NULL,
			sources           TEXT NOT NULL,
			resolution_needed TEXT,
			resolution        TEXT,
			priority          TEXT NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE TABLE IF NOT EXISTS documents (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id TEXT NOT NULL,
			file_path  TEXT NOT NULL,
			doc_type   TEXT NOT NULL,
			source     TEXT NOT NULL,
			subject    TEXT,
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE TABLE IF NOT EXISTS questions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id TEXT NOT NULL,
			priority   TEXT NOT NULL,
			category   TEXT NOT NULL,
			question   TEXT NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE INDEX IF NOT EXISTS idx_gaps_project        ON gaps(project_id);
		CREATE INDEX IF NOT EXISTS idx_ambiguities_project ON ambiguities(project_id);
		CREATE INDEX IF NOT EXISTS idx_conflicts_project   ON conflicts(project_id);
		CREATE INDEX IF NOT EXISTS idx_documents_project   ON documents(project_id);
		CREATE INDEX IF NOT EXISTS idx_questions_project   ON questions(project_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// statementSeparator joins multi-value conflict fields for storage.
// Statements never contain it: they are sentence fragments split on ".".
const statementSeparator = "\x1f"

// SyncAnalysis replaces the stored snapshot for a project with the
// current state and analysis, in one transaction.
func (s *Store) SyncAnalysis(state *project.State, result *analysis.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sync: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := timeNow().UTC().Format(time.RFC3339)

	if _, err := tx.Exec(
		`INSERT INTO projects (id, name, description, synced_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name,
		                               description = excluded.description,
		                               synced_at = excluded.synced_at`,
		state.ID, state.Name, state.Description, now,
	); err != nil {
		return fmt.Errorf("sync: upsert project: %w", err)
	}

	// Wholesale replacement: clear previous rows for this project.
	for _, table := range []string{"analyses", "gaps", "ambiguities", "conflicts", "documents", "questions"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE project_id = ?", state.ID); err != nil {
			return fmt.Errorf("sync: clear %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO analyses (project_id, clarity_score, completeness_score, alignment_score,
		                       overall_confidence, client_name, systems, synced_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		state.ID, result.ClarityScore, result.CompletenessScore, result.AlignmentScore,
		result.OverallConfidence, result.ClientName,
		strings.Join(result.SystemsIdentified, ","), now,
	); err != nil {
		return fmt.Errorf("sync: insert analysis: %w", err)
	}

	for _, g := range result.Gaps {
		if _, err := tx.Exec(
			`INSERT INTO gaps (project_id, category, description, impact, priority,
			                   suggested_question, answered, answer)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			state.ID, string(g.Category), g.Description, g.Impact, string(g.Priority),
			g.SuggestedQuestion, g.Answered, g.Answer,
		); err != nil {
			return fmt.Errorf("sync: insert gap: %w", err)
		}

		if g.SuggestedQuestion != "" && !g.Answered {
			if _, err := tx.Exec(
				`INSERT INTO questions (project_id, priority, category, question) VALUES (?, ?, ?, ?)`,
				state.ID, string(g.Priority), string(g.Category), g.SuggestedQuestion,
			); err != nil {
				return fmt.Errorf("sync: insert question: %w", err)
			}
		}
	}

	for _, a := range result.Ambiguities {
		if _, err := tx.Exec(
			`INSERT INTO ambiguities (project_id, term, context, clarification_needed, clarification, priority)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			state.ID, a.Term, a.Context, a.ClarificationNeeded, a.Clarification, string(a.Priority),
		); err != nil {
			return fmt.Errorf("sync: insert ambiguity: %w", err)
		}
	}

	for _, c := range result.Conflicts {
		if _, err := tx.Exec(
			`INSERT INTO conflicts (project_id, topic, statements, sources, resolution_needed, resolution, priority)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			state.ID, c.Topic,
			strings.Join(c.ConflictingStatements, statementSeparator),
			strings.Join(c.Sources, statementSeparator),
			c.ResolutionNeeded, c.Resolution, string(c.Priority),
		); err != nil {
			return fmt.Errorf("sync: insert conflict: %w", err)
		}
	}

	for _, doc := range state.Documents {
		if _, err := tx.Exec(
			`INSERT INTO documents (project_id, file_path, doc_type, source, subject)
			 VALUES (?, ?, ?, ?, ?)`,
			state.ID, doc.Path, string(doc.Type), string(doc.Source), doc.Subject,
		); err != nil {
			return fmt.Errorf("sync: insert document: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sync: commit: %w", err)
	}
	return nil
}

// LastSync returns when the project was last synced, or false if never.
func (s *Store) LastSync(projectID string) (time.Time, bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT synced_at FROM projects WHERE id = ?`, projectID).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("sync: last sync: %w", err)
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("sync: parsing synced_at: %w", err)
	}
	return t, true, nil
}

// Stats holds aggregate sync store counts.
type Stats struct {
	Projects  int `json:"projects"`
	Gaps      int `json:"gaps"`
	Conflicts int `json:"conflicts"`
	Questions int `json:"questions"`
}

// Stats returns aggregate counts across all synced projects.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	counts := []struct {
		table string
		dest  *int
	}{
		{"projects", &st.Projects},
		{"gaps", &st.Gaps},
		{"conflicts", &st.Conflicts},
		{"questions", &st.Questions},
	}
	for _, c := range counts {
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + c.table).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("sync: counting %s: %w", c.table, err)
		}
	}
	return st, nil
}
