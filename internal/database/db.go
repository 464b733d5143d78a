package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/supercrawl/internal/model"
)

// FileName is the database file created inside the database directory.
const FileName = "supercrawl.db"

// Crawl statuses.
const (
	CrawlQueued    = "queued"
	CrawlCompleted = "completed"
)

// DB provides SQLite-based storage for projects, crawls, pages and issues.
type DB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures DB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a DB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*DB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	d := &DB{
		db:     sqlDB,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := sqlDB.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := d.createTables(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// createTables creates the database schema if it doesn't exist.
// Row order (rowid) is insertion order and is used for listing order.
func (d *DB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL DEFAULT '',
		domain TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS crawls (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		task_id TEXT NOT NULL,
		status TEXT NOT NULL,
		pages_crawled INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		completed_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_crawls_project ON crawls(project_id);

	CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		crawl_id TEXT NOT NULL REFERENCES crawls(id),
		url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		meta_description TEXT NOT NULL DEFAULT '',
		h1 TEXT NOT NULL DEFAULT '',
		status_code INTEGER NOT NULL DEFAULT 0,
		load_time_ms INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_pages_crawl ON pages(crawl_id);

	CREATE TABLE IF NOT EXISTS issues (
		id TEXT PRIMARY KEY,
		page_id TEXT NOT NULL REFERENCES pages(id),
		issue_type TEXT NOT NULL,
		severity TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_issues_page ON issues(page_id);
	`

	_, err := d.db.ExecContext(context.Background(), schema)
	return err
}

// InsertProject stores a new project. The caller assigns the id.
func (d *DB) InsertProject(ctx context.Context, p model.Project) error {
	query := `INSERT INTO projects (id, user_id, domain, created_at) VALUES (?, ?, ?, ?)`

	_, err := d.db.ExecContext(ctx, query, p.ID, p.UserID, p.Domain, formatTimestamp(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// GetProject returns the project with id, or nil if there is none.
func (d *DB) GetProject(ctx context.Context, id string) (*model.Project, error) {
	query := `SELECT id, user_id, domain, created_at FROM projects WHERE id = ?`

	var p model.Project
	var createdAt string
	err := d.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.UserID, &p.Domain, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	p.CreatedAt = parseTimestamp(createdAt)
	return &p, nil
}

// ListProjects returns all projects, oldest first.
func (d *DB) ListProjects(ctx context.Context) ([]model.Project, error) {
	query := `SELECT id, user_id, domain, created_at FROM projects ORDER BY rowid`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		var createdAt string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Domain, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.CreatedAt = parseTimestamp(createdAt)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// CrawlRecord represents a stored crawl request.
type CrawlRecord struct {
	ID           string
	ProjectID    string
	TaskID       string
	Status       string
	PagesCrawled int
	CreatedAt    time.Time
	CompletedAt  time.Time
}

// InsertCrawl stores a new crawl request.
func (d *DB) InsertCrawl(ctx context.Context, c *CrawlRecord) error {
	query := `
	INSERT INTO crawls (id, project_id, task_id, status, pages_crawled, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := d.db.ExecContext(ctx, query,
		c.ID,
		c.ProjectID,
		c.TaskID,
		c.Status,
		c.PagesCrawled,
		formatTimestamp(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert crawl: %w", err)
	}
	return nil
}

// LatestCrawl returns the most recent crawl of a project, or nil if it has none.
func (d *DB) LatestCrawl(ctx context.Context, projectID string) (*CrawlRecord, error) {
	query := `
	SELECT id, project_id, task_id, status, pages_crawled, created_at, completed_at
	FROM crawls
	WHERE project_id = ?
	ORDER BY rowid DESC
	LIMIT 1
	`

	var c CrawlRecord
	var createdAt string
	var completedAt sql.NullString
	err := d.db.QueryRowContext(ctx, query, projectID).Scan(
		&c.ID,
		&c.ProjectID,
		&c.TaskID,
		&c.Status,
		&c.PagesCrawled,
		&createdAt,
		&completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest crawl: %w", err)
	}

	c.CreatedAt = parseTimestamp(createdAt)
	if completedAt.Valid {
		c.CompletedAt = parseTimestamp(completedAt.String)
	}
	return &c, nil
}

// CompleteCrawl records the pages and issues of a crawl and marks it
// completed, in one transaction. Each issue's PageID must name one of pages.
func (d *DB) CompleteCrawl(ctx context.Context, crawlID string, pages []model.Page, issues []model.Issue, at time.Time) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range pages {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO pages (id, crawl_id, url, title, meta_description, h1, status_code, load_time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, crawlID, p.URL, p.Title, p.MetaDescription, p.H1, p.StatusCode, p.LoadTimeMS)
		if err != nil {
			return fmt.Errorf("failed to insert page %s: %w", p.URL, err)
		}
	}

	for _, is := range issues {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO issues (id, page_id, issue_type, severity, description)
		VALUES (?, ?, ?, ?, ?)
		`, is.ID, is.PageID, is.IssueType, is.Severity, is.Description)
		if err != nil {
			return fmt.Errorf("failed to insert issue %s: %w", is.IssueType, err)
		}
	}

	res, err := tx.ExecContext(ctx, `
	UPDATE crawls SET status = ?, pages_crawled = ?, completed_at = ? WHERE id = ?
	`, CrawlCompleted, len(pages), formatTimestamp(at), crawlID)
	if err != nil {
		return fmt.Errorf("failed to update crawl: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("crawl %s not found", crawlID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit crawl: %w", err)
	}
	return nil
}

// ListPages returns the pages of the latest crawl of a project.
// A project without crawls has no pages.
func (d *DB) ListPages(ctx context.Context, projectID string) ([]model.Page, error) {
	query := `
	SELECT id, crawl_id, url, title, meta_description, h1, status_code, load_time_ms
	FROM pages
	WHERE crawl_id = (SELECT id FROM crawls WHERE project_id = ? ORDER BY rowid DESC LIMIT 1)
	ORDER BY rowid
	`

	rows, err := d.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	pages := []model.Page{}
	for rows.Next() {
		var p model.Page
		if err := rows.Scan(&p.ID, &p.CrawlID, &p.URL, &p.Title, &p.MetaDescription, &p.H1, &p.StatusCode, &p.LoadTimeMS); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// ListIssues returns the issues found on the pages of the latest crawl of a
// project, each enriched with its page URL and title.
func (d *DB) ListIssues(ctx context.Context, projectID string) ([]model.Issue, error) {
	query := `
	SELECT i.id, i.page_id, i.issue_type, i.severity, i.description, p.url, p.title
	FROM issues i
	JOIN pages p ON p.id = i.page_id
	WHERE p.crawl_id = (SELECT id FROM crawls WHERE project_id = ? ORDER BY rowid DESC LIMIT 1)
	ORDER BY p.rowid, i.rowid
	`

	rows, err := d.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	issues := []model.Issue{}
	for rows.Next() {
		var is model.Issue
		if err := rows.Scan(&is.ID, &is.PageID, &is.IssueType, &is.Severity, &is.Description, &is.URL, &is.PageTitle); err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, is)
	}
	return issues, rows.Err()
}

// formatTimestamp stores times as UTC RFC3339 with nanoseconds.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, it returns the zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
