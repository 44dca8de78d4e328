package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/brandloop/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "brandloop.db"

// Store is a unified SQLite-based storage that provides access to
// all record store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.brandloop/data/brandloop.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".brandloop", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CampaignStore returns a CampaignStore interface backed by this store.
func (s *Store) CampaignStore() driven.CampaignStore {
	return &campaignStore{store: s}
}

// DeliverableStore returns a DeliverableStore interface backed by this store.
func (s *Store) DeliverableStore() driven.DeliverableStore {
	return &deliverableStore{store: s}
}

// ArtifactStore returns an ArtifactStore interface backed by this store.
func (s *Store) ArtifactStore() driven.ArtifactStore {
	return &artifactStore{store: s}
}

// AuditLog returns an AuditLog interface backed by this store.
func (s *Store) AuditLog() driven.AuditLog {
	return &auditLog{store: s}
}

// ProfileStore returns a ProfileStore interface backed by this store.
func (s *Store) ProfileStore() driven.ProfileStore {
	return &profileStore{store: s}
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Campaign Store ====================

// campaignStore implements driven.CampaignStore.
type campaignStore struct {
	store *Store
}

var _ driven.CampaignStore = (*campaignStore)(nil)

const campaignColumns = `id, brand_id, name, max_retries, status, approved_count, failed_count,
	promoted_at, created_at, updated_at`

// Save stores or updates a campaign.
func (s *campaignStore) Save(ctx context.Context, c domain.Campaign) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO campaigns (`+campaignColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			brand_id = excluded.brand_id,
			name = excluded.name,
			max_retries = excluded.max_retries,
			status = excluded.status,
			approved_count = excluded.approved_count,
			failed_count = excluded.failed_count,
			promoted_at = excluded.promoted_at,
			updated_at = excluded.updated_at
	`, c.ID, c.BrandID, c.Name, c.MaxRetries, string(c.Status), c.ApprovedCount, c.FailedCount,
		nullTime(c.PromotedAt), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving campaign: %w", err)
	}
	return nil
}

// Get retrieves a campaign by ID.
func (s *campaignStore) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = ?`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all campaigns, oldest first.
func (s *campaignStore) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []domain.Campaign //nolint:prealloc // size unknown from query
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

func scanCampaign(row scanner) (*domain.Campaign, error) {
	var c domain.Campaign
	var status string
	var promotedAt sql.NullTime
	if err := row.Scan(&c.ID, &c.BrandID, &c.Name, &c.MaxRetries, &status, &c.ApprovedCount,
		&c.FailedCount, &promotedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning campaign: %w", err)
	}
	c.Status = domain.CampaignStatus(status)
	if promotedAt.Valid {
		c.PromotedAt = promotedAt.Time
	}
	return &c, nil
}

// ==================== Deliverable Store ====================

// deliverableStore implements driven.DeliverableStore.
type deliverableStore struct {
	store *Store
}

var _ driven.DeliverableStore = (*deliverableStore)(nil)

const deliverableColumns = `id, campaign_id, brand_id, description, ai_model, original_prompt,
	current_prompt, negative_prompts, negative_prompt, reference_images, status, artifact_id,
	score, retry_count, last_error, created_at, updated_at`

// Save stores or updates a deliverable in a single statement.
func (s *deliverableStore) Save(ctx context.Context, d domain.Deliverable) error {
	var scoreJSON sql.NullString
	if d.Score != nil {
		data, err := json.Marshal(d.Score)
		if err != nil {
			return fmt.Errorf("marshalling score: %w", err)
		}
		scoreJSON = sql.NullString{String: string(data), Valid: true}
	}

	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = now
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO deliverables (`+deliverableColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			description = excluded.description,
			ai_model = excluded.ai_model,
			current_prompt = excluded.current_prompt,
			negative_prompts = excluded.negative_prompts,
			negative_prompt = excluded.negative_prompt,
			reference_images = excluded.reference_images,
			status = excluded.status,
			artifact_id = excluded.artifact_id,
			score = excluded.score,
			retry_count = excluded.retry_count,
			last_error = excluded.last_error,
			updated_at = excluded.updated_at
	`, d.ID, d.CampaignID, d.BrandID, d.Description, d.Model, d.OriginalPrompt,
		d.CurrentPrompt, marshalStrings(d.NegativeTerms), d.NegativePrompt, marshalStrings(d.ReferenceImages),
		string(d.Status), nullString(d.ArtifactID), scoreJSON, d.RetryCount, d.LastError,
		d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving deliverable: %w", err)
	}
	return nil
}

// Get retrieves a deliverable by ID.
func (s *deliverableStore) Get(ctx context.Context, id string) (*domain.Deliverable, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+deliverableColumns+` FROM deliverables WHERE id = ?`, id)
	d, err := scanDeliverable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListByCampaign returns a campaign's deliverables in insertion order.
func (s *deliverableStore) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Deliverable, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+deliverableColumns+` FROM deliverables
		WHERE campaign_id = ? ORDER BY rowid
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("querying deliverables: %w", err)
	}
	defer rows.Close()

	var deliverables []domain.Deliverable //nolint:prealloc // size unknown from query
	for rows.Next() {
		d, err := scanDeliverable(rows)
		if err != nil {
			return nil, err
		}
		deliverables = append(deliverables, *d)
	}
	return deliverables, rows.Err()
}

func scanDeliverable(row scanner) (*domain.Deliverable, error) {
	var d domain.Deliverable
	var negatives, references, status string
	var artifactID, scoreJSON sql.NullString
	if err := row.Scan(&d.ID, &d.CampaignID, &d.BrandID, &d.Description, &d.Model, &d.OriginalPrompt,
		&d.CurrentPrompt, &negatives, &d.NegativePrompt, &references, &status, &artifactID,
		&scoreJSON, &d.RetryCount, &d.LastError, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning deliverable: %w", err)
	}

	var err error
	if d.NegativeTerms, err = unmarshalStrings(negatives); err != nil {
		return nil, fmt.Errorf("unmarshaling negative prompts: %w", err)
	}
	if d.ReferenceImages, err = unmarshalStrings(references); err != nil {
		return nil, fmt.Errorf("unmarshaling reference images: %w", err)
	}
	if scoreJSON.Valid && scoreJSON.String != "" {
		var score domain.ScoreResult
		if err := json.Unmarshal([]byte(scoreJSON.String), &score); err != nil {
			return nil, fmt.Errorf("unmarshaling score: %w", err)
		}
		d.Score = &score
	}
	d.Status = domain.DeliverableStatus(status)
	d.ArtifactID = artifactID.String
	return &d, nil
}

// ==================== Artifact Store ====================

// artifactStore implements driven.ArtifactStore.
type artifactStore struct {
	store *Store
}

var _ driven.ArtifactStore = (*artifactStore)(nil)

const artifactColumns = `id, brand_id, campaign_id, deliverable_id, type, name, path, size,
	prompt_used, grade, created_at`

// Save stores or updates an artifact.
func (s *artifactStore) Save(ctx context.Context, a domain.Artifact) error {
	var gradeJSON sql.NullString
	if a.Grade != nil {
		data, err := json.Marshal(a.Grade)
		if err != nil {
			return fmt.Errorf("marshalling grade: %w", err)
		}
		gradeJSON = sql.NullString{String: string(data), Valid: true}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO artifacts (`+artifactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			path = excluded.path,
			size = excluded.size,
			grade = excluded.grade
	`, a.ID, a.BrandID, a.CampaignID, a.DeliverableID, string(a.Type), a.Name, a.Path, a.Size,
		a.PromptUsed, gradeJSON, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving artifact: %w", err)
	}
	return nil
}

// Get retrieves an artifact by ID.
func (s *artifactStore) Get(ctx context.Context, id string) (*domain.Artifact, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+artifactColumns+` FROM artifacts WHERE id = ?`, id)
	a, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListByBrand returns every artifact for a brand in insertion order.
func (s *artifactStore) ListByBrand(ctx context.Context, brandID string) ([]domain.Artifact, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+artifactColumns+` FROM artifacts
		WHERE brand_id = ? ORDER BY rowid
	`, brandID)
	if err != nil {
		return nil, fmt.Errorf("querying artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []domain.Artifact //nolint:prealloc // size unknown from query
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, *a)
	}
	return artifacts, rows.Err()
}

func scanArtifact(row scanner) (*domain.Artifact, error) {
	var a domain.Artifact
	var typ string
	var gradeJSON sql.NullString
	if err := row.Scan(&a.ID, &a.BrandID, &a.CampaignID, &a.DeliverableID, &typ, &a.Name, &a.Path,
		&a.Size, &a.PromptUsed, &gradeJSON, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning artifact: %w", err)
	}
	a.Type = domain.ArtifactType(typ)
	if gradeJSON.Valid && gradeJSON.String != "" {
		var grade domain.Grade
		if err := json.Unmarshal([]byte(gradeJSON.String), &grade); err != nil {
			return nil, fmt.Errorf("unmarshaling grade: %w", err)
		}
		a.Grade = &grade
	}
	return &a, nil
}

// ==================== Audit Log ====================

// auditLog implements driven.AuditLog.
type auditLog struct {
	store *Store
}

var _ driven.AuditLog = (*auditLog)(nil)

const auditColumns = `id, campaign_id, deliverable_id, retry_attempt, rejection_reasons,
	negative_prompts, prompt_before, prompt_after, negative_prompt, created_at`

// Append adds a record. Existing records are never updated.
func (l *auditLog) Append(ctx context.Context, r domain.AuditRecord) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := l.store.db.ExecContext(ctx, `
		INSERT INTO audit_log (`+auditColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.CampaignID, r.DeliverableID, r.Attempt, marshalStrings(r.RejectionReasons),
		marshalStrings(r.NegativeTerms), r.PromptBefore, r.PromptAfter, r.NegativePrompt, r.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("audit record %s: %w", r.ID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("appending audit record: %w", err)
	}
	return nil
}

// ListByDeliverable returns a deliverable's records, oldest first.
func (l *auditLog) ListByDeliverable(ctx context.Context, deliverableID string) ([]domain.AuditRecord, error) {
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT `+auditColumns+` FROM audit_log
		WHERE deliverable_id = ? ORDER BY rowid
	`, deliverableID)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var records []domain.AuditRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.AuditRecord
		var reasons, negatives string
		if err := rows.Scan(&r.ID, &r.CampaignID, &r.DeliverableID, &r.Attempt, &reasons,
			&negatives, &r.PromptBefore, &r.PromptAfter, &r.NegativePrompt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit record: %w", err)
		}
		if r.RejectionReasons, err = unmarshalStrings(reasons); err != nil {
			return nil, fmt.Errorf("unmarshaling rejection reasons: %w", err)
		}
		if r.NegativeTerms, err = unmarshalStrings(negatives); err != nil {
			return nil, fmt.Errorf("unmarshaling negative prompts: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ==================== Profile Store ====================

// profileStore implements driven.ProfileStore.
type profileStore struct {
	store *Store
}

var _ driven.ProfileStore = (*profileStore)(nil)

// Save replaces the brand's snapshot.
func (s *profileStore) Save(ctx context.Context, p domain.BrandProfile) error {
	if p.LastUpdated.IsZero() {
		p.LastUpdated = time.Now().UTC()
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO brand_profiles (brand_id, total_artifacts, graded_artifacts, avg_clip, avg_e5,
			avg_cohere, avg_fused, drift_baseline, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(brand_id) DO UPDATE SET
			total_artifacts = excluded.total_artifacts,
			graded_artifacts = excluded.graded_artifacts,
			avg_clip = excluded.avg_clip,
			avg_e5 = excluded.avg_e5,
			avg_cohere = excluded.avg_cohere,
			avg_fused = excluded.avg_fused,
			drift_baseline = excluded.drift_baseline,
			last_updated = excluded.last_updated
	`, p.BrandID, p.TotalArtifacts, p.GradedArtifacts, p.AvgScores.CLIP, p.AvgScores.E5,
		p.AvgScores.Cohere, p.AvgScores.Fused, p.DriftBaseline, p.LastUpdated)
	if err != nil {
		return fmt.Errorf("saving brand profile: %w", err)
	}
	return nil
}

// Get retrieves a brand's snapshot.
func (s *profileStore) Get(ctx context.Context, brandID string) (*domain.BrandProfile, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT brand_id, total_artifacts, graded_artifacts, avg_clip, avg_e5, avg_cohere,
			avg_fused, drift_baseline, last_updated
		FROM brand_profiles WHERE brand_id = ?
	`, brandID)

	var p domain.BrandProfile
	if err := row.Scan(&p.BrandID, &p.TotalArtifacts, &p.GradedArtifacts, &p.AvgScores.CLIP,
		&p.AvgScores.E5, &p.AvgScores.Cohere, &p.AvgScores.Fused, &p.DriftBaseline,
		&p.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning brand profile: %w", err)
	}
	return &p, nil
}

// ==================== Helpers ====================

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func marshalStrings(v []string) string {
	if len(v) == 0 {
		return "[]"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalStrings(s string) ([]string, error) {
	if s == "" || s == "[]" || s == "null" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
