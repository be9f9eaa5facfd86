// Package data persists resolved medicine lookups in SQLite. Records are
// written once per (kind, name) and never updated.
package data

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/giygas/medic-api/interfaces"
	"github.com/giygas/medic-api/logging"
	"github.com/giygas/medic-api/medicineparser/entities"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Compile-time check to ensure RecordStore implements interfaces.RecordStore
var _ interfaces.RecordStore = (*RecordStore)(nil)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Record kinds
const (
	KindDetail = "detail"
	KindAI     = "ai"
)

// ErrInvalidDocument is returned when an answer is not valid JSON
var ErrInvalidDocument = errors.New("document is not valid JSON")

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

type medicineRow struct {
	ID        string `db:"id"`
	Kind      string `db:"kind"`
	Name      string `db:"name"`
	NameKey   string `db:"name_key"`
	Source    string `db:"source"`
	RxCUI     string `db:"rxcui"`
	Document  string `db:"document"`
	CreatedAt string `db:"created_at"`
}

// RecordStore is the SQLite backed implementation of interfaces.RecordStore
type RecordStore struct {
	db *sqlx.DB
}

// NewRecordStore opens (or creates) the database at path and applies migrations
func NewRecordStore(path string) (*RecordStore, error) {
	db, err := sqlx.Connect("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db.DB); err != nil {
		db.Close()
		return nil, err
	}

	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	logging.Info("Record store ready", "path", path)
	return &RecordStore{db: db}, nil
}

// dsn applies the per-connection pragmas through the driver's _pragma parameter
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func migrate(db *sql.DB) error {
	goose.SetLogger(gooseLogger{})
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}
	return nil
}

// FindDetail returns the /medic record stored for name, or nil
func (s *RecordStore) FindDetail(ctx context.Context, name string) (*entities.MedicineRecord, error) {
	var document string
	err := s.db.GetContext(ctx, &document,
		`SELECT document FROM medicines WHERE kind = ? AND name_key = ? LIMIT 1`,
		KindDetail, entities.NameKey(name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find record %q: %w", name, err)
	}

	var record entities.MedicineRecord
	if err := json.Unmarshal([]byte(document), &record); err != nil {
		return nil, fmt.Errorf("failed to decode record %q: %w", name, err)
	}
	return &record, nil
}

// FindDocument returns the stored document for name, preferring AI answers
// over /medic records, or nil
func (s *RecordStore) FindDocument(ctx context.Context, name string) (json.RawMessage, error) {
	var document string
	err := s.db.GetContext(ctx, &document,
		`SELECT document FROM medicines WHERE name_key = ?
		 ORDER BY CASE kind WHEN 'ai' THEN 0 ELSE 1 END, created_at
		 LIMIT 1`,
		entities.NameKey(name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document %q: %w", name, err)
	}
	return json.RawMessage(document), nil
}

// SaveDetail stores a /medic record under its name
func (s *RecordStore) SaveDetail(ctx context.Context, record *entities.MedicineRecord) error {
	document, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %q: %w", record.Name, err)
	}
	return s.insert(ctx, KindDetail, record.Name, record.Source, record.RxCUI, string(document))
}

// SaveAnswer stores a model answer under the prompt it answered
func (s *RecordStore) SaveAnswer(ctx context.Context, name string, document json.RawMessage) error {
	if !json.Valid(document) {
		return ErrInvalidDocument
	}
	return s.insert(ctx, KindAI, name, entities.SourceAI, "", string(document))
}

func (s *RecordStore) insert(ctx context.Context, kind, name, source, rxcui, document string) error {
	row := medicineRow{
		ID:        uuid.NewString(),
		Kind:      kind,
		Name:      name,
		NameKey:   entities.NameKey(name),
		Source:    source,
		RxCUI:     rxcui,
		Document:  document,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	result, err := s.db.NamedExecContext(ctx,
		`INSERT INTO medicines (id, kind, name, name_key, source, rxcui, document, created_at)
		 VALUES (:id, :kind, :name, :name_key, :source, :rxcui, :document, :created_at)
		 ON CONFLICT (kind, name_key) DO NOTHING`,
		row)
	if err != nil {
		return fmt.Errorf("failed to store %s record %q: %w", kind, name, err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		logging.Debug("Record already stored", "kind", kind, "name", name)
	}
	return nil
}

// Count returns the number of stored records of every kind
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM medicines`); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

func (s *RecordStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *RecordStore) Close() error {
	return s.db.Close()
}

// gooseLogger routes migration output through slog
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	logging.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (gooseLogger) Fatalf(format string, v ...any) {
	logging.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
	os.Exit(1)
}
