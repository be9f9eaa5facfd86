// Package interfaces defines core abstractions for the medicine API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/giygas/medic-api/medicineparser/entities"
)

// RecordStore persists resolved lookups. Find methods return nil with a nil
// error when nothing matches; names are matched case-insensitively.
type RecordStore interface {
	// FindDetail returns a record saved by the /medic chain
	FindDetail(ctx context.Context, name string) (*entities.MedicineRecord, error)

	// FindDocument returns any stored document for name, AI answers first
	FindDocument(ctx context.Context, name string) (json.RawMessage, error)

	// SaveDetail and SaveAnswer are no-ops when the name is already stored
	SaveDetail(ctx context.Context, record *entities.MedicineRecord) error
	SaveAnswer(ctx context.Context, name string, document json.RawMessage) error

	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close() error
}

// LabelSource searches FDA drug labels. Failures surface as nil results.
type LabelSource interface {
	LabelsByBrand(ctx context.Context, term string, limit int) []entities.Label
	LabelsByBrandOrGeneric(ctx context.Context, term string, limit int) []entities.Label
}

// ConceptSource resolves RxNorm concepts. Failures surface as empty results.
type ConceptSource interface {
	ResolveRxCUI(ctx context.Context, name string) string
	ApproximateCandidates(ctx context.Context, term string) []entities.Candidate
	DrugNames(ctx context.Context, name string, limit int) []string
}

// TextGenerator produces free text from a prompt, "" on failure
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// MedicineLookup resolves a medicine name through the fallback chain
type MedicineLookup interface {
	Lookup(ctx context.Context, query string) (*entities.MedicineRecord, error)
}

// Searcher lists medicine names from FDA and RxNav
type Searcher interface {
	List(ctx context.Context, query string, limit int) ([]string, error)
	Similar(ctx context.Context, query string, limit int) ([]string, error)
}

// Assistant answers free-form medicine questions with the generative model
type Assistant interface {
	Ask(ctx context.Context, prompt string) (json.RawMessage, error)
}

// Scheduler manages the periodic background jobs.
type Scheduler interface {
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
// It provides a consistent interface for all API endpoints.
type HTTPHandler interface {
	FindMedicine(w http.ResponseWriter, r *http.Request)
	ListMedicines(w http.ResponseWriter, r *http.Request)
	SimilarMedicines(w http.ResponseWriter, r *http.Request)
	AskAI(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status
	HealthCheck(ctx context.Context) (status string, details map[string]any, err error)
}

// InputValidator validates user supplied query values
type InputValidator interface {
	// ValidateInput checks a medicine name
	ValidateInput(input string) error

	// ValidatePrompt checks a free-text /ai prompt
	ValidatePrompt(prompt string) error

	// ParseLimit turns the raw limit parameter into a bounded page size
	ParseLimit(raw string, maxLimit int) int
}
