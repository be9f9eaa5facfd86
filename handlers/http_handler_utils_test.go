package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/giygas/medic-api/medicineparser/entities"
	"github.com/giygas/medic-api/validation"
)

// ============================================================================
// TEST DATA FACTORY
// ============================================================================

// createRecord builds a record with one fully populated entry
func createRecord(name, source string) *entities.MedicineRecord {
	return &entities.MedicineRecord{
		Name:   name,
		Source: source,
		Data: []entities.DetailEntry{{
			BrandName:    name,
			GenericName:  "Acetylsalicylic Acid",
			Manufacturer: "Test Labs",
			Purpose:      "Pain reliever",
			Usage:        entities.NotAvailable,
		}},
		Extra: []entities.ExtraEntry{{
			InactiveIngredients: entities.NotAvailable,
		}},
	}
}

// ============================================================================
// MOCKS
// ============================================================================

type MockLookup struct {
	mu      sync.Mutex
	record  *entities.MedicineRecord
	err     error
	queries []string
}

func (m *MockLookup) Lookup(_ context.Context, query string) (*entities.MedicineRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	return m.record, m.err
}

type MockSearcher struct {
	mu     sync.Mutex
	names  []string
	err    error
	calls  []string
	limits []int
}

func (m *MockSearcher) record(kind string, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, kind)
	m.limits = append(m.limits, limit)
	return m.names, m.err
}

func (m *MockSearcher) List(_ context.Context, _ string, limit int) ([]string, error) {
	return m.record("list", limit)
}

func (m *MockSearcher) Similar(_ context.Context, _ string, limit int) ([]string, error) {
	return m.record("similar", limit)
}

type MockAssistant struct {
	mu      sync.Mutex
	answer  json.RawMessage
	err     error
	prompts []string
}

func (m *MockAssistant) Ask(_ context.Context, prompt string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return m.answer, m.err
}

type MockHealthChecker struct {
	status  string
	details map[string]any
	err     error
}

func (m *MockHealthChecker) HealthCheck(_ context.Context) (string, map[string]any, error) {
	return m.status, m.details, m.err
}

// ============================================================================
// HANDLER BUILDER
// ============================================================================

// HandlerBuilder assembles an HTTPHandlerImpl around mocks
type HandlerBuilder struct {
	lookup    *MockLookup
	searcher  *MockSearcher
	assistant *MockAssistant
	health    *MockHealthChecker
	maxLimit  int
}

func NewHandlerBuilder() *HandlerBuilder {
	return &HandlerBuilder{
		lookup:    &MockLookup{},
		searcher:  &MockSearcher{},
		assistant: &MockAssistant{},
		health:    &MockHealthChecker{status: "healthy", details: map[string]any{"records": 0}},
		maxLimit:  100,
	}
}

func (b *HandlerBuilder) WithRecord(record *entities.MedicineRecord) *HandlerBuilder {
	b.lookup.record = record
	return b
}

func (b *HandlerBuilder) WithLookupError(err error) *HandlerBuilder {
	b.lookup.err = err
	return b
}

func (b *HandlerBuilder) WithNames(names ...string) *HandlerBuilder {
	b.searcher.names = names
	return b
}

func (b *HandlerBuilder) WithSearchError(err error) *HandlerBuilder {
	b.searcher.err = err
	return b
}

func (b *HandlerBuilder) WithAnswer(answer string) *HandlerBuilder {
	b.assistant.answer = json.RawMessage(answer)
	return b
}

func (b *HandlerBuilder) WithAssistantError(err error) *HandlerBuilder {
	b.assistant.err = err
	return b
}

func (b *HandlerBuilder) WithHealth(status string, details map[string]any, err error) *HandlerBuilder {
	b.health = &MockHealthChecker{status: status, details: details, err: err}
	return b
}

func (b *HandlerBuilder) WithMaxLimit(limit int) *HandlerBuilder {
	b.maxLimit = limit
	return b
}

func (b *HandlerBuilder) Build() *HTTPHandlerImpl {
	return NewHTTPHandler(
		Services{Lookup: b.lookup, Searcher: b.searcher, Assistant: b.assistant},
		validation.NewInputValidator(),
		b.health,
		b.maxLimit,
	)
}

// ============================================================================
// HTTP TEST HELPERS
// ============================================================================

// HTTPTestHelper provides common HTTP testing utilities
type HTTPTestHelper struct {
	t *testing.T
}

func NewHTTPTestHelper(t *testing.T) *HTTPTestHelper {
	return &HTTPTestHelper{t: t}
}

// ExecuteRequest runs handler against a request built from method, target and body
func (h *HTTPTestHelper) ExecuteRequest(handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	h.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// AssertJSONResponse checks the status and decodes the body into target
func (h *HTTPTestHelper) AssertJSONResponse(resp *httptest.ResponseRecorder, expectedStatus int, target any) {
	h.t.Helper()

	if resp.Code != expectedStatus {
		h.t.Fatalf("Expected status %d, got %d: %s", expectedStatus, resp.Code, resp.Body.String())
	}

	if ct := resp.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		h.t.Errorf("Expected JSON content type, got %q", ct)
	}

	if err := json.Unmarshal(resp.Body.Bytes(), target); err != nil {
		h.t.Fatalf("Failed to decode response %q: %v", resp.Body.String(), err)
	}
}

// AssertErrorResponse checks the standard error body and returns it
func (h *HTTPTestHelper) AssertErrorResponse(resp *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) ErrorResponse {
	h.t.Helper()

	var body ErrorResponse
	h.AssertJSONResponse(resp, expectedStatus, &body)

	if body.Code != expectedStatus {
		h.t.Errorf("Expected code %d in body, got %d", expectedStatus, body.Code)
	}
	if body.Error != http.StatusText(expectedStatus) {
		h.t.Errorf("Expected error %q, got %q", http.StatusText(expectedStatus), body.Error)
	}
	if expectedMessage != "" && body.Message != expectedMessage {
		h.t.Errorf("Expected message %q, got %q", expectedMessage, body.Message)
	}
	return body
}
