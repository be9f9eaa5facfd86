package lookup

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/giygas/medic-api/medicineparser/entities"
)

type fakeStore struct {
	mu       sync.Mutex
	details  map[string]*entities.MedicineRecord
	docs     map[string]json.RawMessage
	saves    int
	findErr  error
	saveErr  error
	findHits int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		details: map[string]*entities.MedicineRecord{},
		docs:    map[string]json.RawMessage{},
	}
}

func (s *fakeStore) FindDetail(ctx context.Context, name string) (*entities.MedicineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	rec := s.details[entities.NameKey(name)]
	if rec != nil {
		s.findHits++
	}
	return rec, nil
}

func (s *fakeStore) FindDocument(ctx context.Context, name string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.docs[entities.NameKey(name)], nil
}

func (s *fakeStore) SaveDetail(ctx context.Context, record *entities.MedicineRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	key := entities.NameKey(record.Name)
	if _, ok := s.details[key]; !ok {
		s.details[key] = record
	}
	return nil
}

func (s *fakeStore) SaveAnswer(ctx context.Context, name string, document json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	key := entities.NameKey(name)
	if _, ok := s.docs[key]; !ok {
		s.docs[key] = document
	}
	return nil
}

func (s *fakeStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.details) + len(s.docs), nil
}

func (s *fakeStore) Ping(ctx context.Context) error { return nil }
func (s *fakeStore) Close() error                   { return nil }

func (s *fakeStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type fakeLabels struct {
	mu        sync.Mutex
	byBrand   map[string][]entities.Label
	byEither  map[string][]entities.Label
	calls     []string
	limits    []int
	block     chan struct{}
	delivered chan struct{}
}

func (f *fakeLabels) LabelsByBrand(ctx context.Context, term string, limit int) []entities.Label {
	f.mu.Lock()
	f.calls = append(f.calls, "brand:"+term)
	f.limits = append(f.limits, limit)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		if f.delivered != nil {
			select {
			case f.delivered <- struct{}{}:
			default:
			}
		}
		<-block
	}
	return f.byBrand[term]
}

func (f *fakeLabels) LabelsByBrandOrGeneric(ctx context.Context, term string, limit int) []entities.Label {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "either:"+term)
	f.limits = append(f.limits, limit)
	return f.byEither[term]
}

func (f *fakeLabels) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeRxNav struct {
	mu         sync.Mutex
	rxcuis     map[string]string
	candidates map[string][]entities.Candidate
	names      map[string][]string
	calls      []string
}

func (f *fakeRxNav) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRxNav) ResolveRxCUI(ctx context.Context, name string) string {
	f.record("rxcui:" + name)
	return f.rxcuis[name]
}

func (f *fakeRxNav) ApproximateCandidates(ctx context.Context, term string) []entities.Candidate {
	f.record("approximate:" + term)
	return f.candidates[term]
}

func (f *fakeRxNav) DrugNames(ctx context.Context, name string, limit int) []string {
	f.record("drugs:" + name)
	names := f.names[name]
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names
}

func (f *fakeRxNav) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeGenerator struct {
	mu      sync.Mutex
	text    string
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.text
}

func brandLabel(brand, generic string) entities.Label {
	var l entities.Label
	if brand != "" {
		l.OpenFDA.BrandName = []string{brand}
	}
	if generic != "" {
		l.OpenFDA.GenericName = []string{generic}
	}
	return l
}
