// Package lookup resolves medicine queries against the record store and the
// upstream sources: the /medic fallback chain, the /list and /similar name
// searches and the generative /ai fallback.
package lookup

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/giygas/medic-api/interfaces"
	"github.com/giygas/medic-api/logging"
	"github.com/giygas/medic-api/medicineparser"
	"github.com/giygas/medic-api/medicineparser/entities"
	"github.com/giygas/medic-api/metrics"
	"golang.org/x/sync/singleflight"
)

var _ interfaces.MedicineLookup = (*Orchestrator)(nil)

// sharedLookupTimeout bounds a chain run that no longer follows any caller's
// context
const sharedLookupTimeout = time.Minute

// lookupState carries values between stages of one lookup
type lookupState struct {
	query      string
	rxcui      string
	candidates []entities.Candidate
}

// stage returns a record to stop the chain, nil to continue, or an error.
// ErrNotFound from a stage ends the chain without a result.
type stage struct {
	name string
	run  func(ctx context.Context, st *lookupState) (*entities.MedicineRecord, error)
}

// Orchestrator runs the /medic chain: store, FDA by name, RxNorm, FDA by
// RxCUI, then RxNav candidates
type Orchestrator struct {
	store  interfaces.RecordStore
	labels interfaces.LabelSource
	rxnav  interfaces.ConceptSource
	stages []stage
	group  singleflight.Group
}

func NewOrchestrator(store interfaces.RecordStore, labels interfaces.LabelSource, rxnav interfaces.ConceptSource) *Orchestrator {
	o := &Orchestrator{
		store:  store,
		labels: labels,
		rxnav:  rxnav,
	}
	o.stages = []stage{
		{"database", o.fromStore},
		{"fda", o.fromFDA},
		{"rxnorm", o.resolveRxCUI},
		{"rxnav-candidates", o.fetchCandidates},
		{"fda-by-rxcui", o.fromFDAByRxCUI},
		{"rxnav", o.fromCandidates},
	}
	return o
}

// Lookup resolves query; identical concurrent queries share one run. The
// shared run is detached from the caller that started it, so each caller
// only stops waiting when its own ctx is done.
func (o *Orchestrator) Lookup(ctx context.Context, query string) (*entities.MedicineRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)

	ch := o.group.DoChan(entities.NameKey(query), func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()
		return o.run(runCtx, query)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entities.MedicineRecord), nil
	}
}

func (o *Orchestrator) run(ctx context.Context, query string) (*entities.MedicineRecord, error) {
	st := &lookupState{query: query}

	for _, s := range o.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := s.run(ctx, st)
		if errors.Is(err, ErrNotFound) {
			logging.Info("Medicine not found", "query", query, "stage", s.name)
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		if record != nil {
			logging.Info("Medicine resolved", "query", query, "stage", s.name, "source", record.Source)
			metrics.MedicineLookups.WithLabelValues(record.Source).Inc()
			return record, nil
		}
	}

	return nil, ErrNotFound
}

func (o *Orchestrator) fromStore(ctx context.Context, st *lookupState) (*entities.MedicineRecord, error) {
	record, err := o.store.FindDetail(ctx, st.query)
	if err != nil {
		logging.Warn("Record store lookup failed", "query", st.query, "error", err)
		return nil, nil
	}
	if record == nil {
		return nil, nil
	}
	return record.WithSource(entities.SourceDatabase), nil
}

func (o *Orchestrator) fromFDA(ctx context.Context, st *lookupState) (*entities.MedicineRecord, error) {
	labels := o.labels.LabelsByBrand(ctx, st.query, 0)
	if len(labels) == 0 {
		return nil, nil
	}
	return o.persist(ctx, medicineparser.ExtractLabels(labels).Record(st.query, entities.SourceFDA, "")), nil
}

func (o *Orchestrator) resolveRxCUI(ctx context.Context, st *lookupState) (*entities.MedicineRecord, error) {
	st.rxcui = o.rxnav.ResolveRxCUI(ctx, st.query)
	if st.rxcui == "" {
		return nil, ErrNotFound
	}
	return nil, nil
}

func (o *Orchestrator) fetchCandidates(ctx context.Context, st *lookupState) (*entities.MedicineRecord, error) {
	st.candidates = o.rxnav.ApproximateCandidates(ctx, st.rxcui)
	return nil, nil
}

func (o *Orchestrator) fromFDAByRxCUI(ctx context.Context, st *lookupState) (*entities.MedicineRecord, error) {
	labels := o.labels.LabelsByBrand(ctx, st.rxcui, 0)
	if len(labels) == 0 {
		return nil, nil
	}
	return o.persist(ctx, medicineparser.ExtractLabels(labels).Record(st.query, entities.SourceFDARxCUI, st.rxcui)), nil
}

func (o *Orchestrator) fromCandidates(ctx context.Context, st *lookupState) (*entities.MedicineRecord, error) {
	if len(st.candidates) == 0 {
		return nil, ErrNotFound
	}
	return o.persist(ctx, medicineparser.ExtractCandidates(st.candidates).Record(st.query, entities.SourceRxNav, st.rxcui)), nil
}

// persist saves record and returns it; a failed save is only logged
func (o *Orchestrator) persist(ctx context.Context, record *entities.MedicineRecord) *entities.MedicineRecord {
	if err := o.store.SaveDetail(ctx, record); err != nil {
		logging.Error("Failed to store medicine record", "name", record.Name, "source", record.Source, "error", err)
	}
	return record
}
