// Package medicineparser maps upstream label and concept payloads onto the
// normalized detail and extra entries of a MedicineRecord.
package medicineparser

import (
	"strings"

	"github.com/giygas/medic-api/medicineparser/entities"
)

// Extracted holds parallel detail and extra entries, one pair per upstream result
type Extracted struct {
	Data  []entities.DetailEntry
	Extra []entities.ExtraEntry
}

// Record wraps the entries into a MedicineRecord
func (e *Extracted) Record(name, source, rxcui string) *entities.MedicineRecord {
	return &entities.MedicineRecord{
		Name:   name,
		Source: source,
		RxCUI:  rxcui,
		Data:   e.Data,
		Extra:  e.Extra,
	}
}

// ExtractLabels maps each FDA label onto a detail and an extra entry, in
// order. A nil slice yields nil.
func ExtractLabels(labels []entities.Label) *Extracted {
	if labels == nil {
		return nil
	}

	out := &Extracted{
		Data:  make([]entities.DetailEntry, 0, len(labels)),
		Extra: make([]entities.ExtraEntry, 0, len(labels)),
	}
	for i := range labels {
		out.Data = append(out.Data, detailFromLabel(&labels[i]))
		out.Extra = append(out.Extra, extraFromLabel(&labels[i]))
	}
	return out
}

// ExtractCandidates maps RxNav candidates the same way. Candidates carry none
// of the label fields, so every entry is all N/A.
func ExtractCandidates(candidates []entities.Candidate) *Extracted {
	if candidates == nil {
		return nil
	}

	out := &Extracted{
		Data:  make([]entities.DetailEntry, 0, len(candidates)),
		Extra: make([]entities.ExtraEntry, 0, len(candidates)),
	}
	empty := entities.Label{}
	for range candidates {
		out.Data = append(out.Data, detailFromLabel(&empty))
		out.Extra = append(out.Extra, extraFromLabel(&empty))
	}
	return out
}

func detailFromLabel(l *entities.Label) entities.DetailEntry {
	return entities.DetailEntry{
		BrandName:         first(l.OpenFDA.BrandName),
		GenericName:       first(l.OpenFDA.GenericName),
		Manufacturer:      first(l.OpenFDA.ManufacturerName),
		Purpose:           first(l.Purpose),
		Usage:             first(l.IndicationsAndUsage),
		Dosage:            first(l.DosageAndAdministration),
		Warnings:          first(l.Warnings),
		Route:             first(l.OpenFDA.Route),
		Storage:           first(l.StorageAndHandling),
		Contact:           first(l.Questions),
		SideEffects:       first(l.AdverseReactions),
		Contraindications: first(l.Contraindications),
		Interactions:      first(l.DrugInteractions),
		OverdoseInfo:      first(l.Overdosage),
		PregnancyWarning:  first(l.Pregnancy),
	}
}

func extraFromLabel(l *entities.Label) entities.ExtraEntry {
	return entities.ExtraEntry{
		InactiveIngredients: first(l.InactiveIngredient),
		BoxWarning:          first(l.BoxedWarning),
		HowSupplied:         first(l.HowSupplied),
		ClinicalStudies:     first(l.ClinicalStudies),
		PediatricUse:        first(l.PediatricUse),
		GeriatricUse:        first(l.GeriatricUse),
		AbusePotential:      first(l.DrugAbuseAndDependence),
		Pharmacodynamics:    first(l.ClinicalPharmacology),
	}
}

// first returns values[0], or N/A when it is missing or blank
func first(values []string) string {
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return entities.NotAvailable
	}
	return values[0]
}
