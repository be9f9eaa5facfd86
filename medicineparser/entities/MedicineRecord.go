package entities

// NotAvailable fills every field the upstream payload did not provide
const NotAvailable = "N/A"

// Record sources
const (
	SourceDatabase = "Database"
	SourceFDA      = "FDA"
	SourceFDARxCUI = "FDA (via RxCUI)"
	SourceRxNav    = "RxNav"
	SourceAI       = "AI"
)

// MedicineRecord is the normalized answer to a /medic lookup. Data and Extra
// are parallel: entry i of both comes from upstream result i.
type MedicineRecord struct {
	Name   string        `json:"name"`
	Source string        `json:"source"`
	RxCUI  string        `json:"rxcui,omitempty"`
	Data   []DetailEntry `json:"data"`
	Extra  []ExtraEntry  `json:"extra"`
}

// WithSource returns a shallow copy tagged with another source
func (m MedicineRecord) WithSource(source string) *MedicineRecord {
	m.Source = source
	return &m
}
