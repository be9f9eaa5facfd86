package entities

// Candidate is one approximateTerm match
type Candidate struct {
	RxCUI  string `json:"rxcui"`
	RxAUI  string `json:"rxaui"`
	Score  string `json:"score"`
	Rank   string `json:"rank"`
	Name   string `json:"name"`
	Source string `json:"source"`
}
