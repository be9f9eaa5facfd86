package entities

type ExtraEntry struct {
	InactiveIngredients string `json:"inactive_ingredients"`
	BoxWarning          string `json:"box_warning"`
	HowSupplied         string `json:"how_supplied"`
	ClinicalStudies     string `json:"clinical_studies"`
	PediatricUse        string `json:"pediatric_use"`
	GeriatricUse        string `json:"geriatric_use"`
	AbusePotential      string `json:"abuse_potential"`
	Pharmacodynamics    string `json:"pharmacodynamics"`
}
