package entities

type DetailEntry struct {
	BrandName         string `json:"brand_name"`
	GenericName       string `json:"generic_name"`
	Manufacturer      string `json:"manufacturer"`
	Purpose           string `json:"purpose"`
	Usage             string `json:"usage"`
	Dosage            string `json:"dosage"`
	Warnings          string `json:"warnings"`
	Route             string `json:"route"`
	Storage           string `json:"storage"`
	Contact           string `json:"contact"`
	SideEffects       string `json:"side_effects"`
	Contraindications string `json:"contraindications"`
	Interactions      string `json:"interactions"`
	OverdoseInfo      string `json:"overdose_info"`
	PregnancyWarning  string `json:"pregnancy_warning"`
}
