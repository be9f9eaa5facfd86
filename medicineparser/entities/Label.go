package entities

// OpenFDA is the harmonized block of an FDA label
type OpenFDA struct {
	BrandName        []string `json:"brand_name"`
	GenericName      []string `json:"generic_name"`
	ManufacturerName []string `json:"manufacturer_name"`
	Route            []string `json:"route"`
	Rxcui            []string `json:"rxcui"`
}

// Label holds the subset of an FDA drug label the service reads. Every field
// is optional upstream.
type Label struct {
	OpenFDA                 OpenFDA  `json:"openfda"`
	Purpose                 []string `json:"purpose"`
	IndicationsAndUsage     []string `json:"indications_and_usage"`
	DosageAndAdministration []string `json:"dosage_and_administration"`
	Warnings                []string `json:"warnings"`
	StorageAndHandling      []string `json:"storage_and_handling"`
	Questions               []string `json:"questions"`
	AdverseReactions        []string `json:"adverse_reactions"`
	Contraindications       []string `json:"contraindications"`
	DrugInteractions        []string `json:"drug_interactions"`
	Overdosage              []string `json:"overdosage"`
	Pregnancy               []string `json:"pregnancy"`
	InactiveIngredient      []string `json:"inactive_ingredient"`
	BoxedWarning            []string `json:"boxed_warning"`
	HowSupplied             []string `json:"how_supplied"`
	ClinicalStudies         []string `json:"clinical_studies"`
	PediatricUse            []string `json:"pediatric_use"`
	GeriatricUse            []string `json:"geriatric_use"`
	DrugAbuseAndDependence  []string `json:"drug_abuse_and_dependence"`
	ClinicalPharmacology    []string `json:"clinical_pharmacology"`
}
