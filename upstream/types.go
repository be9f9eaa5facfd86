package upstream

import "github.com/giygas/medic-api/medicineparser/entities"

type labelResponse struct {
	Results []entities.Label `json:"results"`
}

type rxcuiResponse struct {
	IDGroup struct {
		Name     string   `json:"name"`
		RxNormID []string `json:"rxnormId"`
	} `json:"idGroup"`
}

type approximateResponse struct {
	ApproximateGroup struct {
		InputTerm string               `json:"inputTerm"`
		Candidate []entities.Candidate `json:"candidate"`
	} `json:"approximateGroup"`
}

type drugsResponse struct {
	DrugGroup struct {
		Name         string `json:"name"`
		ConceptGroup []struct {
			TTY               string `json:"tty"`
			ConceptProperties []struct {
				RxCUI   string `json:"rxcui"`
				Name    string `json:"name"`
				Synonym string `json:"synonym"`
				TTY     string `json:"tty"`
			} `json:"conceptProperties"`
		} `json:"conceptGroup"`
	} `json:"drugGroup"`
}
