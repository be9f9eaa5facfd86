package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/giygas/medic-api/interfaces"
	"github.com/giygas/medic-api/medicineparser/entities"
	"github.com/giygas/medic-api/metrics"
)

var _ interfaces.ConceptSource = (*RxNavClient)(nil)

const rxnavSource = "rxnav"

// RxNavClient queries the NLM RxNav REST API
type RxNavClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRxNavClient(baseURL string, timeout time.Duration) *RxNavClient {
	return &RxNavClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

// ResolveRxCUI returns the first RxNorm identifier for an exact name, or ""
func (c *RxNavClient) ResolveRxCUI(ctx context.Context, name string) string {
	const operation = "resolve_rxcui"

	var resp rxcuiResponse
	if err := getJSON(ctx, c.httpClient, c.endpoint("rxcui.json", "name", name), &resp); err != nil {
		observe(rxnavSource, operation, metrics.OutcomeError, err)
		return ""
	}

	if len(resp.IDGroup.RxNormID) == 0 || resp.IDGroup.RxNormID[0] == "" {
		observe(rxnavSource, operation, metrics.OutcomeEmpty, nil)
		return ""
	}

	observe(rxnavSource, operation, metrics.OutcomeOK, nil)
	return resp.IDGroup.RxNormID[0]
}

// ApproximateCandidates returns the approximate-match candidates for term
func (c *RxNavClient) ApproximateCandidates(ctx context.Context, term string) []entities.Candidate {
	const operation = "approximate_term"

	var resp approximateResponse
	if err := getJSON(ctx, c.httpClient, c.endpoint("approximateTerm.json", "term", term), &resp); err != nil {
		observe(rxnavSource, operation, metrics.OutcomeError, err)
		return nil
	}

	if len(resp.ApproximateGroup.Candidate) == 0 {
		observe(rxnavSource, operation, metrics.OutcomeEmpty, nil)
		return nil
	}

	observe(rxnavSource, operation, metrics.OutcomeOK, nil)
	return resp.ApproximateGroup.Candidate
}

// DrugNames flattens the concept names of every concept group for name,
// truncated to limit when limit is positive
func (c *RxNavClient) DrugNames(ctx context.Context, name string, limit int) []string {
	const operation = "drugs"

	var resp drugsResponse
	if err := getJSON(ctx, c.httpClient, c.endpoint("drugs.json", "name", name), &resp); err != nil {
		observe(rxnavSource, operation, metrics.OutcomeError, err)
		return nil
	}

	var names []string
	for _, group := range resp.DrugGroup.ConceptGroup {
		for _, prop := range group.ConceptProperties {
			if prop.Name != "" {
				names = append(names, prop.Name)
			}
		}
	}

	if len(names) == 0 {
		observe(rxnavSource, operation, metrics.OutcomeEmpty, nil)
		return nil
	}
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	observe(rxnavSource, operation, metrics.OutcomeOK, nil)
	return names
}

func (c *RxNavClient) endpoint(resource, key, value string) string {
	params := url.Values{}
	params.Set(key, value)
	return c.baseURL + "/REST/" + resource + "?" + params.Encode()
}
