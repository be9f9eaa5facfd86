package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/giygas/medic-api/interfaces"
	"github.com/giygas/medic-api/logging"
	"github.com/giygas/medic-api/medicineparser/entities"
	"github.com/giygas/medic-api/metrics"
)

var _ interfaces.LabelSource = (*FDAClient)(nil)

const fdaSource = "fda"

// FDAClient queries the openFDA drug label endpoint
type FDAClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewFDAClient(baseURL string, timeout time.Duration) *FDAClient {
	return &FDAClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

// LabelsByBrand searches labels whose brand name matches term. A zero limit
// leaves the page size to the API.
func (c *FDAClient) LabelsByBrand(ctx context.Context, term string, limit int) []entities.Label {
	search := "openfda.brand_name:" + searchTerm(term)
	return c.search(ctx, "labels_by_brand", search, limit)
}

// LabelsByBrandOrGeneric searches labels matching term as brand or generic name
func (c *FDAClient) LabelsByBrandOrGeneric(ctx context.Context, term string, limit int) []entities.Label {
	t := searchTerm(term)
	search := fmt.Sprintf("openfda.brand_name:%s OR openfda.generic_name:%s", t, t)
	return c.search(ctx, "labels_by_brand_or_generic", search, limit)
}

func (c *FDAClient) search(ctx context.Context, operation, search string, limit int) []entities.Label {
	params := url.Values{}
	params.Set("search", search)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	endpoint := c.baseURL + "/drug/label.json?" + params.Encode()

	var resp labelResponse
	err := getJSON(ctx, c.httpClient, endpoint, &resp)

	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound:
		// openFDA answers 404 when nothing matches
		metrics.UpstreamRequests.WithLabelValues(fdaSource, operation, metrics.OutcomeNotFound).Inc()
		logging.Debug("No FDA label matched", "operation", operation, "search", search)
		return nil
	case err != nil:
		observe(fdaSource, operation, metrics.OutcomeError, err)
		return nil
	case len(resp.Results) == 0:
		observe(fdaSource, operation, metrics.OutcomeEmpty, nil)
		return nil
	}

	observe(fdaSource, operation, metrics.OutcomeOK, nil)
	return resp.Results
}

// searchTerm quotes multi-word terms so openFDA matches the phrase
func searchTerm(term string) string {
	term = strings.TrimSpace(strings.ReplaceAll(term, `"`, ""))
	if strings.ContainsAny(term, " \t") {
		return `"` + term + `"`
	}
	return term
}
