// Package geo resolves the user's country for region-flavored content.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/deepanshuvermaa/dripfeed/internal/logging"
	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

const defaultEndpoint = "https://ipapi.co/json/"

// Resolver looks up the user's country via an IP geolocation service. The
// lookup is advisory; every failure falls back to the default region.
type Resolver struct {
	endpoint string
	client   *http.Client
}

// NewResolver creates a resolver with a short timeout so a slow lookup never
// delays startup noticeably.
func NewResolver() *Resolver {
	return &Resolver{
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Region returns the user's country name, or the default region when the
// lookup fails for any reason.
func (r *Resolver) Region(ctx context.Context) string {
	region, err := r.lookup(ctx)
	if err != nil {
		logging.Debug("geo lookup failed, using default region", "error", err)
		return model.DefaultRegion
	}
	return region
}

func (r *Resolver) lookup(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geo lookup returned status %d", resp.StatusCode)
	}

	var body struct {
		CountryName string `json:"country_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.CountryName == "" {
		return "", fmt.Errorf("geo lookup returned no country")
	}
	return body.CountryName, nil
}
