// Package parcelregistry talks to the external government parcel registry.
// The registry is a black box to the core: claim submission only needs to
// know whether a PIN exists within a county.
package parcelregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/jonumhills/townhall-rwa/internal/adapter"
)

// ParcelInfo is the registry's view of a parcel
type ParcelInfo struct {
	Exists         bool            `json:"exists"`
	Geometry       json.RawMessage `json:"geometry,omitempty"`
	ZoningMetadata json.RawMessage `json:"zoning_metadata,omitempty"`
}

// Client defines the interface for parcel registry lookups to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/parcelregistry_client.go -package=mocks -mock_names=Client=MockParcelRegistryClient
type Client interface {
	// LookupParcel fetches registry metadata for a PIN within a county
	LookupParcel(ctx context.Context, pin, countyID string) (*ParcelInfo, error)
}

// RegistryClient implements the parcel registry client
type RegistryClient struct {
	httpClient adapter.HTTPClient
	baseURL    string
}

// NewClient creates a new parcel registry client
func NewClient(httpClient adapter.HTTPClient, baseURL string) Client {
	return &RegistryClient{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// LookupParcel fetches registry metadata for a PIN within a county
func (c *RegistryClient) LookupParcel(ctx context.Context, pin, countyID string) (*ParcelInfo, error) {
	endpoint := fmt.Sprintf("%s/counties/%s/parcels/%s",
		c.baseURL, url.PathEscape(countyID), url.PathEscape(pin))

	var info ParcelInfo
	if err := c.httpClient.Get(ctx, endpoint, &info); err != nil {
		return nil, fmt.Errorf("failed to look up parcel %s/%s: %w", countyID, pin, err)
	}

	return &info, nil
}
