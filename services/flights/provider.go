package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"skytrip/models"
)

// Provider is the external flight-offer aggregator boundary.
type Provider interface {
	Search(ctx context.Context, query models.SearchQuery) ([]models.FlightOffer, error)
}

// HTTPProvider talks to the aggregator's REST API.
type HTTPProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPProvider builds a provider with a sane request timeout.
func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Data []models.FlightOffer `json:"data"`
}

// Search queries the aggregator for priced offers.
func (p *HTTPProvider) Search(ctx context.Context, query models.SearchQuery) ([]models.FlightOffer, error) {
	params := url.Values{}
	params.Set("origin", query.Origin)
	params.Set("destination", query.Destination)
	params.Set("departureDate", query.Date)
	if query.ReturnDate != "" {
		params.Set("returnDate", query.ReturnDate)
	}
	params.Set("adults", strconv.Itoa(query.TicketCount))
	if query.TravelClass != "" {
		params.Set("travelClass", query.TravelClass)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/flight-offers?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build flight search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flight search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight search returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode flight search response: %w", err)
	}
	return body.Data, nil
}
