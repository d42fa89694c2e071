package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gquyenhsb/agriplan-backend/internal/projects/domain"
)

// Client reverse-geocodes coordinates through the Geoapify API. The result is
// only used to fill the project's location and seed the weather city; it is
// never parsed further.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		BaseURL: "https://api.geoapify.com/v1/geocode",
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	Features []struct {
		Properties struct {
			Formatted string `json:"formatted"`
			City      string `json:"city"`
			Country   string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

// Reverse resolves a lat/lon pair to an address.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*domain.LocationInfo, error) {
	url := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&apiKey=%s", c.BaseURL, lat, lon, c.APIKey)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode reverse: %w", err)
	}
	defer resp.Body.Close()

	var out reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("geocode decode: %w", err)
	}
	if resp.StatusCode >= 400 || len(out.Features) == 0 {
		return nil, fmt.Errorf("geocode error (status %d)", resp.StatusCode)
	}

	props := out.Features[0].Properties
	address := props.Formatted
	if address == "" {
		address = "Không tìm thấy địa chỉ"
	}
	return &domain.LocationInfo{
		Address: address,
		City:    props.City,
		Country: props.Country,
		Lat:     lat,
		Lon:     lon,
	}, nil
}
