package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gquyenhsb/agriplan-backend/internal/projects/domain"
)

// Client fetches current conditions from OpenWeatherMap. Only the handful of
// fields the prompts embed are decoded.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: "https://api.openweathermap.org/data/2.5/weather",
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type owmResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Message string `json:"message"`
}

// Current fetches the current weather for a city, metric units.
func (c *Client) Current(ctx context.Context, city string) (*domain.WeatherInfo, error) {
	u := fmt.Sprintf("%s?q=%s&appid=%s&units=metric", c.BaseURL, url.QueryEscape(city), c.APIKey)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather fetch: %w", err)
	}
	defer resp.Body.Close()

	var out owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("weather decode: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := out.Message
		if msg == "" {
			msg = "Lỗi lấy dữ liệu thời tiết"
		}
		return nil, fmt.Errorf("weather error (status %d): %s", resp.StatusCode, msg)
	}

	info := &domain.WeatherInfo{
		City:        city,
		Temperature: out.Main.Temp,
		Humidity:    out.Main.Humidity,
		WindSpeed:   out.Wind.Speed,
	}
	if len(out.Weather) > 0 {
		info.Description = out.Weather[0].Description
	}
	return info, nil
}
