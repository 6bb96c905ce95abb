package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/cache"
)

const holidayTTL = 24 * time.Hour

// Holiday is one calendar decoration record. It never affects scheduling.
type Holiday struct {
	Name     string `json:"name"`
	Date     string `json:"date"` // YYYY-MM-DD
	IsOffDay bool   `json:"is_off_day"`
}

// HolidayClient fetches the holiday list for a year from a hosted calendar
// service, caching per year.
type HolidayClient struct {
	endpoint string
	client   *http.Client
	cache    *cache.TTLCache[int, []Holiday]
}

func NewHolidayClient(endpoint string) *HolidayClient {
	return &HolidayClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		cache:    cache.New[int, []Holiday](),
	}
}

// ForYear returns the year's holidays, or an empty list on any failure.
func (c *HolidayClient) ForYear(ctx context.Context, year int) []Holiday {
	if c.endpoint == "" {
		return nil
	}
	if cached, ok := c.cache.Get(year); ok {
		return cached
	}

	url := fmt.Sprintf("%s/%d.json", c.endpoint, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("holiday fetch: build request: %v", err)
		return nil
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("holiday fetch: request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("holiday fetch: unexpected status %d", resp.StatusCode)
		return nil
	}

	var holidays []Holiday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		log.Printf("holiday fetch: decode response: %v", err)
		return nil
	}

	c.cache.Set(year, holidays, holidayTTL)
	return holidays
}
