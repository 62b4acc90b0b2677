// Package ogd fetches the hourly traffic counts published for the
// Rosengartenbrücke on the Open Government Data portal of the city of
// Zürich. The portal publishes one CSV file per calendar year.
package ogd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
)

// DataSourceError wraps a failure to fetch or parse one year's dataset.
// These are network-level failures, not core-logic errors; the caller
// is expected to fall back to the cached snapshot.
type DataSourceError struct {
	Year int
	URL  string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("ogd fetch for %d failed (%s): %v", e.Year, e.URL, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// Client downloads yearly count files from the OGD portal.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a portal client. baseURL must end with a slash.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// YearURL returns the download URL for one year's CSV file.
func (c *Client) YearURL(year int) string {
	return fmt.Sprintf("%sugz_ogd_traffic_rosengartenbruecke_h1_%d.csv", c.baseURL, year)
}

// FetchYear downloads and parses the count records for one year.
func (c *Client) FetchYear(ctx context.Context, year int) ([]models.CountRecord, error) {
	url := c.YearURL(year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DataSourceError{Year: year, URL: url, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &DataSourceError{Year: year, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DataSourceError{Year: year, URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	rows, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, &DataSourceError{Year: year, URL: url, Err: err}
	}

	return rows, nil
}
