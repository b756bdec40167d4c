package sources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chrissnell/circadian/internal/series"
)

// HTTPSource downloads a CSV file. Any non-2xx status is a load failure.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (h *HTTPSource) Fetch(ctx context.Context) (series.RawSeries, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", h.URL, err)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", h.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to load %s: %s", h.URL, resp.Status)
	}

	return series.ParseCSV(resp.Body)
}

func (h *HTTPSource) Describe() string {
	return h.URL
}
