package preview

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultProbeTimeout bounds the intro video reachability check.
const DefaultProbeTimeout = 3 * time.Second

// Prober checks whether the intro video can be fetched.
type Prober func(ctx context.Context, url string) error

// HTTPProber issues a HEAD request and accepts any 2xx response.
func HTTPProber(client *http.Client) Prober {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, url string) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching intro video: %w", err)
		}
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("fetching intro video: unexpected status %s", resp.Status)
		}
		return nil
	}
}

// OfflineProber assumes the video plays without touching the network.
func OfflineProber() Prober {
	return func(context.Context, string) error { return nil }
}
