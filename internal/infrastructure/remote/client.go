package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/invoicehub/backend/internal/domain/remote"
)

// maxResponseSize caps how much of a peer response is read (1MB)
const maxResponseSize = 1 * 1024 * 1024

// getJSON performs a single GET against a peer service and decodes the body.
// The failure taxonomy is fixed here for all three clients: 404 maps to
// remote.ErrNotFound, everything else that goes wrong maps to
// remote.ErrUnavailable with the cause attached.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", remote.ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", remote.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return remote.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d from %s", remote.ErrUnavailable, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: %v", remote.ErrUnavailable, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: invalid payload from %s: %v", remote.ErrUnavailable, url, err)
	}
	return nil
}
