package spec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxRemoteDocument = 16 << 20

var ErrDocumentTooLarge = errors.New("api document too large")

// HTTPSource fetches the document from an upstream generator. MaxBytes
// defaults to 16 MiB; larger bodies fail instead of being cut short.
type HTTPSource struct {
	URL      string
	Client   *http.Client
	MaxBytes int64
}

func (h HTTPSource) Document(ctx context.Context) ([]byte, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("spec generator http error: %s", resp.Status)
	}

	limit := h.MaxBytes
	if limit <= 0 {
		limit = maxRemoteDocument
	}
	if resp.ContentLength > limit {
		return nil, fmt.Errorf("%w: %s declares %d bytes, limit %d", ErrDocumentTooLarge, h.URL, resp.ContentLength, limit)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrDocumentTooLarge, h.URL, limit)
	}
	return Normalize(b)
}
