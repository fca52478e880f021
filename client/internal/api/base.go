package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	clerrors "github.com/eureka-residences/erkseed/client/internal/errors"
	"github.com/eureka-residences/erkseed/client/internal/types"
)

// HTTPClient interface for dependency injection
type HTTPClient = types.HTTPClient

// maxErrorBody bounds how much of a failed response is kept for reporting.
const maxErrorBody = 64 << 10

// endpoint joins baseURL (no trailing slash) with an API path.
func endpoint(baseURL, path string) string {
	return baseURL + path
}

// postJSON sends in as JSON and decodes a 2xx response into out.
func postJSON(ctx context.Context, httpClient HTTPClient, rawURL, operation string, in, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	// Note: Authorization header will be added by transport layer
	return do(httpClient, httpReq, operation, out)
}

// getJSON issues a GET with the given query parameters and decodes a 2xx
// response into out.
func getJSON(ctx context.Context, httpClient HTTPClient, rawURL, operation string, params map[string]string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		rawURL = rawURL + "?" + q.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	return do(httpClient, httpReq, operation, out)
}

func do(httpClient HTTPClient, httpReq *http.Request, operation string, out any) error {
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := httpReq.Context().Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", operation, ctxErr)
		}
		return clerrors.NewNetworkError(operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return clerrors.NewHTTPError(resp.StatusCode, string(b), operation)
	}
	if out == nil {
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return clerrors.NewNetworkError(operation, err)
	}
	// Some create endpoints answer 201/204 with no body.
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

// listPage fetches one page of a paginated collection.
func listPage[T any](ctx context.Context, httpClient HTTPClient, rawURL, operation string, params map[string]string) ([]T, error) {
	var page types.Page[T]
	if err := getJSON(ctx, httpClient, rawURL, operation, params, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return []T{}, nil
	}
	return page.Results, nil
}
