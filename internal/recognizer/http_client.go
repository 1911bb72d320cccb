package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type httpClient struct {
	host   string
	client *http.Client
}

func (c *httpClient) Name() string {
	return fmt.Sprintf("recognizer (%s)", c.host)
}

func (c *httpClient) Recognize(ctx context.Context, req RecognizeRequest) (RecognizeResponse, error) {
	if req.Traces == nil {
		req.Traces = []Trace{}
	}
	var out RecognizeResponse
	if err := c.post(ctx, "/recognize", req, &out); err != nil {
		return RecognizeResponse{}, err
	}
	return out, nil
}

func (c *httpClient) Hints(ctx context.Context, req HintsRequest) (HintsResponse, error) {
	if req.Traces == nil {
		req.Traces = []Trace{}
	}
	var out HintsResponse
	if err := c.post(ctx, "/hints", req, &out); err != nil {
		return HintsResponse{}, err
	}
	return out, nil
}

func (c *httpClient) post(ctx context.Context, path string, payload, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Endpoint: path, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", path, err)
	}
	return nil
}
