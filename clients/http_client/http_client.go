package http_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"zakatbackend/types"
)

// FetchValuation posts a valuation request to the external valuation service
// and decodes its response. The context carries the caller's deadline and
// cancellation, so an abandoned request stops the round trip.
func FetchValuation(ctx context.Context, request types.ValuationRequest) (*types.ValuationResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(os.Getenv("VALUATION_URL"), "/") + "/valuation"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := strings.TrimSpace(string(respBody))
		if message == "" {
			message = fmt.Sprintf("valuation service returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", message)
	}

	var valuation types.ValuationResponse
	if err := json.Unmarshal(respBody, &valuation); err != nil {
		zap.L().Error("Failed to unmarshal valuation response", zap.Error(err))
		return nil, err
	}
	return &valuation, nil
}

// FetchGuide retrieves the instructional text. Callers bound the fetch with a
// timeout context; failures are theirs to replace with the fixed fallback.
func FetchGuide(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, os.Getenv("GUIDE_URL"), nil)
	if err != nil {
		return "", err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("guide endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// UpstreamHealth probes the valuation service's health endpoint. It is a
// manual connectivity check only, never part of the valuation pipeline.
func UpstreamHealth(ctx context.Context) (string, error) {
	url := strings.TrimRight(os.Getenv("VALUATION_URL"), "/") + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("health endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}
