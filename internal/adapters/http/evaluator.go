// Package http talks to the compute service over JSON/HTTP: RemoteEvaluator is
// the client side and ComputeHandler serves the four operations.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bft-labs/keycalc/internal/domain"
	"github.com/bft-labs/keycalc/internal/ports"
)

// ServicePath is the route prefix of the compute service. An operation is
// served at ServicePath + Operator.Name().
const ServicePath = "/calculator.CalculatorService/"

// DefaultTimeout bounds a single remote calculation.
const DefaultTimeout = 3 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 64 << 10

type calculateRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type calculateResponse struct {
	Result *float64 `json:"result"`
	Error  string   `json:"error,omitempty"`
}

// RemoteEvaluator implements ports.Evaluator against the compute service.
//
// A server-reported error payload becomes Failure(ServiceError). Every other
// problem (timeout, refused connection, non-2xx status, malformed body)
// becomes Failure(ServiceUnavailable).
type RemoteEvaluator struct {
	client  ports.HTTPClient
	baseURL string
	timeout time.Duration
	logger  ports.Logger
}

// NewRemoteEvaluator creates a remote evaluator for the service at baseURL.
// A non-positive timeout selects DefaultTimeout.
func NewRemoteEvaluator(client ports.HTTPClient, baseURL string, timeout time.Duration, logger ports.Logger) *RemoteEvaluator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RemoteEvaluator{
		client:  client,
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
	}
}

// Evaluate performs one request/response exchange for a op b.
func (e *RemoteEvaluator) Evaluate(ctx context.Context, a, b float64, op domain.Operator) domain.Outcome {
	name := op.Name()
	if name == "" {
		return domain.Fail(domain.UnknownOperator())
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	value, err := e.call(ctx, name, a, b)
	if err != nil {
		var failure *domain.Failure
		if errors.As(err, &failure) {
			e.logger.Debug("compute service reported error",
				ports.String("op", name),
				ports.String("message", failure.Message))
			return domain.Fail(failure)
		}
		e.logger.Debug("compute service unavailable",
			ports.String("op", name),
			ports.Duration("elapsed", time.Since(start)),
			ports.Err(err))
		return domain.Fail(domain.ServiceUnavailable())
	}

	e.logger.Debug("compute service result",
		ports.String("op", name),
		ports.Float64("result", value),
		ports.Duration("elapsed", time.Since(start)))
	return domain.Success(value)
}

// call returns a *domain.Failure error for application-level failures and a
// plain error for transport-level ones.
func (e *RemoteEvaluator) call(ctx context.Context, name string, a, b float64) (float64, error) {
	payload, err := json.Marshal(calculateRequest{A: a, B: b})
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	url := e.baseURL + ServicePath + name
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return 0, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var out calculateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if out.Error != "" {
		return 0, domain.ServiceError(out.Error)
	}
	if out.Result == nil {
		return 0, errors.New("decode response: missing result")
	}
	return *out.Result, nil
}
