// Package matcher turns free-text shopping lists into catalogue products using an
// external text understanding service.
package matcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"real-preco/internal/catalog"
	"real-preco/internal/model"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single call to the matching service.
const DefaultTimeout = 15 * time.Second

// Messages shown to the shopper for non-success outcomes.
const (
	EmptyMatchMessage = "Não encontramos produtos correspondentes. Tente descrever os itens de outra forma."
	FailedMessage     = "Ocorreu um erro ao buscar os produtos. Tente novamente."
)

// Status is the lifecycle state of a match request.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusLoading    Status = "loading"
	StatusSuccess    Status = "success"
	StatusEmptyMatch Status = "empty"
	StatusFailed     Status = "failed"
)

// Result is the outcome of one matching request.
type Result struct {
	Query        string          `json:"query"`
	Status       Status          `json:"status"`
	CandidateIDs []int           `json:"candidateIds,omitempty"`
	Products     []model.Product `json:"products,omitempty"`
	Reason       string          `json:"reason,omitempty"`
	Message      string          `json:"message,omitempty"`
}

// TextMatcher is the external matching capability. It receives the shopping list
// and the reduced catalogue as JSON and returns the raw JSON response, which must
// look like {"products": [{"productId": 1}]}.
type TextMatcher interface {
	Match(ctx context.Context, listText string, reducedCatalog []byte) (string, error)
}

// Recorder observes completed match requests.
type Recorder interface {
	ObserveMatch(status string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveMatch(string, time.Duration) {}

// ErrUnavailable is returned by the matcher used when no service is configured.
var ErrUnavailable = errors.New("smart list unavailable")

// Unavailable is a TextMatcher that always fails.
type Unavailable struct{}

// Match always returns ErrUnavailable.
func (Unavailable) Match(context.Context, string, []byte) (string, error) {
	return "", ErrUnavailable
}

// Matcher validates matching-service output against the catalogue.
type Matcher struct {
	catalog     *catalog.Catalog
	reducedJSON []byte
	client      TextMatcher
	timeout     time.Duration
	recorder    Recorder
	logger      zerolog.Logger
}

// New creates a matcher over cat. A zero timeout uses DefaultTimeout and a nil
// recorder discards observations.
func New(cat *catalog.Catalog, client TextMatcher, timeout time.Duration, recorder Recorder, logger zerolog.Logger) (*Matcher, error) {
	reducedJSON, err := json.Marshal(cat.Reduced())
	if err != nil {
		return nil, fmt.Errorf("failed to encode reduced catalogue: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Matcher{
		catalog:     cat,
		reducedJSON: reducedJSON,
		client:      client,
		timeout:     timeout,
		recorder:    recorder,
		logger:      logger.With().Str("component", "matcher").Logger(),
	}, nil
}

// Match resolves listText to catalogue products. It never returns an error:
// failures are reported through Result.Status.
func (m *Matcher) Match(ctx context.Context, listText string) Result {
	query := strings.TrimSpace(listText)
	if query == "" {
		return Result{Query: listText, Status: StatusSuccess, Products: []model.Product{}}
	}

	start := time.Now()
	result := m.match(ctx, query)
	result.Query = listText
	m.recorder.ObserveMatch(string(result.Status), time.Since(start))

	return result
}

func (m *Matcher) match(ctx context.Context, query string) Result {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	raw, err := m.call(ctx, query)
	if err != nil {
		reason := failureReason(err)
		m.logger.Warn().Err(err).Str("reason", reason).Msg("matching service call failed")
		return failed(reason)
	}

	ids, err := ParseResponse(raw)
	if err != nil {
		m.logger.Warn().Err(err).Msg("matching service returned a non-conforming response")
		return failed(err.Error())
	}

	products := m.catalog.Select(ids)
	if len(products) == 0 {
		m.logger.Debug().Int("candidates", len(ids)).Msg("no catalogue products matched")
		return Result{Status: StatusEmptyMatch, CandidateIDs: ids, Message: EmptyMatchMessage}
	}

	m.logger.Debug().
		Int("candidates", len(ids)).
		Int("matched", len(products)).
		Msg("shopping list matched")

	return Result{Status: StatusSuccess, CandidateIDs: ids, Products: products}
}

// call runs the service request so that a service ignoring ctx still cannot
// hold the caller past the deadline.
func (m *Matcher) call(ctx context.Context, query string) (string, error) {
	type callResult struct {
		raw string
		err error
	}

	done := make(chan callResult, 1)
	go func() {
		raw, err := m.client.Match(ctx, query, m.reducedJSON)
		done <- callResult{raw: raw, err: err}
	}()

	select {
	case r := <-done:
		if r.err == nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
		return r.raw, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func failed(reason string) Result {
	return Result{Status: StatusFailed, Reason: reason, Message: FailedMessage}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return err.Error()
	}
}
