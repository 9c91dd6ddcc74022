package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yungbote/flashcards-backend/internal/observability"
	"github.com/yungbote/flashcards-backend/internal/platform/httpx"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

const (
	DefaultURL     = "https://api-inference.huggingface.co/models/mrm8488/t5-base-finetuned-question-generation-ap"
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
)

var (
	ErrMissingToken         = errors.New("missing inference bearer token")
	ErrEmptyResponse        = errors.New("inference response contained no generations")
	ErrMissingGeneratedText = errors.New("inference response has no generated_text")
)

// Client talks to a hosted text2text-generation model.
type Client interface {
	// GenerateText sends inputs as a single request and returns the first generation.
	GenerateText(ctx context.Context, inputs string) (string, error)
}

type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
	// HTTPClient overrides the default traced client; used by tests.
	HTTPClient *http.Client
}

type client struct {
	log        *logger.Logger
	url        string
	token      string
	httpClient *http.Client
}

type generateRequest struct {
	Inputs string `json:"inputs"`
}

type generation struct {
	GeneratedText *string `json:"generated_text"`
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, ErrMissingToken
	}
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		url = DefaultURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &client{
		log:        log.With("client", "HFInference"),
		url:        url,
		token:      token,
		httpClient: httpClient,
	}, nil
}

func (c *client) GenerateText(ctx context.Context, inputs string) (string, error) {
	start := time.Now()
	text, err := c.generate(ctx, inputs)
	outcome := "ok"
	if err != nil {
		outcome = httpx.FailureReason(err)
		c.log.Debug("inference request failed",
			"reason", outcome,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		c.log.Debug("inference request succeeded", "duration_ms", time.Since(start).Milliseconds())
	}
	observability.Current().ObserveInference(outcome, time.Since(start))
	return text, err
}

func (c *client) generate(ctx context.Context, inputs string) (string, error) {
	raw, err := c.doOnce(ctx, generateRequest{Inputs: inputs})
	if err != nil {
		return "", err
	}

	var out []generation
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("inference decode error: %w", err)
	}
	if len(out) == 0 {
		return "", ErrEmptyResponse
	}
	if out[0].GeneratedText == nil {
		return "", ErrMissingGeneratedText
	}
	return *out[0].GeneratedText, nil
}

func (c *client) doOnce(ctx context.Context, body any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &httpx.StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}
