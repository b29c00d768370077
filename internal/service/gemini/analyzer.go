package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"FxPulse/internal/domain/models"
	xhttp "FxPulse/pkg/http"
	"FxPulse/pkg/util"
)

const promptTemplate = `
Analyze the following economic event for today (%s) and generate a clear trading signal:

Event: %s
Currency: %s
Previous: %s
Forecast: %s
Actual: %s

Provide a trading signal in the following format:
Event: [Event Title]
Signal: [BUY/SELL/NEUTRAL/WAIT]
Confidence: [percentage between 60-95%%]
Reasoning: [1-2 sentence explanation]
Direction: [↑ for buy, ↓ for sell, ↔ for neutral]
Affected markets: [List of potentially affected markets, e.g., "EUR/USD, DAX, Gold"]
`

// Analyzer asks a Gemini generateContent endpoint for a trading signal on a
// single economic event. Only events scheduled for the current UTC day are
// analyzed; anything else is skipped without a network call.
type Analyzer struct {
	endpoint   string
	apiKey     string
	http       *xhttp.Client
	maxRetries int
	baseDelay  time.Duration
	sleep      func(time.Duration)
}

// Option configures Analyzer.
type Option func(*Analyzer)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Analyzer) {
		a.http = xhttp.NewClient(xhttp.WithTimeout(timeout))
	}
}

// WithRetry sets the retry budget for rate-limited requests.
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(a *Analyzer) {
		a.maxRetries = maxRetries
		a.baseDelay = baseDelay
	}
}

// NewAnalyzer creates an Analyzer for the given endpoint and API key.
func NewAnalyzer(endpoint, apiKey string, opts ...Option) *Analyzer {
	a := &Analyzer{
		endpoint:   endpoint,
		apiKey:     apiKey,
		http:       xhttp.NewClient(xhttp.WithTimeout(30 * time.Second)),
		maxRetries: 3,
		baseDelay:  time.Second,
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze returns a signal for the event, or (nil, nil) when the event is not
// scheduled for today and was skipped.
func (a *Analyzer) Analyze(ctx context.Context, event models.EconomicEvent, now time.Time) (*models.AISignal, error) {
	today := util.UTCDate(now)
	if !strings.HasPrefix(event.Date, today) {
		return nil, nil
	}

	actual := event.Actual
	if actual == "" {
		actual = "N/A"
	}
	prompt := fmt.Sprintf(promptTemplate, today, event.Title, event.Currency, event.Previous, event.Forecast, actual)

	text, err := a.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	signal := parseSignal(text)
	signal.EventID = event.ID
	signal.AnalyzedAt = now
	return signal, nil
}

func (a *Analyzer) generate(ctx context.Context, prompt string) (string, error) {
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.2,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1024,
		},
	}

	var lastErr error
	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		text, status, err := a.send(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err

		// Only rate limiting is worth retrying.
		if status != http.StatusTooManyRequests || attempt == a.maxRetries {
			return "", err
		}

		backoff := a.baseDelay * time.Duration(1<<(attempt-1))
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		a.sleep(backoff)
	}
	return "", lastErr
}

func (a *Analyzer) send(ctx context.Context, body generateRequest) (string, int, error) {
	resp, err := a.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    a.endpoint,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		QueryParams: map[string][]string{
			"key": {a.apiKey},
		},
		Body: body,
	})
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, fmt.Errorf("gemini returned %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", resp.StatusCode, fmt.Errorf("gemini returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, resp.StatusCode, nil
}

// parseSignal reads the model's line-oriented reply. Each line is split on
// the first colon; lines without one are dropped. A reply yielding no fields
// at all is kept as unparseable so the dashboard can show the raw miss.
func parseSignal(text string) *models.AISignal {
	fields := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		fields[key] = value
	}

	signal := &models.AISignal{
		State:  models.SignalParsed,
		Fields: fields,
	}
	if len(fields) == 0 {
		signal.State = models.SignalUnparseable
		return signal
	}

	signal.Event = fields["event"]
	signal.Signal = fields["signal"]
	signal.Confidence = fields["confidence"]
	signal.Reasoning = fields["reasoning"]
	signal.Direction = fields["direction"]
	signal.Markets = fields["affected markets"]
	return signal
}
