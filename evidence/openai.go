package evidence

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/teranos/wkrq/errors"
	"github.com/teranos/wkrq/logger"
	"github.com/teranos/wkrq/tableau"
)

const evidencePrompt = `You are a factual oracle for a bilateral logic system.
Given a predicate applied to arguments, judge the positive claim and the
negative claim independently. Answer with JSON only, in the form
{"positive":"supported|refuted|unknown","negative":"supported|refuted|unknown"}.
"positive" judges whether the claim holds; "negative" judges whether its
denial holds. Both may be supported (conflicting evidence) and both may
be unknown (no evidence). Do not add any other text.`

// OpenAIConfig configures an LLM-backed evidence provider.
type OpenAIConfig struct {
	APIKey string
	Model  string
	// RequestsPerSecond throttles API calls. Zero means 1 rps.
	RequestsPerSecond float64
}

// OpenAIProvider asks a chat model for bilateral verdicts. Responses
// are cached per instance and calls are rate limited; any API or
// parse failure surfaces as ErrProviderFailure, which the tableau
// engine degrades to an unknown/unknown gap.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter

	mu    sync.Mutex
	cache map[string]tableau.Evidence
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("evidence: OpenAI API key is not set")
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &OpenAIProvider{
		client:  openai.NewClient(cfg.APIKey),
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		cache:   make(map[string]tableau.Evidence),
	}, nil
}

func (p *OpenAIProvider) Evaluate(ctx context.Context, predicate string, terms []string) (tableau.Evidence, error) {
	key := instanceKey(predicate, terms)

	p.mu.Lock()
	if ev, ok := p.cache[key]; ok {
		p.mu.Unlock()
		return ev, nil
	}
	p.mu.Unlock()

	if err := p.limiter.Wait(ctx); err != nil {
		return tableau.Evidence{}, errors.Wrap(errors.ErrProviderFailure, err.Error())
	}

	logger.Logger.Debugw("querying evidence provider", "instance", key, "model", p.model)
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: evidencePrompt},
			{Role: openai.ChatMessageRoleUser, Content: key},
		},
		Temperature: 0,
	})
	if err != nil {
		return tableau.Evidence{}, errors.Wrapf(errors.ErrProviderFailure, "OpenAI call for %s: %v", key, err)
	}
	if len(resp.Choices) == 0 {
		return tableau.Evidence{}, errors.Wrapf(errors.ErrProviderFailure, "OpenAI returned no choices for %s", key)
	}

	ev, err := parseVerdict(resp.Choices[0].Message.Content)
	if err != nil {
		return tableau.Evidence{}, err
	}

	p.mu.Lock()
	p.cache[key] = ev
	p.mu.Unlock()
	return ev, nil
}

type verdictPayload struct {
	Positive string `json:"positive"`
	Negative string `json:"negative"`
}

// parseVerdict reads the model's JSON answer. Code fences are
// tolerated since chat models add them despite instructions.
func parseVerdict(raw string) (tableau.Evidence, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var payload verdictPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return tableau.Evidence{}, errors.Wrapf(errors.ErrProviderFailure, "unparseable verdict %q", raw)
	}
	pos, err := parseStatus(payload.Positive)
	if err != nil {
		return tableau.Evidence{}, err
	}
	neg, err := parseStatus(payload.Negative)
	if err != nil {
		return tableau.Evidence{}, err
	}
	return tableau.Evidence{Positive: pos, Negative: neg}, nil
}

func parseStatus(s string) (tableau.EvidenceStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "supported":
		return tableau.EvidenceSupported, nil
	case "refuted":
		return tableau.EvidenceRefuted, nil
	case "unknown", "":
		return tableau.EvidenceUnknown, nil
	}
	return tableau.EvidenceUnknown, errors.Wrapf(errors.ErrProviderFailure, "unknown verdict status %q", s)
}
