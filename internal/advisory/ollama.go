package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/moodshot/moodshot/internal/moods"
)

const (
	promptDirective = "Generate a short, poetic, 5-10 word prompt for a photography app that focuses on current mood. No questions, just a calm directive. Example: 'Find a light that feels like home.'"

	insightDirective = "Based on this week's mood history: %s. Provide a single sentence (max 15 words) of mature, calm reflection on the user's emotional landscape. Avoid being overly cheerful; aim for resonance."

	suggestDirective = "A photo is identified by the handle %q. Pick the single best fitting mood from this list and answer with the mood id only: %s."
)

// OllamaProvider generates advisory text through a local Ollama instance.
// Failures fall back to the static rotation so the endpoints stay available.
type OllamaProvider struct {
	client   *resty.Client
	model    string
	fallback *StaticProvider
}

// NewOllamaProvider targets baseURL (default http://localhost:11434 when
// empty) with the given model.
func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(2 * time.Minute)
	return &OllamaProvider{client: c, model: model, fallback: NewStaticProvider()}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

func (p *OllamaProvider) DailyPrompt(ctx context.Context) (string, error) {
	out, err := p.generate(ctx, promptDirective)
	if err != nil || out == "" {
		return p.fallback.DailyPrompt(ctx)
	}
	return out, nil
}

func (p *OllamaProvider) MoodInsight(ctx context.Context, history []Sample) (string, error) {
	if len(history) == 0 {
		return emptyHistoryInsight, nil
	}
	hist, err := json.Marshal(history)
	if err != nil {
		return p.fallback.MoodInsight(ctx, history)
	}
	out, err := p.generate(ctx, fmt.Sprintf(insightDirective, hist))
	if err != nil || out == "" {
		return p.fallback.MoodInsight(ctx, history)
	}
	return out, nil
}

// SuggestMood asks the model to pick from the catalog; anything that does not
// resolve to a known mood id becomes "no suggestion".
func (p *OllamaProvider) SuggestMood(ctx context.Context, photoHandle string) (string, error) {
	ids := make([]string, 0, len(moods.Catalog))
	for _, m := range moods.Catalog {
		ids = append(ids, m.ID)
	}
	out, err := p.generate(ctx, fmt.Sprintf(suggestDirective, photoHandle, strings.Join(ids, ", ")))
	if err != nil {
		return "", nil
	}
	id := strings.ToLower(strings.TrimSpace(out))
	if !moods.IsValid(id) {
		return "", nil
	}
	return id, nil
}

func (p *OllamaProvider) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{Model: p.model, Prompt: prompt, Stream: false}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode(), resp.String())
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return strings.TrimSpace(gr.Response), nil
}

// HealthPing implements health.HealthPinger against the Ollama tags endpoint.
func (p *OllamaProvider) HealthPing(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("ollama status %d", resp.StatusCode())
	}
	return nil
}
