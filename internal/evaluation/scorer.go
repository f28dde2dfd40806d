package evaluation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/speaking-practice/backend/internal/llm"
)

// LLMScorer asks a language model to apply the rubric.
type LLMScorer struct {
	client    llm.Client
	maxTokens int
}

func NewLLMScorer(client llm.Client) *LLMScorer {
	return &LLMScorer{client: client, maxTokens: 1024}
}

type rubricReply struct {
	TotalScore   *float64 `json:"total_score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

func (s *LLMScorer) Score(ctx context.Context, req ScoreRequest) (*RubricScore, error) {
	schema := req.Rubric.Schema()
	resp, err := s.client.Generate(ctx, llm.Request{
		System:      SystemPrompt(req.Rubric),
		Prompt:      BuildUserPrompt(req),
		Schema:      schema,
		MaxTokens:   s.maxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("score %s response: %w", req.Rubric.Mode(), err)
	}

	return ParseRubricReply(req.Rubric, resp.Content)
}

// ParseRubricReply strips code fences, validates the reply against the
// rubric schema and extracts the component scores.
func ParseRubricReply(r Rubric, content string) (*RubricScore, error) {
	cleaned := llm.StripCodeFences(content)
	if err := llm.ValidateJSON(r.Schema(), cleaned); err != nil {
		return nil, err
	}

	var reply rubricReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: cleaned, Err: err}
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: cleaned, Err: err}
	}

	score := &RubricScore{
		Components:   make(map[string]float64),
		Total:        reply.TotalScore,
		Feedback:     reply.Feedback,
		Strengths:    reply.Strengths,
		Improvements: reply.Improvements,
	}
	for _, c := range r.Criteria() {
		field, ok := raw[scoreField(c.Key)]
		if !ok {
			continue
		}
		var v float64
		if err := json.Unmarshal(field, &v); err != nil {
			return nil, &llm.ErrInvalidResponse{Content: cleaned, Err: fmt.Errorf("%s: %w", scoreField(c.Key), err)}
		}
		score.Components[c.Key] = v
	}

	if score.Total == nil && len(score.Components) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: cleaned, Err: fmt.Errorf("reply has no scores")}
	}
	return score, nil
}
