package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/examtrack/backend/internal/grading"
)

// LLMAdvisor writes feedback by calling an OpenAI-compatible chat endpoint
// (Ollama, LM Studio, vLLM, etc.).
type LLMAdvisor struct {
	url    string       // e.g. "http://localhost:1234"
	model  string       // e.g. "qwen3-8b"
	client *http.Client // reused across calls
}

// Compile-time check: *LLMAdvisor satisfies the Advisor interface.
var _ Advisor = (*LLMAdvisor)(nil)

func NewLLMAdvisor(url, model string) *LLMAdvisor {
	return &LLMAdvisor{
		url:   strings.TrimRight(url, "/"),
		model: model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

const maxAttempts = 2

// Analyze asks the model for feedback on the report. An empty reply counts as
// a failed attempt and is retried once.
func (a *LLMAdvisor) Analyze(ctx context.Context, report grading.ConsolidatedReport) (string, error) {
	if len(report.Subjects) == 0 {
		return "", &AnalysisError{Reason: "no graded exams to analyze"}
	}

	prompt, err := buildPrompt(report)
	if err != nil {
		return "", &AnalysisError{Reason: "could not encode report", Wrapped: err}
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", &AnalysisError{Reason: "cancelled", Wrapped: err}
		}

		text, err := a.callLLM(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}
		return text, nil
	}

	return "", &AnalysisError{
		Reason:  fmt.Sprintf("failed after %d attempts", maxAttempts),
		Wrapped: lastErr,
	}
}

// ============================================================================
// LLM communication
// ============================================================================

type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (a *LLMAdvisor) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := llmRequest{
		Model: a.model,
		Messages: []llmMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.4,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM returned status %d", resp.StatusCode)
	}

	var llmResp llmResponse
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode LLM response: %w", err)
	}
	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	content := stripThinking(llmResp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("LLM returned empty content")
	}
	return content, nil
}

// ============================================================================
// Prompt
// ============================================================================

const systemPrompt = `/no_think
You are an experienced, encouraging study mentor for people preparing for public-service exams.`

// promptRow is the compact per-subject view sent to the model.
type promptRow struct {
	Subject         string  `json:"subject"`
	Correct         int     `json:"correct"`
	Incorrect       int     `json:"incorrect"`
	Blank           int     `json:"blank"`
	Annulled        int     `json:"annulled"`
	Questions       int     `json:"questions"`
	NetScore        int     `json:"net_score"`
	GrossPercentage float64 `json:"gross_percentage"`
	NetPercentage   float64 `json:"net_percentage"`
}

func toPromptRow(s grading.SubjectTotals) promptRow {
	return promptRow{
		Subject:         s.Name,
		Correct:         s.Correct,
		Incorrect:       s.Incorrect,
		Blank:           s.Blank,
		Annulled:        s.Annulled,
		Questions:       s.Capacity,
		NetScore:        s.NetScore,
		GrossPercentage: round2(s.GrossPercentage),
		NetPercentage:   round2(s.NetPercentage),
	}
}

func buildPrompt(report grading.ConsolidatedReport) (string, error) {
	rows := make([]promptRow, 0, len(report.Subjects))
	for _, s := range report.Subjects {
		rows = append(rows, toPromptRow(s))
	}

	data, err := json.Marshal(struct {
		Exams    int         `json:"exams"`
		Subjects []promptRow `json:"subjects"`
		Total    promptRow   `json:"total"`
	}{report.Exams, rows, toPromptRow(report.Total)})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Analyze this consolidated exam performance and give constructive feedback.
Percentages are fractions between 0 and 1.

DATA:
%s

Your answer must contain:
1. A short overall summary.
2. Strong subjects.
3. Subjects to improve, looking at incorrect and blank answers.
4. Two practical study suggestions.
5. One sentence of motivation.

Answer in plain Markdown. Do not repeat the raw data.`, data), nil
}

// stripThinking drops a leading <think>...</think> block some local models
// emit even when asked not to.
func stripThinking(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<think>") {
		if end := strings.Index(s, "</think>"); end != -1 {
			s = s[end+len("</think>"):]
		}
	}
	return strings.TrimSpace(s)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
