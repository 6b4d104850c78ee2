package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/utils"
)

const (
	InsightUnavailable = "Insight unavailable."
	InsightError       = "AI connection error."
)

// InsightGenerator turns dashboard totals into short free-text advice.
type InsightGenerator interface {
	Generate(ctx context.Context, stats DashboardStats, settings models.Settings) (string, error)
}

// BuildInsightPrompt is the prompt sent for a dashboard snapshot.
func BuildInsightPrompt(stats DashboardStats, settings models.Settings) string {
	return fmt.Sprintf("Analyze this POS data: Revenue %s%s, Orders %d. Provide 3 short business growth tips.",
		settings.CurrencySymbol, strconv.FormatFloat(stats.TotalSales, 'f', -1, 64), stats.TotalOrders)
}

// GeminiClient calls the Gemini generateContent endpoint.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func (g *GeminiClient) WithBaseURL(u string) *GeminiClient {
	g.baseURL = strings.TrimRight(u, "/")
	return g
}

func (g *GeminiClient) Generate(ctx context.Context, stats DashboardStats, settings models.Settings) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("missing GEMINI_API_KEY")
	}
	if g.model == "" {
		return "", errors.New("missing GEMINI_MODEL")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	payload := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]string{
					{"text": BuildInsightPrompt(stats, settings)},
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api error: status %d", resp.StatusCode)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// DashboardInsight never fails: an empty reply becomes InsightUnavailable
// and any error becomes InsightError.
func (a *App) DashboardInsight(ctx context.Context, stats DashboardStats) string {
	if a.Insight == nil {
		return InsightUnavailable
	}
	text, err := a.Insight.Generate(ctx, stats, a.Settings.Get())
	if err != nil {
		utils.ErrorLogger.Printf("insight generation failed: %v", err)
		return InsightError
	}
	if strings.TrimSpace(text) == "" {
		return InsightUnavailable
	}
	return text
}
