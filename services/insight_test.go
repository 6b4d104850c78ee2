package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/store"
	"github.com/yeremiapane/enterprise-pos/utils"
)

type stubInsight struct {
	text string
	err  error
}

func (s stubInsight) Generate(context.Context, DashboardStats, models.Settings) (string, error) {
	return s.text, s.err
}

func TestBuildInsightPrompt(t *testing.T) {
	prompt := BuildInsightPrompt(DashboardStats{TotalSales: 1234.5, TotalOrders: 7}, models.DefaultSettings())
	assert.Equal(t, "Analyze this POS data: Revenue $1234.5, Orders 7. Provide 3 short business growth tips.", prompt)
}

func TestGeminiClientGenerate(t *testing.T) {
	var gotPath, gotKey, gotQuery, gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotQuery = r.URL.RawQuery
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotText = body.Contents[0].Parts[0].Text
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"1. Run a lunch combo"}]}}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", "gemini-test", time.Second).WithBaseURL(server.URL)
	text, err := client.Generate(context.Background(), DashboardStats{TotalSales: 10, TotalOrders: 1}, models.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, "1. Run a lunch combo", text)
	assert.Equal(t, "/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Empty(t, gotQuery)
	assert.Contains(t, gotText, "Revenue $10, Orders 1")
}

func TestGeminiClientErrors(t *testing.T) {
	_, err := NewGeminiClient("", "gemini-test", 0).Generate(context.Background(), DashboardStats{}, models.DefaultSettings())
	assert.EqualError(t, err, "missing GEMINI_API_KEY")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	_, err = NewGeminiClient("k", "gemini-test", time.Second).WithBaseURL(server.URL).
		Generate(context.Background(), DashboardStats{}, models.DefaultSettings())
	assert.Error(t, err)
}

func TestGeminiKeyStaysOutOfErrorsAndLogs(t *testing.T) {
	utils.InitLogger()
	var logs bytes.Buffer
	utils.ErrorLogger.SetOutput(&logs)
	defer utils.InitLogger()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	const key = "AIza-secret-key"
	client := NewGeminiClient(key, "gemini-test", time.Second).WithBaseURL(server.URL)
	_, err := client.Generate(context.Background(), DashboardStats{}, models.DefaultSettings())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), key)

	app, _ := newTestApp(t, WithInsight(client))
	utils.ErrorLogger.SetOutput(&logs)
	assert.Equal(t, InsightError, app.DashboardInsight(context.Background(), DashboardStats{}))
	assert.Contains(t, logs.String(), "insight generation failed")
	assert.NotContains(t, logs.String(), key)
}

func TestDashboardInsightFallbacks(t *testing.T) {
	utils.InitLogger()
	ctx := context.Background()

	tests := []struct {
		name string
		gen  InsightGenerator
		want string
	}{
		{"not configured", nil, InsightUnavailable},
		{"empty reply", stubInsight{text: "  "}, InsightUnavailable},
		{"failure", stubInsight{err: errors.New("timeout")}, InsightError},
		{"reply", stubInsight{text: "Open earlier on weekends."}, "Open earlier on weekends."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewApp(ctx, store.NewMemoryBackend(), WithInsight(tt.gen))
			assert.Equal(t, tt.want, app.DashboardInsight(ctx, DashboardStats{}))
		})
	}
}
