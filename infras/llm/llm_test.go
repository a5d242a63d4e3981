package llm_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/config"
	"naturekids/infras/llm"
	"naturekids/infras/otel/mocks"
)

func newConfig(endpoint, apiKey string) *config.Config {
	cfg := &config.Config{}
	cfg.External.LLM.Endpoint = endpoint
	cfg.External.LLM.Model = "gemini-2.0-flash"
	cfg.External.LLM.APIKey = apiKey
	cfg.External.LLM.TimeoutSeconds = 5

	return cfg
}

func TestGenerate_WithoutKey(t *testing.T) {
	generator := llm.New(newConfig("http://unused/", ""), mocks.NewOtel())

	_, err := generator.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantText string
		wantErr  bool
	}{
		{
			name:     "first candidate text",
			status:   http.StatusOK,
			body:     `{"candidates":[{"content":{"role":"model","parts":[{"text":"Leaf Hunt: find leaves."}]}}]}`,
			wantText: "Leaf Hunt: find leaves.",
		},
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    `{"candidates":[]}`,
			wantErr: true,
		},
		{
			name:    "upstream error",
			status:  http.StatusInternalServerError,
			body:    `{"error":{"code":500,"message":"boom"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotKey string
			var gotRequest map[string]any

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotKey = r.URL.Query().Get("key")
				body, _ := io.ReadAll(r.Body)
				_ = json.Unmarshal(body, &gotRequest)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			generator := llm.New(newConfig(server.URL+"/", "test-key"), mocks.NewOtel())

			text, err := generator.Generate(context.Background(), "Suggest 3 activities")

			assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
			assert.Equal(t, "test-key", gotKey)
			require.NotNil(t, gotRequest)
			assert.Contains(t, gotRequest, "contents")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantText, text)
		})
	}
}
