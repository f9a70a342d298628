package backend

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/audio-report/internal/logger"
)

type implGemini struct {
	logger     logger.Logger
	clients    []*genai.Client
	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a Gemini backend with one client per API key. File
// operations stay on the first key; text-only generation rotates keys on
// rate limits.
func NewGemini(ctx context.Context, l logger.Logger, apiKeys []string) (Backend, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("no API keys provided")
	}

	clients := make([]*genai.Client, 0, len(apiKeys))
	for i, key := range apiKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create client for key %d: %w", i+1, err)
		}
		clients = append(clients, client)
	}

	return &implGemini{
		logger:  l,
		clients: clients,
	}, nil
}
