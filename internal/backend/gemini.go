package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

func (g *implGemini) UploadFile(ctx context.Context, path, mimeType string) (*RemoteFile, error) {
	file, err := g.fileClient().Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", path, err)
	}
	return toRemoteFile(file), nil
}

func (g *implGemini) GetFile(ctx context.Context, name string) (*RemoteFile, error) {
	file, err := g.fileClient().Files.Get(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", name, err)
	}
	return toRemoteFile(file), nil
}

func (g *implGemini) DeleteFile(ctx context.Context, name string) error {
	if _, err := g.fileClient().Files.Delete(ctx, name, nil); err != nil {
		return fmt.Errorf("delete file %s: %w", name, err)
	}
	return nil
}

// GenerateContent sends prompt plus input to model and returns the response
// text. Uploaded files belong to the key that uploaded them, so file-based
// requests never rotate.
func (g *implGemini) GenerateContent(ctx context.Context, model, prompt string, in Input) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if in.FileURI != "" {
		parts = append(parts, genai.NewPartFromURI(in.FileURI, in.MIMEType))
	}
	if in.Text != "" {
		parts = append(parts, genai.NewPartFromText(in.Text))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	if in.FileURI != "" {
		result, err := g.fileClient().Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			return "", fmt.Errorf("generate content: %w", err)
		}
		return responseText(result)
	}

	attempts := len(g.clients)
	var lastErr error

	for range attempts {
		idx, client := g.current()

		result, err := client.Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			if isRateLimited(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}
		return responseText(result)
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGemini) fileClient() *genai.Client {
	return g.clients[0]
}

func (g *implGemini) current() (int, *genai.Client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.clients[g.currentKey]
}

// rotateKey advances past from unless another caller already rotated.
func (g *implGemini) rotateKey(from int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == from {
		g.currentKey = (g.currentKey + 1) % len(g.clients)
	}
}

func responseText(result *genai.GenerateContentResponse) (string, error) {
	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		return text.String(), nil
	}
	return "", fmt.Errorf("empty response from Gemini")
}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED")
}

func toRemoteFile(f *genai.File) *RemoteFile {
	rf := &RemoteFile{
		Name:     f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
		State:    convertState(f.State),
	}
	if f.Error != nil {
		rf.Reason = f.Error.Message
	}
	return rf
}

func convertState(s genai.FileState) FileState {
	switch s {
	case genai.FileStateActive:
		return FileStateActive
	case genai.FileStateProcessing:
		return FileStateProcessing
	case genai.FileStateFailed:
		return FileStateFailed
	default:
		return FileStateUnspecified
	}
}
