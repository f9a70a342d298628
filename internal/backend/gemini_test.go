package backend

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/genai"
)

func TestConvertState(t *testing.T) {
	tests := []struct {
		in   genai.FileState
		want FileState
	}{
		{genai.FileStateActive, FileStateActive},
		{genai.FileStateProcessing, FileStateProcessing},
		{genai.FileStateFailed, FileStateFailed},
		{genai.FileStateUnspecified, FileStateUnspecified},
		{genai.FileState("SOMETHING_NEW"), FileStateUnspecified},
	}

	for _, tt := range tests {
		if got := convertState(tt.in); got != tt.want {
			t.Errorf("convertState(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"api error 429", genai.APIError{Code: http.StatusTooManyRequests}, true},
		{"wrapped api error", fmt.Errorf("call: %w", genai.APIError{Code: http.StatusTooManyRequests}), true},
		{"quota message", errors.New("quota exceeded for project"), true},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"bad request", genai.APIError{Code: http.StatusBadRequest, Message: "invalid argument"}, false},
		{"plain", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRateLimited(tt.err); got != tt.want {
				t.Errorf("isRateLimited() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "Hello "}, {Text: "world"}}},
		}},
	}
	got, err := responseText(resp)
	if err != nil {
		t.Fatalf("responseText() error = %v", err)
	}
	if got != "Hello world" {
		t.Errorf("responseText() = %q, want %q", got, "Hello world")
	}

	if _, err := responseText(&genai.GenerateContentResponse{}); err == nil {
		t.Error("responseText() on empty response should fail")
	}
}

func TestToRemoteFileCarriesFailureReason(t *testing.T) {
	f := &genai.File{
		Name:     "files/abc",
		URI:      "https://example/files/abc",
		MIMEType: "audio/mpeg",
		State:    genai.FileStateFailed,
		Error:    &genai.FileStatus{Message: "unsupported codec"},
	}

	rf := toRemoteFile(f)
	if rf.State != FileStateFailed || rf.Reason != "unsupported codec" || rf.Name != "files/abc" {
		t.Errorf("toRemoteFile() = %+v", rf)
	}
}

func TestNewGeminiRequiresKeys(t *testing.T) {
	if _, err := NewGemini(t.Context(), nil, nil); err == nil {
		t.Error("NewGemini() without keys should fail")
	}
}
