package ai

import (
	"context"
	"fmt"
	"io"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Turn is one prior exchange message. Role is "user" or "model".
type Turn struct {
	Role string
	Text string
}

// Request describes a single generation call.
type Request struct {
	System      string
	History     []Turn
	Message     string
	Temperature float32
	MaxTokens   int32
}

// Stream yields generated text chunks until io.EOF.
type Stream interface {
	Recv() (string, error)
}

// Generator abstracts the model provider so handlers and the assistant can
// be tested without network access.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	GenerateStream(ctx context.Context, req Request) (Stream, error)
}

// GeminiClient talks to Google Gemini. It is injected where needed rather
// than held as a package-level singleton.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// newSession builds a per-request model so generation config never leaks
// between concurrent calls.
func (g *GeminiClient) newSession(req Request) *genai.ChatSession {
	model := g.client.GenerativeModel(g.modelName)
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	cs := model.StartChat()
	for _, turn := range req.History {
		cs.History = append(cs.History, &genai.Content{
			Role:  turn.Role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}
	return cs
}

func (g *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	cs := g.newSession(req)
	resp, err := cs.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return responseText(resp), nil
}

func (g *GeminiClient) GenerateStream(ctx context.Context, req Request) (Stream, error) {
	cs := g.newSession(req)
	return &geminiStream{iter: cs.SendMessageStream(ctx, genai.Text(req.Message))}, nil
}

type geminiStream struct {
	iter *genai.GenerateContentResponseIterator
}

func (s *geminiStream) Recv() (string, error) {
	resp, err := s.iter.Next()
	if err == iterator.Done {
		return "", io.EOF
	}
	if err != nil {
		return "", fmt.Errorf("gemini stream: %w", err)
	}
	return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}
