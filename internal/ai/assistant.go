package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const blogAssistSystem = `You are a direct content writer. Your name is Solo; you help create and improve blog content for LightField Legal Practitioners, a law firm specializing in technology, AI, and blockchain law.`

const overviewSystem = `You are an expert at creating concise, engaging summaries of legal blog posts.
Create a 2-3 sentence overview that captures the key insights and value of the article.
The overview should be professional, clear, and enticing for readers interested in law and technology.`

const soloSystem = `You are Solo, the AI legal assistant for LightField Legal Practitioners.
You are a knowledgeable, professional, and helpful assistant that answers questions about:

1. **LightField Legal Practitioners**: A modern law firm specializing in emerging technology, AI, and blockchain law
2. **Practice Areas**: Technology law, AI regulations, blockchain and cryptocurrency law, data privacy, cybersecurity, intellectual property
3. **Legal Information**: General legal concepts and explanations (but always remind users to consult a qualified attorney for specific legal advice)

Guidelines:
- Be professional, clear, and helpful
- Provide accurate information about the firm and general legal concepts
- For specific legal advice, always recommend contacting the firm directly
- If you don't know something about the firm, be honest about it
- Stay focused on legal topics related to technology, AI, and blockchain
- Be concise but thorough in your responses

IMPORTANT: You can only discuss information about LightField Legal Practitioners and general legal concepts.
You do NOT have access to specific blog posts or associate details unless they are explicitly provided in the conversation context.`

const overviewContentLimit = 3000

// BlogContext carries the optional draft state a writer sends alongside an
// assistant prompt. ContentPreview takes precedence over Excerpt when both
// are present; Title always leads the rendered context.
type BlogContext struct {
	Title          string `json:"title"`
	Excerpt        string `json:"excerpt"`
	ContentPreview string `json:"content_preview"`
}

func (c *BlogContext) Render() string {
	if c == nil {
		return ""
	}
	var lines []string
	if c.Title != "" {
		lines = append(lines, "Title: "+c.Title)
	}
	switch {
	case c.ContentPreview != "":
		lines = append(lines, "Content preview: "+c.ContentPreview)
	case c.Excerpt != "":
		lines = append(lines, "Excerpt: "+c.Excerpt)
	}
	return strings.Join(lines, "\n")
}

// Assistant exposes the firm's AI features on top of an injected Generator.
type Assistant struct {
	gen Generator
}

func NewAssistant(gen Generator) *Assistant {
	return &Assistant{gen: gen}
}

// BlogAssist answers a writing prompt with optional draft context. Few-shot
// turns steer the model to answer with the artifact itself rather than
// commentary about it.
func (a *Assistant) BlogAssist(ctx context.Context, prompt string, bctx *BlogContext) (string, error) {
	system := blogAssistSystem
	if rendered := bctx.Render(); rendered != "" {
		system += "\n\nBlog context:\n" + rendered
	}

	req := Request{
		System: system,
		History: []Turn{
			{Role: "user", Text: "Improve title for SEO"},
			{Role: "model", Text: "Blockchain Revolution: How Web3 Transforms Aviation"},
			{Role: "user", Text: "Suggest keywords"},
			{Role: "model", Text: "blockchain aviation, web3 technology, decentralized booking, smart contracts, tokenized assets, flight data security"},
			{Role: "user", Text: "Generate meta description"},
			{Role: "model", Text: "Explore how blockchain and Web3 are revolutionizing aviation through enhanced security, transparency, and decentralized operations."},
		},
		Message:     prompt,
		Temperature: 0.3,
		MaxTokens:   400,
	}

	out, err := a.gen.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return cleanSuggestion(out), nil
}

// GenerateOverview produces a short summary of a post. HTML is stripped and
// the content capped so long posts stay inside token limits.
func (a *Assistant) GenerateOverview(ctx context.Context, title, content string) (string, error) {
	clean := StripHTML(content)
	if len(clean) > overviewContentLimit {
		clean = clean[:overviewContentLimit]
	}

	prompt := fmt.Sprintf(
		"Title: %s\n\nContent:\n%s\n\nGenerate a compelling 2-3 sentence overview for this blog post.",
		title, clean,
	)

	out, err := a.gen.Generate(ctx, Request{
		System:      overviewSystem,
		Message:     prompt,
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// SoloChat streams an answer to a visitor question, carrying prior turns of
// the same session as history.
func (a *Assistant) SoloChat(ctx context.Context, message string, history []Turn) (Stream, error) {
	return a.gen.GenerateStream(ctx, Request{
		System:      soloSystem,
		History:     history,
		Message:     message,
		Temperature: 0.8,
		MaxTokens:   1500,
	})
}

var (
	htmlTagRe       = regexp.MustCompile(`<[^>]+>`)
	metaCommentRe   = regexp.MustCompile(`(?i)^(Here are?|I suggest|You could|Consider|Option \d+).*?:`)
	parentheticalRe = regexp.MustCompile(`\(.*?\)`)
	bulletRe        = regexp.MustCompile(`(?m)^-\s+`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
)

func StripHTML(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}

func cleanSuggestion(s string) string {
	s = metaCommentRe.ReplaceAllString(s, "")
	s = parentheticalRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	s = bulletRe.ReplaceAllString(s, "")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
