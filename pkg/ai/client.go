package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// Temperatures per call site: classification must be near-deterministic,
// advice is free to vary, generation sits in between.
const (
	classifyTemperature = 0.1
	adviceTemperature   = 0.7
	generateTemperature = 0.3
	imageTemperature    = 0.2
)

// Client wraps the Gemini API for the four call sites this service has:
// request classification, conversational advice, LaTeX generation and image
// content extraction. One Client is built at startup and shared; it holds
// no per-request state.
type Client struct {
	models        *genai.Models
	fastModel     string
	thoroughModel string
}

// NewClient builds a Gemini-backed client. fastModel serves classification
// and image extraction; thoroughModel serves generation and advice.
func NewClient(ctx context.Context, apiKey, fastModel, thoroughModel string) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}
	return &Client{models: gc.Models, fastModel: fastModel, thoroughModel: thoroughModel}, nil
}

// Classify returns the model's raw category reply for a user turn. Mapping
// the reply onto a verdict (and the fail-open policy) is the caller's job.
func (c *Client) Classify(ctx context.Context, input string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(classificationPrompt),
			genai.NewPartFromText("User input: " + input),
		}, genai.RoleUser),
	}
	return c.generate(ctx, c.fastModel, classifyTemperature, contents)
}

// Advise answers a question about the current resume conversationally.
func (c *Client) Advise(ctx context.Context, question, docContext string) (string, error) {
	prompt := fmt.Sprintf(advicePrompt, docContext, question)
	reply, err := c.generate(ctx, c.thoroughModel, adviceTemperature, genai.Text(prompt))
	if err != nil {
		return "", errors.Wrap(err, "advice request failed")
	}
	return reply, nil
}

// GenerateLaTeX asks the model for a complete LaTeX document, framed either
// as a modification of existing source or as creation from scratch. The
// reply is returned with surrounding code fences stripped; deciding whether
// it is an error message rather than a document is the caller's job.
func (c *Client) GenerateLaTeX(ctx context.Context, input string, modification bool) (string, error) {
	var prompt string
	if modification {
		prompt = fmt.Sprintf("Based on this request, modify the LaTeX resume code:\n\n%s\n\nRemember: Output ONLY valid LaTeX code, no explanations.", input)
	} else {
		prompt = fmt.Sprintf("Create a professional one-page LaTeX resume from this information:\n\n%s\n\nRemember: Output ONLY valid LaTeX code, no explanations or markdown code blocks.", input)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(latexSystemPrompt),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	reply, err := c.generate(ctx, c.thoroughModel, generateTemperature, contents)
	if err != nil {
		return "", errors.Wrap(err, "generation request failed")
	}
	return StripCodeFences(reply), nil
}

// DescribeImage extracts resume content from an uploaded image.
func (c *Client) DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(imagePrompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}
	reply, err := c.generate(ctx, c.fastModel, imageTemperature, contents)
	if err != nil {
		return "", errors.Wrap(err, "image extraction failed")
	}
	return reply, nil
}

func (c *Client) generate(ctx context.Context, model string, temperature float32, contents []*genai.Content) (string, error) {
	resp, err := c.models.GenerateContent(ctx, model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		return "", errors.Wrap(err, "gemini call failed")
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty model reply")
	}
	return text, nil
}

// StripCodeFences removes a surrounding markdown code fence from a model
// reply. Only a leading fence line (and its matching trailing fence, when
// present) is dropped; everything between is kept verbatim.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
