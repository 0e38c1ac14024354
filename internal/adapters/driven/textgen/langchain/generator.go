// Package langchain implements the text-generation service on top of
// langchaingo, so the same adapter serves the Gemini API, Anthropic,
// local Ollama endpoints and any OpenAI-compatible endpoint. The
// provider is selected from settings; responses are returned verbatim
// for the core to parse.
package langchain

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// Generator implements the text-generation port over a langchaingo
// model.
type Generator struct {
	model llms.Model
}

// New creates a text generator for the configured provider.
func New(ctx context.Context, settings domain.TextGenSettings) (*Generator, error) {
	switch settings.Provider {
	case domain.TextProviderGoogleAI:
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(settings.APIKey),
			googleai.WithDefaultModel(settings.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create googleai model: %w", err)
		}
		return &Generator{model: model}, nil

	case domain.TextProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(settings.APIKey),
			openai.WithModel(settings.Model),
		}
		if settings.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(settings.BaseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}
		return &Generator{model: model}, nil

	case domain.TextProviderAnthropic:
		opts := []anthropic.Option{
			anthropic.WithToken(settings.APIKey),
			anthropic.WithModel(settings.Model),
		}
		if settings.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(settings.BaseURL))
		}
		model, err := anthropic.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}
		return &Generator{model: model}, nil

	case domain.TextProviderOllama:
		opts := []ollama.Option{
			ollama.WithModel(settings.Model),
		}
		if settings.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(settings.BaseURL))
		}
		model, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}
		return &Generator{model: model}, nil

	default:
		return nil, fmt.Errorf("unsupported text provider: %s", settings.Provider)
	}
}

// Generate returns the model's completion for a prompt.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}
	return g.generate(ctx, content)
}

// GenerateWithFile runs a prompt over a local document's content. The
// file is attached as a binary part, which the Gemini models accept for
// PDF and plain-text documents.
func (g *Generator) GenerateWithFile(ctx context.Context, filePath, prompt string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filePath, err)
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(fileMIMEType(filePath), data),
				llms.TextPart(prompt),
			},
		},
	}
	return g.generate(ctx, content)
}

func (g *Generator) generate(ctx context.Context, content []llms.MessageContent) (string, error) {
	response, err := g.model.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	reply := response.Choices[0].Content
	logger.Debug("[textgen] completion of %d characters", len(reply))
	return reply, nil
}

// fileMIMEType guesses the attachment content type from the extension.
func fileMIMEType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
