package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const summaryPrompt = `You are an expert meeting assistant. Analyze the following meeting transcript (language: %s) and provide:
1. A concise summary of the key discussion points and decisions made.
2. A list of specific action items assigned, including who is responsible if mentioned.

Transcript:
---
%s
---

Format your response with exactly these two headings:

Summary:
[Your summary here]

Action Items:
["first action item", "second action item"]

The action items must be a strict JSON array of strings. Use an empty array [] if there are none.`

// Summarize sends the transcript to the model once and parses the response
// into per-language summary variants. Parsing shortfalls degrade to empty
// values; only the model call itself can fail the stage.
func (s *implSummarizer) Summarize(ctx context.Context, transcript, detectedLanguage string) (Result, error) {
	lang := detectedLanguage
	if lang == "" {
		lang = "unknown"
	}

	raw, err := s.gen.generate(ctx, fmt.Sprintf(summaryPrompt, lang, transcript))
	if err != nil {
		return Result{}, fmt.Errorf("summarization failed: %w", err)
	}

	summaryEN, itemsEN := parseResponse(raw)
	if len(itemsEN) == 0 {
		s.logger.Warn(ctx, "No action items parsed from model response (%d chars)", len(raw))
	}

	summaryZH, err := s.translator.Translate(ctx, summaryEN, "zh")
	if err != nil {
		return Result{}, fmt.Errorf("translate summary: %w", err)
	}
	itemsZH := make([]string, 0, len(itemsEN))
	for _, item := range itemsEN {
		translated, err := s.translator.Translate(ctx, item, "zh")
		if err != nil {
			return Result{}, fmt.Errorf("translate action item: %w", err)
		}
		itemsZH = append(itemsZH, translated)
	}

	return Result{
		SummaryEN:     summaryEN,
		ActionItemsEN: itemsEN,
		SummaryZH:     summaryZH,
		ActionItemsZH: itemsZH,
	}, nil
}

type geminiGenerator struct {
	apiKey string
	model  string
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", fmt.Errorf("empty response from model")
}
