package compose

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when no Gemini model is configured.
const DefaultModel = "gemini-2.0-flash"

const refinePrompt = `あなたは福岡市の神社めぐりと観光案内の専門コンシェルジュです。以下の基本情報を、より親しみやすく魅力的な表現に整えてください。

ユーザーの質問: "%s"
基本応答: "%s"

【指針】
- 福岡の歴史や文化的背景を織り交ぜる
- 親しみやすく丁寧な敬語を使用
- 基本応答にない神社やコースを追加しない
- 実用的な情報（移動手段、所要時間など）も含める

整えた応答:`

// ErrNoRefiner is returned when refinement is not configured.
var ErrNoRefiner = errors.New("no refiner configured")

// Gemini refines messages with a Gemini model.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini connects to the Gemini API with the given key.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNoRefiner
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Refine(ctx context.Context, base, query string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(fmt.Sprintf(refinePrompt, query, base)),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.7),
			TopK:            genai.Ptr[float32](40),
			TopP:            genai.Ptr[float32](0.9),
			MaxOutputTokens: 512,
		})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}
