// Package gemini implementa ports.TextGenerator sobre la API de Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel es el modelo usado si la configuración no define otro.
const DefaultModel = "gemini-2.0-flash"

// ErrMissingAPIKey se devuelve al crear el cliente sin API key.
var ErrMissingAPIKey = errors.New("gemini: GEMINI_API_KEY is not set")

// Config configura el Client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // solo tests; vacío usa el endpoint público
}

// Client pide respuestas JSON con el esquema {feedback: string}.
type Client struct {
	genai *genai.Client
	model string
}

// feedbackSchema es el esquema de salida que se pide al modelo.
var feedbackSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"feedback": {
			Type:        genai.TypeString,
			Description: "AI-generated feedback and suggestions for improving the trading thesis.",
		},
	},
	Required: []string{"feedback"},
}

type feedbackOutput struct {
	Feedback string `json:"feedback"`
}

// NewClient crea el cliente de Gemini.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini.NewClient: %w", err)
	}
	return &Client{genai: c, model: cfg.Model}, nil
}

// GenerateFeedback envía el prompt y extrae el campo feedback de la respuesta.
func (c *Client) GenerateFeedback(ctx context.Context, prompt string) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   feedbackSchema,
	})
	if err != nil {
		return "", fmt.Errorf("gemini.GenerateFeedback: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini.GenerateFeedback: empty response")
	}

	var out feedbackOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return "", fmt.Errorf("gemini.GenerateFeedback: decode output: %w", err)
	}
	return out.Feedback, nil
}

// Model devuelve el nombre del modelo configurado.
func (c *Client) Model() string {
	return c.model
}
