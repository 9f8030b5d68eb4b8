package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"
)

// LLMCfg selects the intent classifier backend. Claude is preferred when its
// project ID is set; otherwise Gemini. With neither configured the engine
// runs on rule-based matching alone.
type LLMCfg struct {
	claudeModel     string
	claudeProjectID string
	claudeLocation  string

	geminiModel     string
	geminiProjectID string
	geminiLocation  string
}

func (x *LLMCfg) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "claude-model",
			Usage:       "Claude model name",
			Sources:     cli.EnvVars("VAANI_CLAUDE_MODEL"),
			Value:       "claude-sonnet-4@20250514",
			Destination: &x.claudeModel,
			Category:    "Claude",
		},
		&cli.StringFlag{
			Name:        "claude-project-id",
			Usage:       "Google Cloud Project ID for Claude Vertex AI",
			Sources:     cli.EnvVars("VAANI_CLAUDE_PROJECT_ID"),
			Destination: &x.claudeProjectID,
			Category:    "Claude",
		},
		&cli.StringFlag{
			Name:        "claude-location",
			Usage:       "Google Cloud location for Claude Vertex AI",
			Sources:     cli.EnvVars("VAANI_CLAUDE_LOCATION"),
			Value:       "us-east5",
			Destination: &x.claudeLocation,
			Category:    "Claude",
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model",
			Destination: &x.geminiModel,
			Category:    "Gemini",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("VAANI_GEMINI_MODEL"),
		},
		&cli.StringFlag{
			Name:        "gemini-project-id",
			Usage:       "GCP Project ID for Vertex AI",
			Destination: &x.geminiProjectID,
			Category:    "Gemini",
			Sources:     cli.EnvVars("VAANI_GEMINI_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "GCP Location for Vertex AI",
			Value:       "us-central1",
			Destination: &x.geminiLocation,
			Category:    "Gemini",
			Sources:     cli.EnvVars("VAANI_GEMINI_LOCATION"),
		},
	}
}

func (x LLMCfg) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("provider", x.ActiveProvider()),
	}

	if x.claudeProjectID != "" {
		attrs = append(attrs,
			slog.String("claude_model", x.claudeModel),
			slog.String("claude_project_id", x.claudeProjectID),
			slog.String("claude_location", x.claudeLocation),
		)
	}
	if x.geminiProjectID != "" {
		attrs = append(attrs,
			slog.String("gemini_model", x.geminiModel),
			slog.String("gemini_project_id", x.geminiProjectID),
			slog.String("gemini_location", x.geminiLocation),
		)
	}

	return slog.GroupValue(attrs...)
}

// IsConfigured returns true if any LLM backend is available.
func (x *LLMCfg) IsConfigured() bool {
	return x.claudeProjectID != "" || x.geminiProjectID != ""
}

// ActiveProvider returns the name of the backend Configure would pick.
func (x *LLMCfg) ActiveProvider() string {
	if x.claudeProjectID != "" {
		return "claude"
	}
	if x.geminiProjectID != "" {
		return "gemini"
	}
	return "none"
}

func (x *LLMCfg) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if x.claudeProjectID != "" {
		return x.configureClaude(ctx)
	}
	if x.geminiProjectID != "" {
		return x.configureGemini(ctx)
	}
	return nil, goerr.New("no LLM backend is configured")
}

func (x *LLMCfg) configureClaude(ctx context.Context) (gollem.LLMClient, error) {
	options := []claude.VertexOption{
		claude.WithVertexModel(x.claudeModel),
	}

	client, err := claude.NewWithVertex(ctx, x.claudeLocation, x.claudeProjectID, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Claude Vertex AI client",
			goerr.V("projectID", x.claudeProjectID),
			goerr.V("location", x.claudeLocation),
			goerr.V("model", x.claudeModel))
	}

	return client, nil
}

func (x *LLMCfg) configureGemini(ctx context.Context) (gollem.LLMClient, error) {
	options := []gemini.Option{
		gemini.WithModel(x.geminiModel),
	}

	client, err := gemini.New(ctx, x.geminiProjectID, x.geminiLocation, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}

	return client, nil
}
