package main

import (
	"log/slog"

	"github.com/yanqian/ai-health-assistant/internal/domain/assistant"
	"github.com/yanqian/ai-health-assistant/internal/domain/prompt"
	"github.com/yanqian/ai-health-assistant/internal/infra/config"
	"github.com/yanqian/ai-health-assistant/internal/infra/llm/chatgpt"
	"github.com/yanqian/ai-health-assistant/internal/infra/llm/completion"
)

func provideAssistantConfig(cfg *config.Config) assistant.Config {
	return assistant.Config{
		CompletionTimeout: cfg.LLM.Timeout,
	}
}

func providePromptComposer(cfg *config.Config) (*prompt.Composer, error) {
	return prompt.NewComposer(map[prompt.TemplateID]string{
		prompt.ReportAnalysis:  cfg.Prompts.ReportAnalysis,
		prompt.SymptomCheck:    cfg.Prompts.SymptomCheck,
		prompt.DietPlan:        cfg.Prompts.DietPlan,
		prompt.ExercisePlan:    cfg.Prompts.ExercisePlan,
		prompt.HealthEducation: cfg.Prompts.HealthEducation,
	})
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
}

func provideCompletionConfig(cfg *config.Config) completion.Config {
	return completion.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	}
}

func provideTokenEstimator(logger *slog.Logger) completion.TokenEstimator {
	return completion.NewTiktokenEstimator(logger)
}
