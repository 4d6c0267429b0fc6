//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/ai-health-assistant/internal/bootstrap"
	"github.com/yanqian/ai-health-assistant/internal/domain/assistant"
	"github.com/yanqian/ai-health-assistant/internal/domain/prompt"
	"github.com/yanqian/ai-health-assistant/internal/infra/config"
	"github.com/yanqian/ai-health-assistant/internal/infra/llm/chatgpt"
	"github.com/yanqian/ai-health-assistant/internal/infra/llm/completion"
	"github.com/yanqian/ai-health-assistant/internal/infra/pdftext"
	httpiface "github.com/yanqian/ai-health-assistant/internal/interface/http"
	"github.com/yanqian/ai-health-assistant/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAssistantConfig,
		providePromptComposer,
		provideChatGPTClient,
		provideCompletionConfig,
		provideTokenEstimator,
		completion.NewClient,
		pdftext.NewExtractor,
		assistant.NewService,
		wire.Bind(new(assistant.PromptComposer), new(*prompt.Composer)),
		wire.Bind(new(completion.ChatCompleter), new(*chatgpt.Client)),
		wire.Bind(new(assistant.CompletionClient), new(*completion.Client)),
		wire.Bind(new(assistant.TextExtractor), new(*pdftext.Extractor)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
