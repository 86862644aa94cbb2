//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/faq-chatbot/internal/bootstrap"
	"github.com/yanqian/faq-chatbot/internal/domain/auth"
	"github.com/yanqian/faq-chatbot/internal/domain/chat"
	"github.com/yanqian/faq-chatbot/internal/domain/faq"
	"github.com/yanqian/faq-chatbot/internal/domain/feedback"
	"github.com/yanqian/faq-chatbot/internal/infra/config"
	httpiface "github.com/yanqian/faq-chatbot/internal/interface/http"
	"github.com/yanqian/faq-chatbot/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideFAQConfig,
		provideChatConfig,
		provideAuthConfig,
		provideStaticDir,
		providePostgresPool,
		provideCatalog,
		provideReloadScheduler,
		provideStatsStore,
		provideHistoryStore,
		provideChatRepository,
		provideFeedbackRepository,
		provideAuthRepository,
		faq.NewService,
		chat.NewService,
		feedback.NewService,
		auth.NewService,
		wire.Bind(new(faq.CatalogSource), new(*faq.Catalog)),
		wire.Bind(new(faq.Reloader), new(*faq.Catalog)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
