package container

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/link-tracker/internal/analytics"
	"github.com/serroba/link-tracker/internal/analytics/store"
	"github.com/serroba/link-tracker/internal/handlers"
	"github.com/serroba/link-tracker/internal/health"
	"github.com/serroba/link-tracker/internal/messaging"
	"github.com/serroba/link-tracker/internal/middleware"
	"github.com/serroba/link-tracker/internal/notifier"
	"github.com/serroba/link-tracker/internal/tracking"
	"go.uber.org/zap"
)

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the Redis client backing the click feed.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		opts := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: opts.RedisAddr,
		}), nil
	})
}

// NotifierPackage provides the webhook notifier.
func NotifierPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*notifier.Webhook, error) {
		opts := do.MustInvoke[*Options](i)

		return notifier.NewWebhook(opts.WebhookURL, opts.Timeout()), nil
	})
}

// PublisherGroupPackage provides the click feed publisher. When no Redis address
// is configured, clicks are dropped instead of published.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: client},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create click feed publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[tracking.ClickEvent], error) {
		opts := do.MustInvoke[*Options](i)
		if !opts.ClickFeedEnabled() {
			return messaging.NoopPublish[tracking.ClickEvent](), nil
		}

		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return nil, err
		}

		return analytics.NewClickPublisher(group.Publisher()), nil
	})
}

// ConsumerGroupPackage provides the click feed consumers reading as the named
// Redis consumer group.
func ConsumerGroupPackage(injector *do.Injector, consumerGroup string) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        client,
				ConsumerGroup: consumerGroup,
			},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create click feed subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(analytics.NewClickConsumer(subscriber, store.NewLog(logger), logger))

		return group, nil
	})
}

// HTTPPackage provides the router and the huma API with all routes registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)

		loc, err := opts.Location()
		if err != nil {
			return nil, err
		}

		api := humachi.New(router, huma.DefaultConfig("Link Tracker", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))

		trackHandler := handlers.NewTrackHandler(
			opts.DestinationURL,
			loc,
			do.MustInvoke[*notifier.Webhook](i),
			do.MustInvoke[messaging.Publish[tracking.ClickEvent]](i),
			logger,
		)

		statusHandler, err := handlers.NewStatusHandler(opts.Port)
		if err != nil {
			return nil, err
		}

		handlers.RegisterRoutes(api, trackHandler, statusHandler)

		var checker health.Checker
		if opts.ClickFeedEnabled() {
			checker = health.NewRedisChecker(do.MustInvoke[*redis.Client](i))
		}

		health.RegisterRoutes(api, health.NewHandler(checker))

		return api, nil
	})
}
