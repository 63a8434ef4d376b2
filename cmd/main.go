package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bigmatrix2/Dreammaker/application/ports/inbound"
	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/application/services"
	"github.com/Bigmatrix2/Dreammaker/config"
	"github.com/Bigmatrix2/Dreammaker/domain"
	"github.com/Bigmatrix2/Dreammaker/infrastructure/adapters"
	"github.com/Bigmatrix2/Dreammaker/infrastructure/gin_interface/controllers"
	"github.com/Bigmatrix2/Dreammaker/middleware"
	mockgenerator "github.com/Bigmatrix2/Dreammaker/mock"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	shutdownTimeout = 30 * time.Second
	sseKeepAlive    = 15 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("Failed to load .env file")
	}

	cfg, err := config.Load(os.Getenv("DREAM_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	zeroLogger := adapters.NewZerologWrapper(os.Stderr, cfg.Logging.Level)

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(cfg.Server.WorkerPoolSize, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	secretStores, err := newSecretStores(cfg.Secrets)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create secret store")
	}
	secretResolver := adapters.NewSecretResolver(zeroLogger, secretStores...)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := adapters.NewPrometheusMetrics(registry)

	audioStaging := adapters.NewTempAudioStaging(os.TempDir(), zeroLogger)

	stages, mistralGenerator, err := newStages(cfg, secretResolver, zeroLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create pipeline stages")
	}

	promptGenerators := map[inbound.PromptSource]outbound.PromptGeneratorPort{
		inbound.PromptSourceGroq:    stages.PromptGenerator,
		inbound.PromptSourceMistral: mistralGenerator,
	}
	pipelineStages := stages
	pipelineStages.PromptGenerator = promptGenerators[inbound.PromptSource(cfg.Pipeline.PromptSource)]

	dreamPipeline := services.NewDreamPipeline(zeroLogger, workerPool, audioStaging, pipelineStages, metrics,
		cfg.Pipeline.ParallelAnalysis)

	stageRunner := services.NewStageRunner(zeroLogger, audioStaging, stages.Transcriber, stages.Classifier,
		promptGenerators, stages.ImageSynthesizer, metrics)

	stageController := controllers.NewStageController(zeroLogger, stageRunner, cfg.Server.MaxUploadBytes)
	dreamController := controllers.NewDreamController(zeroLogger, dreamPipeline, cfg.Server.MaxUploadBytes, sseKeepAlive)
	webSocketController := controllers.NewWebSocketController(zeroLogger, dreamPipeline, cfg.Server.MaxUploadBytes)
	healthController := controllers.NewHealthController(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(zeroLogger))

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	healthController.RegisterRoutes(router)
	stageController.RegisterRoutes(router)
	dreamController.RegisterRoutes(router)
	webSocketController.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zeroLogger.InfoWithFields("Server listening", map[string]interface{}{
			"address": cfg.Server.Address,
			"mock":    cfg.Mock.Enabled(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server!")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zeroLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zeroLogger.Error(err, "Server forced to shutdown")
	}
}

func newSecretStores(cfg config.SecretsConfig) ([]outbound.SecretStorePort, error) {
	stores := make([]outbound.SecretStorePort, 0, 2)

	switch cfg.Store {
	case config.SecretStoreFile:
		stores = append(stores, adapters.NewFileSecretStore(cfg.FilePath))
	case config.SecretStoreAWS:
		sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.AWSRegion)})
		if err != nil {
			return nil, err
		}
		stores = append(stores, adapters.NewAWSSecretStore(secretsmanager.New(sess), cfg.AWSPrefix))
	}

	return append(stores, adapters.NewEnvSecretStore()), nil
}

// newStages returns the pipeline stages and the alternative Mistral prompt generator.
func newStages(cfg *config.Config, secrets outbound.SecretResolverPort,
	logger outbound.LoggerPort) (services.DreamPipelineStages, outbound.PromptGeneratorPort, error) {
	if cfg.Mock.Enabled() {
		stages, err := mockgenerator.Init(mockgenerator.NewFileFixtureReader(logger), cfg.Mock.FixturePath, logger)
		if err != nil {
			return services.DreamPipelineStages{}, nil, err
		}
		return stages, stages.PromptGenerator, nil
	}

	transcriber := adapters.NewWhisperTranscriber(
		adapters.NewContentFetcher(logger, domain.StageTranscription, cfg.Transcriber.Timeout),
		secrets, &cfg.Transcriber, logger)

	classifier := adapters.NewEmotionClassifier(
		adapters.NewContentFetcher(logger, domain.StageEmotion, cfg.Emotion.Timeout),
		secrets, &cfg.Emotion, logger)

	promptGenerator := adapters.NewPromptGenerator(
		adapters.NewContentFetcher(logger, domain.StagePrompt, cfg.Prompt.Timeout),
		secrets, &cfg.Prompt, adapters.GroqPromptTemplate, logger)

	mistralGenerator := adapters.NewPromptGenerator(
		adapters.NewContentFetcher(logger, domain.StagePrompt, cfg.Mistral.Timeout),
		secrets, &cfg.Mistral, adapters.MistralPromptTemplate, logger)

	imageSynthesizer := adapters.NewImageSynthesizer(
		adapters.NewContentFetcher(logger, domain.StageImage, cfg.Image.Timeout),
		secrets, &cfg.Image, logger)

	return services.DreamPipelineStages{
		Transcriber:      transcriber,
		Classifier:       classifier,
		PromptGenerator:  promptGenerator,
		ImageSynthesizer: imageSynthesizer,
	}, mistralGenerator, nil
}
