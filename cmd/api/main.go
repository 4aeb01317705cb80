package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nontawatz/mini-commerce-api/internal/config"
	"github.com/nontawatz/mini-commerce-api/internal/handler"
	"github.com/nontawatz/mini-commerce-api/internal/repository"
	"github.com/nontawatz/mini-commerce-api/internal/usecase"
	"github.com/nontawatz/mini-commerce-api/shared/auth"
	"github.com/nontawatz/mini-commerce-api/shared/mailer"
	"github.com/nontawatz/mini-commerce-api/shared/validator"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.New(&logger)

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.MongoURI).
		SetTimeout(cfg.MongoTimeout))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	resetCodeRepo := repository.NewResetCodeMongoRepository(ctx, &logger, db)
	categoryRepo := repository.NewCategoryMongoRepository(ctx, &logger, db)
	productRepo := repository.NewProductMongoRepository(db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Secret, cfg.Token.Issuer, cfg.Token.ExpiresIn)
	mail := mailer.NewMailer(cfg.SMTP)

	validate, err := validator.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build validator")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, resetCodeRepo, mail, cfg.ResetCodeExpiresIn)
	catalogUsecase := usecase.NewCatalogUsecase(categoryRepo, productRepo)

	router := handler.NewRouter(cfg, jwtAuth, handler.Handlers{
		Auth:          handler.NewAuthHandler(&logger, validate, authUsecase),
		PasswordReset: handler.NewPasswordResetHandler(&logger, validate, passwordResetUsecase),
		Category:      handler.NewCategoryHandler(&logger, validate, catalogUsecase),
		Product:       handler.NewProductHandler(&logger, catalogUsecase, cfg.UploadDir),
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if err := client.Disconnect(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to disconnect from mongodb")
	}
}
