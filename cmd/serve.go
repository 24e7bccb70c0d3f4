package cmd

import (
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"beerledger.io/BeerLedger/configs"
	"beerledger.io/BeerLedger/pkg/auth"
	"beerledger.io/BeerLedger/pkg/repository"
	"beerledger.io/BeerLedger/pkg/server"
)

const timeout = 5 * time.Second

type ServeCmd struct {
	ConfigFile string `default:".BeerLedger.toml" help:"Path to config file" short:"c"`
}

func (s *ServeCmd) Run(cmdCtx *Context) error {
	logConfig := zap.NewProductionConfig()

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(s.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	if !cmdCtx.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(requestID())
	engine.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{zap.String("request_id", c.Writer.Header().Get("X-Request-Id"))}
		},
	}))
	engine.Use(ginzap.RecoveryWithZap(logger, true))

	authManager := auth.NewManager(conf, logger)

	api := engine.Group("/api")
	server.NewBeerHandler(repo, logger).RegisterRoutes(api.Group("/beers"))
	server.NewStyleHandler(repo, logger).RegisterRoutes(api.Group("/styles"))

	collections := api.Group("/user-collections")
	if authManager.Enabled() {
		collections.Use(authManager.Middleware())
	}

	server.NewCollectionHandler(repo, logger).RegisterRoutes(collections)

	address := fmt.Sprintf(":%d", conf.Server.Port)

	svr := &http.Server{
		Addr:              address,
		ReadHeaderTimeout: timeout,
		Handler:           configureCORS(engine),
	}

	logger.Info("starting server", zap.String("address", address))

	err = svr.ListenAndServe()
	if err != nil {
		logger.Error("failed to start server", zap.Error(err))

		return err
	}

	return nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Request-Id", uuid.NewString())
		c.Next()
	}
}

func configureCORS(handler http.Handler) http.Handler {
	corsOpts := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders: []string{
			"accept",
			"accept-encoding",
			"accept-language",
			"authorization",
			"cache-control",
			"content-length",
			"content-type",
			"origin",
			"user-agent",
			"x-request-id",
		},
		ExposedHeaders: []string{"x-request-id"},
		MaxAge:         86400, // 24 hours
	})

	return corsOpts.Handler(handler)
}
