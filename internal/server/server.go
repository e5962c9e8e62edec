package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mediassist/internal/ai"
	"mediassist/internal/config"
	"mediassist/internal/handler"
	authHandler "mediassist/internal/handler/auth"
	"mediassist/internal/pkg/cache"
	"mediassist/internal/pkg/jwt"
	"mediassist/internal/pkg/mongodb"
	"mediassist/internal/repository"
	authRepo "mediassist/internal/repository/auth"
	"mediassist/internal/server/middleware"
	"mediassist/internal/service"
)

// Server HTTP server
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
}

// New creates the server and wires its dependencies
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// MongoDB (optional; chat and auth routes need it)
	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// Redis (optional)
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}

	srv.setupRoutes()

	return srv, nil
}

// setupRoutes registers middleware and all API routes
func (s *Server) setupRoutes() {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS(s.cfg.CORS.AllowOrigins))

	var mongoPinger, redisPinger handler.Pinger
	if s.mongo != nil {
		mongoPinger = s.mongo
	}
	if s.redis != nil {
		redisPinger = s.redis
	}
	healthHandler := handler.NewHealthHandler(mongoPinger, redisPinger)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if s.mongo == nil {
		log.Warn().Msg("MongoDB not configured, API endpoints disabled")
		return
	}

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}

	accessTokenExpiry := s.cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}

	refreshTokenExpiry := s.cfg.Auth.RefreshTokenExpiry
	if refreshTokenExpiry == 0 {
		refreshTokenExpiry = 7 * 24 * time.Hour
	}

	db := s.mongo.Database()

	userRepo := authRepo.NewUserRepo(db)
	refreshTokenRepo := authRepo.NewRefreshTokenRepo(db)
	authSvc := service.NewAuthService(userRepo, refreshTokenRepo, jwtSecret, accessTokenExpiry, refreshTokenExpiry)
	authHdl := authHandler.NewHandler(authSvc)

	// AI path is optional; the chat service falls back to local
	// templates when no completer is configured
	var completer ai.Completer
	if s.cfg.AI.APIKey != "" {
		client, err := ai.NewClient(context.Background(), &s.cfg.AI)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize AI client, using local templates only")
		} else {
			completer = client
			log.Info().Str("provider", s.cfg.AI.Provider).Str("model", s.cfg.AI.Model).Msg("initialized AI client")
		}
	}

	aiTimeout := s.cfg.AI.Timeout
	if aiTimeout == 0 {
		aiTimeout = 20 * time.Second
	}

	var convCache service.ConversationCache
	if s.redis != nil {
		convCache = s.redis
	}

	convRepo := repository.NewConversationRepo(db)
	chatSvc := service.NewChatService(convRepo, convCache, completer, aiTimeout)

	patientSvc := service.NewPatientService(repository.NewPatientRepo(db))
	providerSvc := service.NewProviderService(repository.NewProviderRepo(db))
	appointmentSvc := service.NewAppointmentService(repository.NewAppointmentRepo(db))
	medicationSvc := service.NewMedicationService(repository.NewMedicationRepo(db))
	medicalRecordSvc := service.NewMedicalRecordService(repository.NewMedicalRecordRepo(db))
	labResultSvc := service.NewLabResultService(repository.NewLabResultRepo(db))

	chatHdl := handler.NewChatHandler(chatSvc)
	convHdl := handler.NewConversationHandler(chatSvc)
	patientHdl := handler.NewPatientHandler(patientSvc)
	providerHdl := handler.NewProviderHandler(providerSvc)
	appointmentHdl := handler.NewAppointmentHandler(appointmentSvc)
	medicationHdl := handler.NewMedicationHandler(medicationSvc)
	medicalRecordHdl := handler.NewMedicalRecordHandler(medicalRecordSvc)
	labResultHdl := handler.NewLabResultHandler(labResultSvc)

	v1 := s.engine.Group("/api/v1")
	{
		// public auth endpoints
		v1.POST("/auth/register", authHdl.Register)
		v1.POST("/auth/login", authHdl.Login)
		v1.POST("/auth/refresh", authHdl.Refresh)

		// everything below requires a valid token
		authed := v1.Group("")
		authed.Use(middleware.Auth(jwt.NewJWT(jwtSecret, accessTokenExpiry)))
		{
			authed.POST("/auth/logout", authHdl.Logout)
			authed.GET("/auth/me", authHdl.GetMe)

			authed.POST("/chat", chatHdl.Chat)

			authed.POST("/conversations", convHdl.Create)
			authed.GET("/conversations", convHdl.List)
			authed.GET("/conversations/:id", convHdl.Get)
			authed.PATCH("/conversations/:id/status", convHdl.UpdateStatus)

			authed.POST("/patients", patientHdl.Create)
			authed.GET("/patients", patientHdl.List)
			authed.GET("/patients/:id", patientHdl.Get)
			authed.PUT("/patients/:id", patientHdl.Update)
			authed.DELETE("/patients/:id", patientHdl.Delete)

			authed.POST("/providers", providerHdl.Create)
			authed.GET("/providers", providerHdl.List)
			authed.GET("/providers/:id", providerHdl.Get)
			authed.PUT("/providers/:id", providerHdl.Update)
			authed.DELETE("/providers/:id", providerHdl.Delete)

			authed.POST("/appointments", appointmentHdl.Create)
			authed.GET("/appointments", appointmentHdl.List)
			authed.GET("/appointments/:id", appointmentHdl.Get)
			authed.PATCH("/appointments/:id/status", appointmentHdl.UpdateStatus)
			authed.DELETE("/appointments/:id", appointmentHdl.Delete)

			authed.POST("/medications", medicationHdl.Create)
			authed.GET("/medications", medicationHdl.List)
			authed.GET("/medications/:id", medicationHdl.Get)
			authed.PATCH("/medications/:id/status", medicationHdl.UpdateStatus)
			authed.DELETE("/medications/:id", medicationHdl.Delete)

			authed.POST("/medical-records", medicalRecordHdl.Create)
			authed.GET("/medical-records", medicalRecordHdl.List)
			authed.GET("/medical-records/:id", medicalRecordHdl.Get)
			authed.GET("/medical-records/:id/related", medicalRecordHdl.ListRelated)
			authed.PUT("/medical-records/:id", medicalRecordHdl.Update)
			authed.DELETE("/medical-records/:id", medicalRecordHdl.Delete)

			authed.POST("/lab-results", labResultHdl.Create)
			authed.GET("/lab-results", labResultHdl.List)
			authed.GET("/lab-results/:id", labResultHdl.Get)
			authed.PATCH("/lab-results/:id/status", labResultHdl.UpdateStatus)
			authed.DELETE("/lab-results/:id", labResultHdl.Delete)
		}
	}
}

// Run starts the server and blocks until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine exposes the Gin engine for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
