package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/institute/backend/docs"
	academicapp "github.com/institute/backend/internal/application/academic"
	certapp "github.com/institute/backend/internal/application/certification"
	examapp "github.com/institute/backend/internal/application/exam"
	feeapp "github.com/institute/backend/internal/application/fee"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/institute/backend/internal/infrastructure/cache"
	"github.com/institute/backend/internal/infrastructure/config"
	"github.com/institute/backend/internal/infrastructure/event"
	"github.com/institute/backend/internal/infrastructure/logger"
	"github.com/institute/backend/internal/infrastructure/notification"
	"github.com/institute/backend/internal/infrastructure/payment"
	"github.com/institute/backend/internal/infrastructure/persistence"
	"github.com/institute/backend/internal/infrastructure/printing"
	"github.com/institute/backend/internal/infrastructure/scheduler"
	"github.com/institute/backend/internal/infrastructure/storage"
	"github.com/institute/backend/internal/infrastructure/telemetry"
	"github.com/institute/backend/internal/interfaces/http/handler"
	"github.com/institute/backend/internal/interfaces/http/middleware"
	"github.com/institute/backend/internal/interfaces/http/router"
)

//	@title			Institute Backend API
//	@version		1.0
//	@description	Fees, payments, exam results and certificates for training centers

//	@contact.name	API Support
//	@contact.email	support@institute.example.com

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	CenterHeader
//	@in							header
//	@name						X-Center-ID
//	@description				Training center the request operates on

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	otelPipeline, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log = otelPipeline.Bridge(log, zapcore.InfoLevel)

	log.Info("Starting institute backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, nil, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := telemetry.NewDBTracingPlugin(cfg.Telemetry, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access connection pool", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	courseRepo := persistence.NewGormCourseRepository(db.DB)
	studentRepo := persistence.NewGormStudentRepository(db.DB)
	ledgerRepo := persistence.NewGormFeeLedgerRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentAttemptRepository(db.DB)
	examRepo := persistence.NewGormExamRepository(db.DB)
	resultRepo := persistence.NewGormExamResultRepository(db.DB)
	certRepo := persistence.NewGormCertificateRepository(db.DB)

	// Event bus and its subscribers
	eventBus := event.NewInMemoryEventBus(log)
	businessMetrics, err := telemetry.NewBusinessMetrics(otelPipeline.Meter("institute-backend"), log)
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	eventBus.Subscribe(businessMetrics)

	mailer, err := notification.NewMailer(&cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}
	issuedNotifier := certapp.NewIssuedNotifier(studentRepo, courseRepo, mailer, log).
		WithVerifyBaseURL(cfg.Certificate.VerifyBaseURL)
	eventBus.SubscribeAsync(issuedNotifier)

	log.Info("Event handlers registered",
		zap.Strings("metrics_events", businessMetrics.EventTypes()),
		zap.Strings("notification_events", issuedNotifier.EventTypes()),
	)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	courseService := academicapp.NewCourseService(courseRepo)
	courseService.SetLogger(log)
	studentService := academicapp.NewStudentService(studentRepo)
	studentService.SetLogger(log)

	feeTx := persistence.NewFeeTransactionScope(db.DB)
	feeService := feeapp.NewFeeService(ledgerRepo, paymentRepo, studentRepo, courseRepo, feeTx)
	feeService.SetEventPublisher(eventBus)
	feeService.SetLogger(log)

	paymentService := feeapp.NewPaymentService(ledgerRepo, paymentRepo, studentRepo, courseRepo, feeTx)
	paymentService.SetReceiptFormatter(feeapp.NewReceiptFormatter("en", cfg.App.Currency))
	paymentService.SetEventPublisher(eventBus)
	paymentService.SetLogger(log)
	if cfg.Payment.Enabled {
		gateway, err := payment.NewMidtransGateway(&cfg.Payment, payment.WithMidtransLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize payment gateway", zap.Error(err))
		}
		paymentService.SetGateway(gateway)
		log.Info("Online payments enabled", zap.Bool("production", cfg.Payment.Production))
	}

	examTx := persistence.NewExamTransactionScope(db.DB)
	examService := examapp.NewExamService(examRepo, resultRepo, courseRepo, examTx)
	examService.SetEventPublisher(eventBus)
	examService.SetLogger(log)
	resultService := examapp.NewResultService(examRepo, resultRepo, studentRepo, examTx)
	resultService.SetEventPublisher(eventBus)
	resultService.SetLogger(log)

	certService := certapp.NewCertificateService(certRepo, studentRepo, courseRepo,
		persistence.NewCertificateTransactionScope(db.DB))
	certService.SetVerifyBaseURL(cfg.Certificate.VerifyBaseURL)
	certService.SetEventPublisher(eventBus)
	certService.SetLogger(log)

	cacheFactory := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	)
	verificationCache, closeCache, err := cacheFactory.CreateVerificationCache(ctx)
	if err != nil {
		log.Fatal("Failed to initialize verification cache", zap.Error(err))
	}
	certService.SetVerificationCache(verificationCache)

	notificationStore, err := cacheFactory.CreateIdempotencyStore(ctx)
	if err != nil {
		log.Fatal("Failed to initialize notification store", zap.Error(err))
	}
	paymentService.SetNotificationStore(notificationStore, shared.DefaultIdempotencyTTL)

	renderer, err := setupDocumentPipeline(ctx, cfg, certService, log)
	if err != nil {
		log.Fatal("Failed to initialize certificate documents", zap.Error(err))
	}

	// Daily overdue sweep
	var sweepScheduler *scheduler.Scheduler
	var sweepTrigger *scheduler.CronTrigger
	if cfg.Scheduler.Enabled {
		sweepScheduler = scheduler.NewScheduler(scheduler.Config{
			Workers:       cfg.Scheduler.Workers,
			JobTimeout:    cfg.Scheduler.JobTimeout,
			RetryAttempts: cfg.Scheduler.RetryAttempts,
			RetryDelay:    cfg.Scheduler.RetryDelay,
		}, scheduler.NewOverdueSweepExecutor(feeService, log), log)
		if err := sweepScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start sweep scheduler", zap.Error(err))
		}
		sweepTrigger = scheduler.NewCronTrigger(scheduler.CronTriggerConfig{
			SweepHour:     cfg.Scheduler.SweepHour,
			SweepMinute:   cfg.Scheduler.SweepMinute,
			CheckInterval: time.Minute,
		}, sweepScheduler, ledgerRepo, log)
		if err := sweepTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start sweep trigger", zap.Error(err))
		}
	}

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	defaultCenter, err := uuid.Parse(cfg.App.DefaultCenterID)
	if err != nil {
		defaultCenter = uuid.Nil
	}

	var rateLimiter *middleware.RateLimiter
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
	}
	engine.Use(middleware.CenterScope(middleware.DefaultCenterScopeConfig(defaultCenter)))
	engine.Use(middleware.SpanAttributes())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(otelPipeline.Meter("institute-backend/http")))
	engine.Use(middleware.Profiling(otelPipeline.ProfilingEnabled()))
	engine.Use(logger.GinMiddleware(log))

	healthHandler := handler.NewHealthHandler(sqlDB, cfg.App.Name, version)
	engine.GET("/health", healthHandler.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	groups := router.DomainGroups(router.Handlers{
		Courses:      handler.NewCourseHandler(courseService),
		Students:     handler.NewStudentHandler(studentService),
		Fees:         handler.NewFeeHandler(feeService),
		Payments:     handler.NewPaymentHandler(paymentService),
		Exams:        handler.NewExamHandler(examService),
		Results:      handler.NewResultHandler(resultService),
		Certificates: handler.NewCertificateHandler(certService, businessMetrics),
	})
	r := router.NewRouter(engine)
	r.Register(router.Registrars(groups)...).Setup()
	for _, g := range groups {
		log.Debug("Routes registered", zap.String("group", g.Name()), zap.Int("count", len(g.Routes())))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if sweepTrigger != nil {
		if err := sweepTrigger.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping sweep trigger", zap.Error(err))
		}
	}
	if sweepScheduler != nil {
		if err := sweepScheduler.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping sweep scheduler", zap.Error(err))
		}
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	if renderer != nil {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing renderer", zap.Error(err))
		}
	}
	if err := closeCache(); err != nil {
		log.Error("Error closing verification cache", zap.Error(err))
	}
	if err := notificationStore.Close(); err != nil {
		log.Error("Error closing notification store", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	if err := otelPipeline.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down telemetry", zap.Error(err))
	}
}

// setupDocumentPipeline wires PDF rendering and storage into the certificate
// service. Without a renderer generate and download stay disabled.
func setupDocumentPipeline(ctx context.Context, cfg *config.Config, certService *certapp.CertificateService, log *zap.Logger) (*printing.ChromedpRenderer, error) {
	if !cfg.Renderer.Enabled {
		log.Info("Certificate rendering disabled")
		return nil, nil
	}

	engine, err := printing.NewTemplateEngine(printing.WithInstitution(cfg.App.Name))
	if err != nil {
		return nil, err
	}
	renderer, err := printing.NewChromedpRenderer(engine, printing.ChromedpConfig{
		Timeout:     cfg.Renderer.Timeout,
		ExecPath:    cfg.Renderer.ChromePath,
		NoSandbox:   true,
		MaxParallel: cfg.Renderer.MaxParallel,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}

	var store certapp.DocumentStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3DocumentStore(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			_ = renderer.Close()
			return nil, err
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			_ = renderer.Close()
			return nil, err
		}
		store = s3Store
	} else {
		log.Warn("Object storage disabled, certificate PDFs are kept in memory")
		store = storage.NewMemoryDocumentStore(cfg.Storage.PublicBaseURL)
	}

	certService.SetDocumentPipeline(renderer, store, cfg.Certificate.DownloadTTL)
	return renderer, nil
}
