package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "buildquote/docs" // swagger spec
	"buildquote/internal/adapter/http/handlers"
	"buildquote/internal/config"
	"buildquote/internal/scheduler"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 15 * time.Second

// Handlers groups every HTTP handler mounted under /v1.
type Handlers struct {
	Quotes   *handlers.QuoteHandler
	Payments *handlers.PaymentHandler
}

// Run wires the application from cfg, starts the reconciliation scheduler and
// serves HTTP until SIGINT or SIGTERM.
func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.Server.GinMode)
	sentryEnabled := initSentry(cfg.Alerts)
	if sentryEnabled {
		defer sentry.Flush(2 * time.Second)
	}

	app, err := Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	sched, err := scheduler.NewScheduler(cfg.Reconciliation.Schedule, app.Reconciliation)
	if err != nil {
		return err
	}
	sched.Start()

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           NewRouter(app.Handlers, sentryEnabled),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening addr=%s store=%s provider=%s", srv.Addr, cfg.Store.Driver, cfg.Payments.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Printf("[server] shutting down")
	sched.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(h Handlers, withSentry bool) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, withSentry)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, h.Quotes)
	addPaymentRoutes(v1, h.Payments)
	return router
}

func setMiddlewares(router *gin.Engine, withSentry bool) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	if withSentry {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func initSentry(cfg config.AlertsConfig) bool {
	if cfg.SentryDSN == "" {
		return false
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		AttachStacktrace: true,
	}); err != nil {
		log.Printf("[server] sentry init failed err=%v", err)
		return false
	}
	return true
}
