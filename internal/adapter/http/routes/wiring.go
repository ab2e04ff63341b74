package routes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"buildquote/internal/adapter/http/handlers"
	"buildquote/internal/adapter/persistence/postgres"
	"buildquote/internal/adapter/persistence/repository"
	"buildquote/internal/config"
	"buildquote/internal/infrastructure/alerting"
	"buildquote/internal/infrastructure/database"
	"buildquote/internal/infrastructure/payments"
	"buildquote/internal/receipt"
	"buildquote/internal/usecase"
	"buildquote/internal/usecase/interfaces"

	"github.com/getsentry/sentry-go"
)

// App is the wired application.
type App struct {
	Handlers       Handlers
	Reconciliation usecase.IReconciliationUseCase

	closers []func() error
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

type stores struct {
	quotes  interfaces.IQuoteRepository
	records interfaces.IPaymentRecordRepository
	db      *sql.DB
}

// Build connects the configured store and payment provider and assembles the
// use cases and handlers.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	st, err := openStores(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	app := &App{}
	if st.db != nil {
		app.closers = append(app.closers, st.db.Close)
	}

	gateway, err := newGateway(cfg.Payments)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	alerter := newAlerter(cfg.Alerts)

	generator := receipt.NewGenerator(receipt.Company{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
		Website: cfg.Company.Website,
	})

	quoteUseCase := usecase.NewQuoteUseCase(st.quotes)
	paymentUseCase := usecase.NewPaymentUseCase(st.quotes, st.records, gateway, alerter, cfg.Payments.Currency)
	receiptUseCase := usecase.NewReceiptUseCase(st.quotes, st.records, generator, cfg.Payments.Currency)

	app.Reconciliation = usecase.NewReconciliationUseCase(st.quotes, st.records, alerter,
		cfg.Reconciliation.BatchSize, cfg.Reconciliation.MaxAttempts)
	app.Handlers = Handlers{
		Quotes:   handlers.NewQuoteHandler(quoteUseCase, receiptUseCase),
		Payments: handlers.NewPaymentHandler(paymentUseCase),
	}
	return app, nil
}

func openStores(ctx context.Context, cfg config.StoreConfig) (stores, error) {
	switch cfg.Driver {
	case config.StorePostgres:
		db, err := database.ConnectPostgres(ctx, cfg.Postgres.DSN)
		if err != nil {
			return stores{}, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return stores{}, err
		}
		log.Printf("[server] using postgres store")
		return stores{
			quotes:  postgres.NewQuoteRepository(db),
			records: postgres.NewPaymentRecordRepository(db),
			db:      db,
		}, nil
	case config.StoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return stores{}, err
		}
		log.Printf("[server] using dynamodb store quotes_table=%s payments_table=%s", cfg.QuotesTable, cfg.PaymentsTable)
		return stores{
			quotes:  repository.NewQuoteDynamoRepository(ddb, cfg.QuotesTable),
			records: repository.NewPaymentRecordDynamoRepository(ddb, cfg.PaymentsTable),
		}, nil
	default:
		return stores{}, fmt.Errorf("unknown store driver: %q", cfg.Driver)
	}
}

func newGateway(cfg config.PaymentsConfig) (interfaces.IPaymentGateway, error) {
	var (
		gateway interfaces.IPaymentGateway
		err     error
	)
	switch cfg.Provider {
	case config.ProviderStripe:
		gateway, err = payments.NewStripeGateway(cfg.StripeSecretKey, nil)
	case config.ProviderMercadoPago:
		gateway, err = payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
	case config.ProviderMock:
		gateway = payments.NewMockGateway()
	default:
		err = fmt.Errorf("unknown payment provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return payments.NewResilientGateway(gateway, payments.ResilienceSettings{
		Timeout:     cfg.Timeout,
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	}), nil
}

// newAlerter always logs; Sentry and e-mail are added when configured.
func newAlerter(cfg config.AlertsConfig) interfaces.IAlerter {
	sinks := alerting.Multi{alerting.LogAlerter{}}
	if cfg.SentryDSN != "" {
		sinks = append(sinks, alerting.NewSentryAlerter(sentry.CurrentHub()))
	}
	if cfg.SendGridAPIKey != "" {
		email, err := alerting.NewSendGridAlerter(cfg.SendGridAPIKey, cfg.FromEmail, cfg.OperatorEmail)
		if err != nil {
			log.Printf("[server] sendgrid alerts disabled err=%v", err)
		} else {
			sinks = append(sinks, email)
		}
	}
	return sinks
}
