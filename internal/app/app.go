package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/product-dashboard/config"
	"github.com/niksmo/product-dashboard/internal/adapter"
	"github.com/niksmo/product-dashboard/internal/adapter/catalog"
	"github.com/niksmo/product-dashboard/internal/adapter/httphandler"
	"github.com/niksmo/product-dashboard/internal/adapter/kafka"
	"github.com/niksmo/product-dashboard/internal/adapter/storage"
	"github.com/niksmo/product-dashboard/internal/core/aggregator"
	"github.com/niksmo/product-dashboard/internal/core/service"
	"github.com/niksmo/product-dashboard/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	product          schema.Serde
	dashboardSummary schema.Serde
}

type publishers struct {
	products  *kafka.ProductsProducer
	dashboard *kafka.DashboardEmitter
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	serdes     serdes
	sqldb      *storage.SQLDB
	publishers publishers
	service    service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initSerdes()
	app.initPublishers()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	if !app.cfg.StorageEnabled() {
		slog.Info("snapshot archive is disabled", "op", op)
		return
	}

	db, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = &db
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	if !app.cfg.BrokerEnabled() {
		return
	}

	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaIdentifier := schema.NewSchemaIdentifier(srClient)

	productSubject := app.cfg.Broker.Topics.ProductSnapshots + "-value"
	productSerde, err := schema.NewSerdeProductV1(
		ctx,
		schema.SubjectOpt(productSubject),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	dashboardSubject := app.cfg.Broker.Topics.DashboardSummaries + "-value"
	dashboardSerde, err := schema.NewSerdeDashboardSummaryV1(
		ctx,
		schema.SubjectOpt(dashboardSubject),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.product = productSerde
	app.serdes.dashboardSummary = dashboardSerde
}

func (app *App) initPublishers() {
	const op = "App.initPublishers"

	if !app.cfg.BrokerEnabled() {
		slog.Info("publishing is disabled", "op", op)
		return
	}

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	topics := app.cfg.Broker.Topics
	tlsConfig := app.brokerTLSConfig()

	productsProducer, err := kafka.NewProductsProducer(
		kafka.ProducerClientOpt(
			ctx, seedBrokers, topics.ProductSnapshots, tlsConfig,
		),
		kafka.ProducerEncoderOpt(app.serdes.product),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	dashboardEmitter, err := kafka.NewDashboardEmitter(
		seedBrokers,
		topics.DashboardSummaries,
		app.serdes.dashboardSummary,
		tlsConfig,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.publishers.products = &productsProducer
	app.publishers.dashboard = &dashboardEmitter
}

func (app *App) brokerTLSConfig() *tls.Config {
	const op = "App.brokerTLSConfig"

	if !app.cfg.Broker.TLSEnabled() {
		return nil
	}

	tlsCfg := app.cfg.Broker.TLS
	tlsConfig, err := adapter.MakeTLSConfig(tlsCfg.CA, tlsCfg.Cert, tlsCfg.Key)
	if err != nil {
		app.fallDown(op, err)
	}
	return tlsConfig
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	catalogCfg := app.cfg.Catalog
	catalogClient, err := catalog.NewClient(catalog.ClientConfig{
		URL:            catalogCfg.URL,
		Quantity:       catalogCfg.Quantity,
		CategoriesType: catalogCfg.CategoriesType,
		Timeout:        catalogCfg.Timeout,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	dashboardCfg := app.cfg.Dashboard
	aggregatorOpts := aggregator.Options{
		TopTags:             dashboardCfg.TopTags,
		AffordableThreshold: dashboardCfg.AffordableThreshold,
		TableCategories:     dashboardCfg.TableCategories,
	}

	var opts []service.Opt
	if app.sqldb != nil {
		repo := storage.NewSnapshotsRepository(*app.sqldb)
		opts = append(opts, service.SnapshotsStorageOpt(repo))
	}
	if app.publishers.products != nil {
		opts = append(opts, service.ProductsProducerOpt(app.publishers.products))
	}
	if app.publishers.dashboard != nil {
		opts = append(opts, service.DashboardEmitterOpt(app.publishers.dashboard))
	}

	app.service = service.New(catalogClient, aggregatorOpts, opts...)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterDashboard(mux, app.service)
	httphandler.RegisterProducts(mux, app.service)
	httphandler.RegisterHealth(mux)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)

	if app.publishers.products != nil {
		app.publishers.products.Close()
	}
	if app.publishers.dashboard != nil {
		app.publishers.dashboard.Close()
	}
	if app.sqldb != nil {
		app.sqldb.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
