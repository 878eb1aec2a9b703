package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nwtech/license-orderflow/internal/aws"
	"github.com/nwtech/license-orderflow/internal/config"
	"github.com/nwtech/license-orderflow/internal/docstore"
	"github.com/nwtech/license-orderflow/internal/handlers"
	"github.com/nwtech/license-orderflow/internal/logger"
	"github.com/nwtech/license-orderflow/internal/metrics"
)

const serviceName = "license-orderflow"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: serviceName}).Error(ctx, "config.load_failed", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, err := buildDeps(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "startup.failed", err)
		os.Exit(1)
	}
	r := handlers.NewRouter(deps)

	if cfg.App.RunLocal {
		logg.Info(logg.WithField(ctx, "addr", cfg.App.Addr()), "server.listening")
		if err := r.Run(cfg.App.Addr()); err != nil {
			logg.Error(ctx, "server.failed", err)
			os.Exit(1)
		}
		return
	}

	adapter := ginadapter.New(r)
	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}

// buildDeps wires the store, metrics and notifier selected by cfg. AWS
// clients are only created when something needs them.
func buildDeps(ctx context.Context, cfg *config.Config, logg *logger.Logger) (handlers.Deps, error) {
	deps := handlers.Deps{
		Logger:         logg,
		Metrics:        metrics.Nop{},
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Diagnostics: handlers.Diagnostics{
			Driver:      cfg.Store.Driver,
			Region:      cfg.AWS.Region,
			TablePrefix: cfg.Store.TablePrefix,
		},
	}

	needAWS := cfg.Store.Driver == config.DriverDynamoDB ||
		cfg.Queue.OrdersQueueURL != "" ||
		(!cfg.App.RunLocal && cfg.Metrics.CloudWatchNamespace != "")
	var clients *aws.AWSClients
	if needAWS {
		var err error
		clients, err = aws.NewAWSClients(ctx, aws.Settings{
			Region:           cfg.AWS.Region,
			EndpointOverride: cfg.AWS.EndpointOverride,
		})
		if err != nil {
			return deps, err
		}
	}

	switch cfg.Store.Driver {
	case config.DriverDynamoDB:
		deps.Store = docstore.NewDynamo(clients.DynamoDB, cfg.Store.TablePrefix)
	case config.DriverMemory:
		deps.Store = docstore.NewMemory()
	default:
		logg.Warn(ctx, "store.not_configured", nil)
	}

	if cfg.Queue.OrdersQueueURL != "" {
		deps.Notifier = aws.NewPublisher(clients.SQS, cfg.Queue.OrdersQueueURL)
	}

	switch {
	case cfg.App.RunLocal:
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		deps.Metrics = metrics.NewPrometheus(reg)
		deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	case cfg.Metrics.CloudWatchNamespace != "":
		deps.Metrics = metrics.NewCloudWatch(clients.CloudWatch, cfg.Metrics.CloudWatchNamespace, logg)
	}

	return deps, nil
}
