package metrics

import (
	"context"
	"fmt"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/nwtech/license-orderflow/internal/aws"
	"github.com/nwtech/license-orderflow/internal/logger"
)

// CloudWatch publishes each event with PutMetricData. Publish failures are
// logged and dropped.
type CloudWatch struct {
	client    aws.CloudWatchAPI
	namespace string
	log       *logger.Logger
	nowFunc   func() time.Time
}

func NewCloudWatch(client aws.CloudWatchAPI, namespace string, log *logger.Logger) *CloudWatch {
	if log == nil {
		log = logger.Nop()
	}
	return &CloudWatch{client: client, namespace: namespace, log: log, nowFunc: time.Now}
}

func (c *CloudWatch) ObserveRequest(ctx context.Context, route, method string, status int, duration time.Duration) {
	dims := []cwtypes.Dimension{
		{Name: awsv2.String("Route"), Value: awsv2.String(normalizeLabel(route))},
		{Name: awsv2.String("Method"), Value: awsv2.String(method)},
		{Name: awsv2.String("StatusClass"), Value: awsv2.String(fmt.Sprintf("%dxx", status/100))},
	}
	c.put(ctx,
		c.datum("Requests", 1, cwtypes.StandardUnitCount, dims),
		c.datum("RequestLatency", float64(duration.Milliseconds()), cwtypes.StandardUnitMilliseconds, dims),
	)
}

func (c *CloudWatch) OrderPlaced(ctx context.Context, total float64, items int) {
	c.put(ctx,
		c.datum("OrdersPlaced", 1, cwtypes.StandardUnitCount, nil),
		c.datum("OrderAmount", total, cwtypes.StandardUnitNone, nil),
		c.datum("OrderItems", float64(items), cwtypes.StandardUnitCount, nil),
	)
}

func (c *CloudWatch) CatalogSeeded(ctx context.Context, inserted int) {
	c.put(ctx, c.datum("CatalogSeeded", float64(inserted), cwtypes.StandardUnitCount, nil))
}

func (c *CloudWatch) ProductCreated(ctx context.Context) {
	c.put(ctx, c.datum("ProductsCreated", 1, cwtypes.StandardUnitCount, nil))
}

func (c *CloudWatch) datum(name string, value float64, unit cwtypes.StandardUnit, dims []cwtypes.Dimension) cwtypes.MetricDatum {
	return cwtypes.MetricDatum{
		MetricName: awsv2.String(name),
		Value:      awsv2.Float64(value),
		Unit:       unit,
		Timestamp:  awsv2.Time(c.nowFunc().UTC()),
		Dimensions: dims,
	}
}

func (c *CloudWatch) put(ctx context.Context, data ...cwtypes.MetricDatum) {
	if c == nil || c.client == nil {
		return
	}
	_, err := c.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  awsv2.String(c.namespace),
		MetricData: data,
	})
	if err != nil {
		c.log.Warn(ctx, "metrics.put_failed", err)
	}
}
