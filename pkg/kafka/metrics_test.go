package kafka

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherMetricNames(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	return names
}

func TestMetrics_Registered(t *testing.T) {
	ConsumerMessagesReceived.WithLabelValues("t", "g")
	ConsumerMessagesProcessed.WithLabelValues("t", "g")
	ConsumerMessagesFailed.WithLabelValues("t", "g")
	ConsumerProcessingDuration.WithLabelValues("t", "g")
	ProducerMessagesPublished.WithLabelValues("t")
	ProducerPublishErrors.WithLabelValues("t")
	ProducerPublishDuration.WithLabelValues("t")

	names := gatherMetricNames(t)
	for _, name := range []string{
		"storefront_kafka_consumer_messages_received_total",
		"storefront_kafka_consumer_messages_processed_total",
		"storefront_kafka_consumer_messages_failed_total",
		"storefront_kafka_consumer_messages_duplicate_total",
		"storefront_kafka_consumer_processing_duration_seconds",
		"storefront_kafka_producer_messages_published_total",
		"storefront_kafka_producer_publish_errors_total",
		"storefront_kafka_producer_publish_duration_seconds",
	} {
		assert.True(t, names[name], "expected metric %q to be registered", name)
	}
}
