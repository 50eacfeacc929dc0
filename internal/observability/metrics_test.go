package observability

import (
	"testing"
	"time"

	"github.com/danmuck/folkways/internal/protocol"
	"github.com/danmuck/folkways/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("folkd-a", "GET", "/health", 200, 12*time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues("folkd-a", "GET", "/health", "200")))
}

func TestRecordCodecLabels(t *testing.T) {
	testlog.Start(t)
	msg := protocol.NewTextMessage(protocol.MessagePing, "")
	RecordCodec("codec-test", DirectionDecode, msg, 64, nil)
	RecordCodec("codec-test", DirectionDecode, nil, 0, &protocol.ChecksumMismatchError{Expected: 1, Actual: 2})

	assert.Equal(t, float64(1), testutil.ToFloat64(codecMessages.WithLabelValues("codec-test", DirectionDecode, "ping", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(codecMessages.WithLabelValues("codec-test", DirectionDecode, "unknown", "checksum_mismatch")))
	assert.Equal(t, float64(64), testutil.ToFloat64(codecBytes.WithLabelValues("codec-test", DirectionDecode)))
}
