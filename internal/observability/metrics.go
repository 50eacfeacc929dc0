package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/folkways/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	DirectionEncode = "encode"
	DirectionDecode = "decode"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folkways",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "folkways",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	codecMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folkways",
			Subsystem: "codec",
			Name:      "messages_total",
			Help:      "Messages encoded or decoded, by type and result.",
		},
		[]string{"node", "direction", "type", "result"},
	)
	codecBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folkways",
			Subsystem: "codec",
			Name:      "bytes_total",
			Help:      "Wire bytes handled by successful encode/decode calls.",
		},
		[]string{"node", "direction"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, codecMessages, codecBytes)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordCodec counts one encode or decode. msg may be nil on failure; the
// result label is "ok" or protocol.KindOf(err).
func RecordCodec(node, direction string, msg *protocol.Message, size int, err error) {
	RegisterMetrics()
	typeLabel := "unknown"
	if msg != nil && msg.Header != nil {
		if mt, ok := msg.MessageType(); ok {
			typeLabel = mt.String()
		}
	}
	result := "ok"
	if err != nil {
		result = protocol.KindOf(err)
	}
	codecMessages.WithLabelValues(node, direction, typeLabel, result).Inc()
	if err == nil && size > 0 {
		codecBytes.WithLabelValues(node, direction).Add(float64(size))
	}
}
