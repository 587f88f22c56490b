package kbroker

import (
	"time"

	"github.com/rcrowley/go-metrics"
)

func getOrRegisterHistogram(name string, r metrics.Registry) metrics.Histogram {
	return r.GetOrRegister(name, func() metrics.Histogram {
		return metrics.NewHistogram(metrics.NewExpDecaySample(1028, 0.015))
	}).(metrics.Histogram)
}

// serverMetrics groups the metrics a Server records. All of them are safe for
// concurrent use from connection goroutines.
type serverMetrics struct {
	incomingByteRate       metrics.Meter
	requestRate            metrics.Meter
	requestSize            metrics.Histogram
	outgoingByteRate       metrics.Meter
	responseRate           metrics.Meter
	responseSize           metrics.Histogram
	requestLatency         metrics.Histogram
	unsupportedVersionRate metrics.Meter
	connectionRate         metrics.Meter
	connectionsOpen        metrics.Counter
	decodeErrorRate        metrics.Meter
	writeErrorRate         metrics.Meter
	acceptErrorRate        metrics.Meter
}

func newServerMetrics(r metrics.Registry) *serverMetrics {
	return &serverMetrics{
		incomingByteRate:       metrics.GetOrRegisterMeter("incoming-byte-rate", r),
		requestRate:            metrics.GetOrRegisterMeter("request-rate", r),
		requestSize:            getOrRegisterHistogram("request-size", r),
		outgoingByteRate:       metrics.GetOrRegisterMeter("outgoing-byte-rate", r),
		responseRate:           metrics.GetOrRegisterMeter("response-rate", r),
		responseSize:           getOrRegisterHistogram("response-size", r),
		requestLatency:         getOrRegisterHistogram("request-latency-in-ms", r),
		unsupportedVersionRate: metrics.GetOrRegisterMeter("unsupported-version-rate", r),
		connectionRate:         metrics.GetOrRegisterMeter("connection-rate", r),
		connectionsOpen:        metrics.GetOrRegisterCounter("connections-open", r),
		decodeErrorRate:        metrics.GetOrRegisterMeter("decode-error-rate", r),
		writeErrorRate:         metrics.GetOrRegisterMeter("write-error-rate", r),
		acceptErrorRate:        metrics.GetOrRegisterMeter("accept-error-rate", r),
	}
}

func (m *serverMetrics) updateIncoming(req *Request, bytes int) {
	m.requestRate.Mark(1)
	m.incomingByteRate.Mark(int64(bytes))
	m.requestSize.Update(int64(bytes))
	if negotiateVersion(req.header.APIVersion) == ErrUnsupportedVersion {
		m.unsupportedVersionRate.Mark(1)
	}
}

func (m *serverMetrics) updateOutgoing(bytes int, requestLatency time.Duration) {
	m.responseRate.Mark(1)
	m.outgoingByteRate.Mark(int64(bytes))
	m.responseSize.Update(int64(bytes))
	m.requestLatency.Update(requestLatency.Milliseconds())
}
