package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TCPConnections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "track_tcp_connections_total",
		Help: "Total de conexiones TCP aceptadas",
	})
	FramesRecv = promauto.NewCounter(prometheus.CounterOpts{
		Name: "track_frames_received_total",
		Help: "Total de frames recibidos",
	})
	FrameCRCErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "track_frame_crc_errors_total",
		Help: "Frames descartados por CRC inválido",
	})
	RecordsDecoded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "track_records_decoded_total",
		Help: "Registros decodificados por tipo",
	}, []string{"kind"})
	DecodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "track_decode_errors_total",
		Help: "Errores al decodificar mensajes",
	})
	RedisSetErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "track_redis_set_errors_total",
		Help: "Errores al escribir estados en Redis",
	})
	ForwardErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "track_forward_errors_total",
		Help: "Errores al reenviar registros por gRPC",
	})
	DecodeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "track_decode_latency_seconds",
		Help:    "Latencia de decodificación por mensaje",
		Buckets: prometheus.DefBuckets,
	})
)

func ObserveDecodeLatency(start time.Time) {
	DecodeLatency.Observe(time.Since(start).Seconds())
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
