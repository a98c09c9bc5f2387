package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "school_quiz"

// 指标在包加载时创建，未调用 Init 时也可安全使用
var (
	RequestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "Requests currently being served",
	})

	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_rate_limited_total",
		Help:      "Requests rejected by the rate limiter",
	})

	AttemptsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attempts_submitted_total",
		Help:      "Accepted daily quiz attempts",
	})

	VouchersIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vouchers_issued_total",
		Help:      "Reward vouchers issued",
	})

	VouchersExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vouchers_expired_total",
		Help:      "Vouchers moved to expired by the sweep",
	})

	VoucherRedemptions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "voucher_redemptions_total",
		Help:      "Voucher redemption outcomes",
	}, []string{"result"})

	StandingsCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "standings_cache_total",
		Help:      "Standings cache lookups by outcome",
	}, []string{"outcome"})
)

var registerOnce sync.Once

// Init 注册到默认 registry，可重复调用
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			InFlight,
			RateLimited,
			AttemptsSubmitted,
			VouchersIssued,
			VouchersExpired,
			VoucherRedemptions,
			StandingsCache,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		InFlight.Inc()
		start := time.Now()
		c.Next()
		InFlight.Dec()

		// 未匹配的路由统一归类，避免标签基数失控
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		RequestCounter.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}
