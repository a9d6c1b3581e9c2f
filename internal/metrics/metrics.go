package metrics

import (
	"errors"
	"strconv"
	"time"

	"blog-backend/internal/errs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	SigninSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signin_success_total",
		Help: "Total successful signin attempts",
	})

	SigninFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signin_failure_total",
		Help: "Total failed signin attempts",
	}, []string{"reason"})

	SignupSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signup_success_total",
		Help: "Total successful signups",
	})

	PostsPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "posts_published_total",
		Help: "Total posts published",
	})

	UpvotesAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "upvotes_added_total",
		Help: "Total upvote requests accepted",
	})

	FeedSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "feed_subscribers",
		Help: "Live feed websocket connections currently open",
	})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(SigninSuccess)
	prometheus.MustRegister(SigninFailure)
	prometheus.MustRegister(SignupSuccess)
	prometheus.MustRegister(PostsPublished)
	prometheus.MustRegister(UpvotesAdded)
	prometheus.MustRegister(FeedSubscribers)
}

// Instrument records request timing by method, route template and status code.
func Instrument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}
		route := c.Route().Path

		RequestDuration.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
		return err
	}
}

// statusOf predicts the status the error handler will write for err.
func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return errs.KindOf(err).Status()
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
