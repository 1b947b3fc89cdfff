// Package router assembles the gin engine: middleware chain, template
// loading, and the public/protected route split.
package router

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ayursync/web/internal/middleware"
	"github.com/ayursync/web/internal/service/schedule"
)

// Handler is any page handler that mounts its own routes.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine  *gin.Engine
	guard   *middleware.RouteGuard
	metrics *routerMetrics

	landingH     Handler
	authH        Handler
	dashboardH   Handler
	diseaseH     Handler
	symptomH     Handler
	doctorsH     Handler
	appointmentH Handler
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateRPS       float64
	RateBurst     int
	MetricsPrefix string
	TemplateGlob  string
	StaticDir     string
}

func New(
	guard *middleware.RouteGuard,
	landingH, authH, dashboardH, diseaseH, symptomH, doctorsH, appointmentH Handler,
	log zerolog.Logger,
	cfg Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	registerValidations()
	engine := gin.New()

	r := &Router{
		engine:       engine,
		guard:        guard,
		metrics:      initRouterMetrics(cfg.MetricsPrefix),
		landingH:     landingH,
		authH:        authH,
		dashboardH:   dashboardH,
		diseaseH:     diseaseH,
		symptomH:     symptomH,
		doctorsH:     doctorsH,
		appointmentH: appointmentH,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		r.metricsMiddleware(),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   cfg.RateRPS,
		Burst: cfg.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	engine.SetFuncMap(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	})
	engine.LoadHTMLGlob(cfg.TemplateGlob)
	if cfg.StaticDir != "" {
		engine.Static("/static", cfg.StaticDir)
	}

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.engine.Group("")
	r.landingH.RegisterRoutes(public)
	r.authH.RegisterRoutes(public)

	protected := r.engine.Group("")
	protected.Use(r.guard.Authenticate())
	r.dashboardH.RegisterRoutes(protected)
	r.diseaseH.RegisterRoutes(protected)
	r.symptomH.RegisterRoutes(protected)
	r.doctorsH.RegisterRoutes(protected)
	r.appointmentH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// registerValidations adds the clocklabel binding rule used by the
// time-of-day form fields.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("clocklabel", func(fl validator.FieldLevel) bool {
			_, _, err := schedule.ParseClock(fl.Field().String())
			return err == nil
		})
	}
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
