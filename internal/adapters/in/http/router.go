package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ulule/limiter/v3"
)

// RouterConfig collects everything NewRouter wires together.
type RouterConfig struct {
	Server  *Server
	Tokens  TokenValidator
	Metrics *Metrics
	// Dev mounts /dev/impersonate when set.
	Dev *DevHandler

	RateLimit    string
	LimiterStore limiter.Store

	Logger   *slog.Logger
	LogLevel string
}

// NewRouter builds the echo instance: middleware, API routes, health, metrics and docs.
func NewRouter(ctx context.Context, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	requestValidator, err := OpenAPIRequestValidator(doc)
	if err != nil {
		return nil, err
	}
	rateLimit, err := RateLimit(cfg.RateLimit, cfg.LimiterStore, operationalRoute)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(EchoLogLevel(cfg.LogLevel))
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		requestLogger(logger),
		middleware.Recover(),
		cfg.Metrics.Middleware(),
		rateLimit,
		middleware.BodyLimit("1M"),
		BearerAuth(cfg.Tokens, publicRoute),
		requestValidator,
	)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", cfg.Metrics.Handler())
	if err := RegisterSwagger(e, doc); err != nil {
		return nil, err
	}

	RegisterHandlers(e, cfg.Server)

	if cfg.Dev != nil {
		e.GET("/dev/impersonate/:userId", cfg.Dev.Impersonate)
	}

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper:      operationalRoute,
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("remote_ip", v.RemoteIP),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

// operationalRoute matches health, metrics and docs, which are neither logged nor limited.
func operationalRoute(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/health" || path == "/metrics" || strings.HasPrefix(path, "/swagger/")
}

// EchoLogLevel maps a level name to echo's logger level. Unknown names mean INFO.
func EchoLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
