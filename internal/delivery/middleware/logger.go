package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"parlaseramik/config"
	deliverycontext "parlaseramik/internal/delivery/context"
	domainerrors "parlaseramik/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const healthPath = "/health"

// LoggerMiddleware writes one access log line per request when debug is on.
// Health probes are logged at debug level so they do not drown the storefront traffic.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		m.logRequest(c, start, err)

		return err
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()

	// The request logger already carries request_id, and user_id once authenticated.
	logger := deliverycontext.GetLoggerOrDefault(req.Context(), m.logger)

	// The error handler runs after this middleware returns, so derive the status it will write.
	status := res.Status
	if err != nil && !res.Committed {
		status = errorStatus(err)
	}

	attrs := []slog.Attr{
		slog.String("uri", req.URL.Path),
		slog.Int("status", status),
		slog.Int64("bytes", res.Size),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}
	if req.URL.RawQuery != "" {
		attrs = append(attrs, slog.String("query", req.URL.RawQuery))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	logger.LogAttrs(req.Context(), accessLogLevel(req.URL.Path, status), "HTTP request", attrs...)
}

func accessLogLevel(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case strings.HasPrefix(path, healthPath):
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func errorStatus(err error) int {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
