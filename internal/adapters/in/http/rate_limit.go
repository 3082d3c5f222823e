package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const limiterPrefix = "shiptrack:limiter"

// NewLimiterStore returns a redis-backed store when redisURL is set and an
// in-process store otherwise.
func NewLimiterStore(redisURL string) (limiter.Store, error) {
	if redisURL == "" {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: limiterPrefix}), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return sredis.NewStoreWithOptions(redis.NewClient(opts), limiter.StoreOptions{Prefix: limiterPrefix})
}

// RateLimit limits requests per client IP. rate uses the limiter format, e.g.
// "100-M" for 100 requests a minute. An empty rate disables limiting.
func RateLimit(rate string, store limiter.Store, skipper middleware.Skipper) (echo.MiddlewareFunc, error) {
	if rate == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }, nil
	}
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}
	if store == nil {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: limiterPrefix})
	}

	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(store, parsed)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			lctx, err := instance.Get(c.Request().Context(), c.RealIP())
			if err != nil {
				return err
			}

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			header.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			header.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}, nil
}
