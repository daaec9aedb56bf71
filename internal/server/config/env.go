package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	envHTTPAddr        = "HEALTHLOG_HTTP_ADDR"
	envDatabaseDSN     = "HEALTHLOG_DATABASE_DSN"
	envSecretKey       = "HEALTHLOG_SECRET_KEY"
	envAccessTokenTTL  = "HEALTHLOG_ACCESS_TOKEN_TTL"
	envRefreshTokenTTL = "HEALTHLOG_REFRESH_TOKEN_TTL"
	envResetTokenTTL   = "HEALTHLOG_RESET_TOKEN_TTL"
	envRedisURL        = "HEALTHLOG_REDIS_URL"
	envResetStream     = "HEALTHLOG_RESET_STREAM"
	envDefaultPageSize = "HEALTHLOG_DEFAULT_PAGE_SIZE"
	envMaxPageSize     = "HEALTHLOG_MAX_PAGE_SIZE"
	envAllowedOrigins  = "HEALTHLOG_ALLOWED_ORIGINS"
	envLogLevel        = "HEALTHLOG_LOG_LEVEL"
)

type lookupFunc func(key string) (string, bool)

// parseEnv overlays HEALTHLOG_* variables. Durations use Go syntax
// ("15m"), origins are comma separated. All malformed values are reported
// together.
func parseEnv(config *Config, lookup lookupFunc) error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", key, v))
			return
		}
		*dst = d
	}
	num := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("%s: invalid positive integer %q", key, v))
			return
		}
		*dst = n
	}

	str(envHTTPAddr, &config.EndpointAddrHTTP)
	str(envDatabaseDSN, &config.DatabaseDSN)
	str(envSecretKey, &config.SecretKey)
	dur(envAccessTokenTTL, &config.AccessTokenValidityDuration)
	dur(envRefreshTokenTTL, &config.RefreshTokenValidityDuration)
	dur(envResetTokenTTL, &config.ResetTokenValidityDuration)
	str(envRedisURL, &config.RedisURL)
	str(envResetStream, &config.ResetStream)
	num(envDefaultPageSize, &config.DefaultPageSize)
	num(envMaxPageSize, &config.MaxPageSize)
	str(envLogLevel, &config.LogLevel)

	if v, ok := lookup(envAllowedOrigins); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.AllowedOrigins = origins
	}

	return errors.Join(errs...)
}
