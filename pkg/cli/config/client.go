package config

import (
	"context"
	"os"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/interfaces"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/infra/atlas"
	"github.com/urfave/cli/v3"
)

// Client holds Atlas Command connection configuration. Flag values take
// precedence over the TOML config file.
type Client struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	ConfigPath string
}

// fileConfig is the TOML config file schema
type fileConfig struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Flags returns CLI flags for client configuration
func (c *Client) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Atlas Command base URL",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("ATLAS_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Bearer token for Atlas Command",
			Destination: &c.Token,
			Sources:     cli.EnvVars("ATLAS_TOKEN"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "HTTP request timeout (default 10s)",
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("ATLAS_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to TOML config file",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("ATLAS_CONFIG"),
		},
	}
}

// Configure builds an Atlas Command client from flags and config file
func (c *Client) Configure(ctx context.Context) (interfaces.AtlasClient, error) {
	logger := ctxlog.From(ctx)

	if c.ConfigPath != "" {
		data, err := os.ReadFile(c.ConfigPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", c.ConfigPath))
		}
		var file fileConfig
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.ConfigPath))
		}
		if c.BaseURL == "" {
			c.BaseURL = file.BaseURL
		}
		if c.Token == "" {
			c.Token = file.Token
		}
		if c.Timeout == 0 && file.TimeoutSeconds > 0 {
			c.Timeout = time.Duration(file.TimeoutSeconds) * time.Second
		}
	}

	if c.BaseURL == "" {
		return nil, goerr.New("base URL is required (--base-url, ATLAS_BASE_URL or config file)")
	}

	c.warnExpiredToken(logger)

	var opts []atlas.Option
	if c.Timeout > 0 {
		opts = append(opts, atlas.WithTimeout(c.Timeout))
	}
	if c.Token != "" {
		opts = append(opts, atlas.WithToken(c.Token))
	}
	return atlas.New(c.BaseURL, opts...), nil
}

// warnExpiredToken flags tokens that are parseable JWTs past their expiry.
// Opaque tokens are left alone.
func (c *Client) warnExpiredToken(logger interface {
	Warn(msg string, args ...any)
}) {
	if c.Token == "" {
		return
	}
	token, err := jwt.ParseInsecure([]byte(c.Token))
	if err != nil {
		return
	}
	if exp := token.Expiration(); !exp.IsZero() && exp.Before(time.Now()) {
		logger.Warn("Bearer token is an expired JWT, requests will likely be rejected",
			"expired_at", exp)
	}
}
