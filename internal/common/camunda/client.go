// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sonnimal/internal/common/config"
	"sonnimal/internal/common/errors"
	"sonnimal/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Client owns the gateway connection shared by every job worker.
type Client struct {
	client zbc.Client
	config *ClientConfig
	logger logger.Logger
}

type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	RequestTimeout         time.Duration
	RetryConfig            *RetryConfig
}

type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 3,
	BaseDelay:  1 * time.Second,
	MaxDelay:   10 * time.Second,
}

// ConfigFrom maps the camunda section onto a ClientConfig.
func ConfigFrom(cfg config.CamundaConfig) *ClientConfig {
	return &ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Timeout),
		RequestTimeout:         config.GetDuration(cfg.RequestTimeout),
		RetryConfig:            DefaultRetryConfig,
	}
}

// NewClient dials the gateway and checks the topology once.
func NewClient(cfg *ClientConfig, log logger.Logger) (*Client, error) {
	if cfg.RetryConfig == nil {
		cfg.RetryConfig = DefaultRetryConfig
	}
	if cfg.ConnectionTimeout <= 0 {
		cfg.ConnectionTimeout = 10 * time.Second
	}

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: cfg.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectionTimeout)
	defer cancel()
	if _, err := zeebeClient.NewTopologyCommand().Send(ctx); err != nil {
		zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.GatewayAddress, err)
	}

	return &Client{
		client: zeebeClient,
		config: cfg,
		logger: log.WithFields(map[string]interface{}{"gateway": cfg.GatewayAddress}),
	}, nil
}

// GetClient exposes the raw client for job polling.
func (c *Client) GetClient() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

// ExecuteWithRetry runs command with exponential backoff. Only broker
// connectivity failures are retried; each command gets RequestTimeout.
func (c *Client) ExecuteWithRetry(
	ctx context.Context,
	command func(context.Context) (interface{}, error),
	operation string,
) (interface{}, error) {
	retry := c.config.RetryConfig

	for attempt := 0; ; attempt++ {
		result, err := c.send(ctx, command)
		if err == nil {
			return result, nil
		}
		if !isRetryableZeebeError(err) || attempt == retry.MaxRetries {
			return nil, mapZeebeError(err, operation, attempt)
		}

		delay := retry.BaseDelay * time.Duration(1<<attempt)
		if delay > retry.MaxDelay {
			delay = retry.MaxDelay
		}
		c.logger.Warn("zeebe command failed, retrying", map[string]interface{}{
			"operation": operation,
			"attempt":   attempt + 1,
			"delay":     delay.String(),
			"error":     err.Error(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, errors.NewBrokerUnavailableError(
				fmt.Errorf("%s cancelled after %d attempts: %w", operation, attempt+1, ctx.Err()))
		}
	}
}

func (c *Client) send(ctx context.Context, command func(context.Context) (interface{}, error)) (interface{}, error) {
	if c.config.RequestTimeout <= 0 {
		return command(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()
	return command(ctx)
}

var retryablePhrases = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"deadline exceeded",
	"unavailable",
	"unreachable",
	"broken pipe",
}

func isRetryableZeebeError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range retryablePhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

// mapZeebeError keeps broker connectivity problems as SOURCE_UNAVAILABLE.
// Anything else is a fault.
func mapZeebeError(err error, operation string, attempt int) error {
	msg := fmt.Sprintf("zeebe operation '%s' failed", operation)
	if attempt > 0 {
		msg += fmt.Sprintf(" after %d attempts", attempt+1)
	}
	wrapped := fmt.Errorf("%s: %w", msg, err)

	if isRetryableZeebeError(err) {
		return errors.NewBrokerUnavailableError(wrapped)
	}
	return errors.NewUnexpectedFaultError(wrapped)
}

// HealthCheck asks the gateway for its topology.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}
