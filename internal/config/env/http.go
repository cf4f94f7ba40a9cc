package env

import (
	"errors"
	"os"

	"wingo_backend/internal/config"
)

const (
	httpAddressEnvName    = "HTTP_ADDRESS"
	metricsAddressEnvName = "METRICS_ADDRESS"
)

type httpConfig struct {
	address        string
	metricsAddress string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	address := os.Getenv(httpAddressEnvName)
	if len(address) == 0 {
		return nil, errors.New("http address not found")
	}

	metricsAddress := os.Getenv(metricsAddressEnvName)
	if len(metricsAddress) == 0 {
		metricsAddress = ":9090"
	}

	return &httpConfig{
		address:        address,
		metricsAddress: metricsAddress,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.address
}

func (cfg *httpConfig) MetricsAddress() string {
	return cfg.metricsAddress
}
