package helpers

import (
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// ESOptions configures the search mirror client. Zero durations and retry
// counts fall back to the defaults below.
type ESOptions struct {
	Addresses   []string
	Username    string
	Password    string
	DialTimeout time.Duration
	ReadTimeout time.Duration
	MaxRetries  int
}

const (
	defaultESDialTimeout = 3 * time.Second
	defaultESReadTimeout = 5 * time.Second
	defaultESMaxRetries  = 2
)

// ErrNoESAddress is returned when no node address is configured.
var ErrNoESAddress = errors.New("elasticsearch: no address configured")

func (o ESOptions) withDefaults() ESOptions {
	if o.DialTimeout <= 0 {
		o.DialTimeout = defaultESDialTimeout
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = defaultESReadTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultESMaxRetries
	}
	return o
}

// esConfig is split out so the option handling can be tested without a node.
func esConfig(o ESOptions) (elasticsearch.Config, error) {
	if len(o.Addresses) == 0 {
		return elasticsearch.Config{}, ErrNoESAddress
	}
	o = o.withDefaults()
	return elasticsearch.Config{
		Addresses:     o.Addresses,
		Username:      o.Username,
		Password:      o.Password,
		MaxRetries:    o.MaxRetries,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   4,
			ResponseHeaderTimeout: o.ReadTimeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: o.DialTimeout}).DialContext,
		},
	}, nil
}

// NewESClient builds the client used to mirror supply events into the search index.
func NewESClient(o ESOptions) (*elasticsearch.Client, error) {
	cfg, err := esConfig(o)
	if err != nil {
		return nil, err
	}
	return elasticsearch.NewClient(cfg)
}
