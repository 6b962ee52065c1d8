package ors

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.openrouteservice.org"
	DefaultProfile = "driving-car"
)

// Options tune the OpenRouteService client. Zero values take defaults.
type Options struct {
	BaseURL string
	Profile string
	// Country restricts geocoding to an ISO country code (boundary.country).
	Country string
	Timeout time.Duration
}

// Client talks to OpenRouteService. It implements both ports.Geocoder
// (/geocode/search) and ports.Optimizer (/optimization).
//
// The client is stateless apart from its configuration and is safe for
// concurrent use. It never retries; one call is one HTTP request.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	country string
}

func NewClient(apiKey string, opts Options) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Profile == "" {
		opts.Profile = DefaultProfile
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{
		session: &http.Client{Timeout: opts.Timeout},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		profile: opts.Profile,
		country: opts.Country,
	}, nil
}
