package adapter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bkovalev/go-sync-keeper/internal/config"
	"github.com/bkovalev/go-sync-keeper/models"
)

const probeTimeout = 3 * time.Second

type HTTPLinkProber struct {
	client *resty.Client
}

// NewHTTPLinkProber samples connectivity by hitting the server's health
// endpoint with a short timeout. A 2xx answer means the link is available,
// a 5xx answer means the server is reachable but struggling (degrading),
// and any transport failure means unavailable.
func NewHTTPLinkProber(cfg config.ClientAdapter) *HTTPLinkProber {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.HTTPAddress, "/")).
		SetTimeout(probeTimeout)

	return &HTTPLinkProber{client: cli}
}

func (p *HTTPLinkProber) Probe(ctx context.Context) models.ConnectivityState {
	resp, err := p.client.R().
		SetContext(ctx).
		Get("/api/health")
	if err != nil {
		return models.ConnectivityUnavailable
	}

	switch {
	case resp.StatusCode() < http.StatusMultipleChoices:
		return models.ConnectivityAvailable
	case resp.StatusCode() >= http.StatusInternalServerError:
		return models.ConnectivityDegrading
	default:
		return models.ConnectivityUnavailable
	}
}
