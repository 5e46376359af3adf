package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bkovalev/go-sync-keeper/internal/config"
	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *resty.Client
	logger *logger.Logger
}

// NewHTTPServerAdapter builds the resty-backed [ServerAdapter] used by the
// sync engine. The base URL and request timeout come from the client config.
func NewHTTPServerAdapter(cfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	if cfg.HTTPAddress == "" {
		return nil, fmt.Errorf("new http server adapter: %w", config.ErrInvalidAdapterConfigs)
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.HTTPAddress, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{client: cli, logger: log}, nil
}

func (h *httpServerAdapter) FetchBundle(ctx context.Context) (models.FullSyncResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/sync/bundle")
	if err != nil {
		return models.FullSyncResponse{}, mapRequestError(err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FullSyncResponse{}, err
	}

	var out models.FullSyncResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.FullSyncResponse{}, fmt.Errorf("decode bundle response: %w", err)
	}

	return out, nil
}

func (h *httpServerAdapter) DeltaSync(ctx context.Context, req models.DeltaSyncRequest) (models.DeltaSyncResponse, error) {
	req.Length = len(req.Hashes)

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/sync/delta")
	if err != nil {
		return models.DeltaSyncResponse{}, mapRequestError(err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeltaSyncResponse{}, err
	}

	var out models.DeltaSyncResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.DeltaSyncResponse{}, fmt.Errorf("decode delta response: %w", err)
	}

	return out, nil
}

func (h *httpServerAdapter) SendMutation(ctx context.Context, mutation models.PendingMutation) error {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(json.RawMessage(mutation.Body))
	if mutation.EntityVersion != "" {
		req.SetHeader("If-Match", mutation.EntityVersion)
	}

	var resp *resty.Response
	var err error
	switch mutation.Method {
	case models.MethodCreate:
		resp, err = req.Post(mutation.Endpoint)
	case models.MethodUpdate:
		resp, err = req.Put(mutation.Endpoint)
	case models.MethodDelete:
		resp, err = req.Delete(mutation.Endpoint)
	default:
		return fmt.Errorf("%w: unknown mutation method %q", ErrBadRequest, mutation.Method)
	}
	if err != nil {
		return mapRequestError(err)
	}

	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().
			Str("mutation_id", mutation.ID).
			Str("endpoint", mutation.Endpoint).
			Str("outcome", Classify(err).String()).
			Msg("mutation replay rejected")
		return err
	}

	return nil
}
