// Package requirementapi is a read-only client for the requirement service.
// Requirements live outside this service; only lookups happen here, so the
// calls are idempotent and retried with bounded backoff.
package requirementapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"fixitnow/services/marketplace-api/internal/domain/requirement"
	"fixitnow/services/marketplace-api/internal/domain/retry"
	"fixitnow/services/marketplace-api/internal/infrastructure/metrics"
	"fixitnow/services/marketplace-api/internal/utils/platformerrors"
)

// Client implements the requirement.Reader interface.
type Client struct {
	httpClient *resty.Client
	policy     retry.Policy
	log        zerolog.Logger
}

// NewClient creates a Resty-backed client.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
		policy: retry.DefaultPolicy(),
		log:    log.With().Str("component", "requirement-client").Logger(),
	}
}

// Get fetches a requirement by ID from the requirement service.
func (c *Client) Get(ctx context.Context, id string) (*requirement.Requirement, error) {
	result, err := retry.ExecuteWithResult(ctx, c.policy,
		func(ctx context.Context, attempt int) (*requirement.Requirement, bool, error) {
			if attempt > 0 {
				c.log.Debug().Str("requirement_id", id).Int("attempt", attempt).Msg("retrying requirement lookup")
			}
			return c.get(ctx, id)
		})
	if err != nil {
		metrics.RequirementLookups.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.RequirementLookups.WithLabelValues("ok").Inc()
	return result, nil
}

func (c *Client) get(ctx context.Context, id string) (*requirement.Requirement, bool, error) {
	var req requirement.Requirement
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&req).
		Get(fmt.Sprintf("/api/requirements/%s", id))
	if err != nil {
		// Connection-level failures are worth another attempt.
		return nil, true, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "requirement service unreachable", err, "requirement-client-transport")
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, false, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeNotFound, fmt.Sprintf("requirement not found: %s", id), nil,
			"requirement-client-not-found")
	case resp.StatusCode() >= http.StatusInternalServerError:
		return nil, true, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, fmt.Sprintf("requirement service error: %s", resp.Status()), nil,
			"requirement-client-upstream")
	case resp.IsError():
		return nil, false, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, fmt.Sprintf("requirement service rejected request: %s", resp.Status()), nil,
			"requirement-client-rejected")
	}

	return &req, false, nil
}
