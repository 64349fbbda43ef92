package temba

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Record is one decoded JSON object from the remote API. Records from
// paginated endpoints and from archive files share this shape, so the rest
// of the pipeline does not care where a record came from.
type Record map[string]any

// RecordStream yields records lazily until io.EOF.
type RecordStream interface {
	Next() (Record, error)
}

// FetchOp is one paginated list endpoint. Params exposes the query
// parameters the endpoint declares, so callers can decide what to pass
// without a per-collection list of their own.
type FetchOp interface {
	Params() []string
	Fetch(ctx context.Context, args map[string]any) (RecordStream, error)
}

// endpointParams mirrors the query parameters each v2 endpoint accepts.
// Notably boundaries and a few others take no "after", which keeps them on
// full fetches.
var endpointParams = map[string][]string{
	"archives":             {"archive_type", "period", "before", "after"},
	"boundaries":           {"geometry"},
	"broadcasts":           {"id", "before", "after"},
	"campaigns":            {"uuid"},
	"campaign_events":      {"uuid", "campaign"},
	"channels":             {"uuid", "address"},
	"channel_events":       {"id", "contact", "before", "after"},
	"contacts":             {"uuid", "urn", "group", "deleted", "before", "after"},
	"fields":               {"key"},
	"flow_starts":          {"uuid", "before", "after"},
	"flows":                {"uuid", "before", "after"},
	"groups":               {"uuid", "name"},
	"labels":               {"uuid", "name"},
	"messages":             {"id", "broadcast", "contact", "folder", "label", "before", "after"},
	"resthooks":            {"before", "after"},
	"resthook_events":      {"resthook", "before", "after"},
	"resthook_subscribers": {"id", "before", "after"},
	"runs":                 {"id", "flow", "contact", "responded", "before", "after"},
}

// Config holds per-organization client configuration.
type Config struct {
	Server            string
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64
	RateRetries       int
	RateWait          time.Duration
}

// Client talks to one organization's RapidPro v2 API.
type Client struct {
	httpClient  *http.Client
	server      string
	token       string
	limiter     *rate.Limiter
	rateRetries int
	rateWait    time.Duration
	logger      *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	rateRetries := cfg.RateRetries
	if rateRetries <= 0 {
		rateRetries = 3
	}
	rateWait := cfg.RateWait
	if rateWait <= 0 {
		rateWait = 5 * time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		server:      cfg.Server,
		token:       cfg.Token,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		rateRetries: rateRetries,
		rateWait:    rateWait,
		logger:      logger.With("server", cfg.Server),
	}
}

func (c *Client) endpointURL(endpoint string) string {
	return fmt.Sprintf("%s/api/v2/%s.json", c.server, endpoint)
}

// GetOrg fetches the organization metadata for the client's token.
func (c *Client) GetOrg(ctx context.Context) (Record, error) {
	var rec Record
	if err := c.getJSON(ctx, c.endpointURL("org"), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListOp returns the paginated fetch operation for a collection.
func (c *Client) ListOp(collection string) FetchOp {
	return &listOp{client: c, collection: collection}
}

// GetByUUID fetches a single object by uuid. A missing object is not an
// error: found is false when the remote no longer has it.
func (c *Client) GetByUUID(ctx context.Context, collection, uuid string) (Record, bool, error) {
	u := c.endpointURL(collection) + "?uuid=" + url.QueryEscape(uuid)
	var page apiPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		var ae *APIError
		if errors.As(err, &ae) && ae.Status == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(page.Results) == 0 {
		return nil, false, nil
	}
	return page.Results[0], true, nil
}

type apiPage struct {
	Next    string   `json:"next"`
	Results []Record `json:"results"`
}

type listOp struct {
	client     *Client
	collection string
}

func (op *listOp) Params() []string {
	return endpointParams[op.collection]
}

func (op *listOp) Fetch(ctx context.Context, args map[string]any) (RecordStream, error) {
	q := url.Values{}
	for k, v := range args {
		switch val := v.(type) {
		case time.Time:
			q.Set(k, val.UTC().Format(time.RFC3339Nano))
		case string:
			q.Set(k, val)
		case int:
			q.Set(k, strconv.Itoa(val))
		case int64:
			q.Set(k, strconv.FormatInt(val, 10))
		case bool:
			q.Set(k, strconv.FormatBool(val))
		default:
			return nil, fmt.Errorf("unsupported fetch arg %s (%T)", k, v)
		}
	}
	u := op.client.endpointURL(op.collection)
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return &Cursor{ctx: ctx, client: op.client, next: u}, nil
}

// Cursor iterates a paginated endpoint lazily, following "next" links and
// retrying on rate-exceeded responses as it goes.
type Cursor struct {
	ctx    context.Context
	client *Client
	next   string
	buf    []Record
}

func (cur *Cursor) Next() (Record, error) {
	for len(cur.buf) == 0 {
		if cur.next == "" {
			return nil, io.EOF
		}
		var page apiPage
		if err := cur.client.getJSON(cur.ctx, cur.next, &page); err != nil {
			return nil, err
		}
		cur.buf = page.Results
		cur.next = page.Next
	}
	rec := cur.buf[0]
	cur.buf = cur.buf[1:]
	return rec, nil
}

// getJSON performs one GET with rate limiting, retrying rate-exceeded
// responses up to the configured count before giving up.
func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.rateRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return &APIError{Kind: ErrorKindConnection, Msg: "rate limiter wait", Err: err}
		}
		wait, err := c.doJSON(ctx, u, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if wait <= 0 {
			return err
		}
		c.logger.Warn("rate limit exceeded, waiting",
			"url", u,
			"wait", wait,
			"attempt", attempt+1,
		)
		select {
		case <-ctx.Done():
			return &APIError{Kind: ErrorKindConnection, Msg: "cancelled during rate wait", Err: ctx.Err()}
		case <-time.After(wait):
		}
	}
	return lastErr
}

// doJSON performs a single request. A positive wait in the return value
// means the call was rate limited and may be retried after waiting.
func (c *Client) doJSON(ctx context.Context, u string, out any) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, &APIError{Kind: ErrorKindBadRequest, Msg: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Token "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &APIError{Kind: ErrorKindConnection, Msg: "execute request", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, &APIError{Kind: ErrorKindConnection, Msg: "decode response", Err: err}
		}
		return 0, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		wait := c.rateWait
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				wait = time.Duration(secs) * time.Second
			}
		}
		return wait, &APIError{Kind: ErrorKindRateExceeded, Status: resp.StatusCode, Msg: "rate limit exceeded"}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return 0, &APIError{Kind: ErrorKindToken, Status: resp.StatusCode, Msg: "invalid or expired token"}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, &APIError{Kind: ErrorKindBadRequest, Status: resp.StatusCode, Msg: string(body)}
	default:
		return 0, &APIError{Kind: ErrorKindConnection, Status: resp.StatusCode, Msg: "server error"}
	}
}
