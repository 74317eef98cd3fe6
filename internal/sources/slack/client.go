// Package slack provides a client for the Slack-compatible member-source
// Web API: bearer credential, cursor-paginated member listing, per-member
// detail lookup, and the ok/error response envelope.
package slack

import (
	"context"
	"net/url"

	"github.com/rosterkit/rostersync/internal/transport"
	"github.com/rosterkit/rostersync/pkg/errors"
	"github.com/rosterkit/rostersync/pkg/logging"
	"github.com/rosterkit/rostersync/pkg/roster"
)

const (
	// defaultBaseURL is the Slack Web API root.
	defaultBaseURL = "https://slack.com/api"

	// scopePageLimit is the page-size ceiling for scoped member listing.
	scopePageLimit = "200"

	// bulkListLimit is the single-request ceiling for unscoped listing.
	// ListAllMembers does not paginate past it; see the method doc.
	bulkListLimit = "1000"
)

// sourceName tags errors raised by this client.
const sourceName = "slack"

// Client talks to the member-source API.
type Client struct {
	baseURL   string
	transport *transport.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, primarily for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// New creates a client authenticating with the given bearer token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		transport: transport.New(&transport.BearerAuth{}, token),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the failure-reporting convention shared by all responses:
// ok=false carries an error code in Error.
type envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type membersResponse struct {
	envelope
	Members          []string `json:"members"`
	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	} `json:"response_metadata"`
}

type memberDetailResponse struct {
	envelope
	User *roster.SourceRecord `json:"user"`
}

type usersListResponse struct {
	envelope
	Members []roster.SourceRecord `json:"members"`
}

// ListScopeMembers returns all member identifiers in the given scope,
// following the continuation cursor until the source reports no more
// pages. An empty scope population yields an empty slice, not an error.
func (c *Client) ListScopeMembers(ctx context.Context, scopeID string) ([]string, error) {
	if scopeID == "" {
		return nil, errors.NewValidationError("scopeID", scopeID, "must not be empty")
	}

	logger := logging.FromContext(ctx)

	var ids []string
	cursor := ""
	pages := 0
	for {
		query := url.Values{}
		query.Set("channel", scopeID)
		query.Set("limit", scopePageLimit)
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var page membersResponse
		if err := c.call(ctx, "conversations.members", query, &page); err != nil {
			return nil, err
		}

		ids = append(ids, page.Members...)
		pages++

		cursor = page.ResponseMetadata.NextCursor
		if cursor == "" {
			break
		}
	}

	logger.Debug().
		Str("scope", scopeID).
		Int("pages", pages).
		Int("members", len(ids)).
		Msg("Listed scope members")

	return ids, nil
}

// FetchMember returns the detail record for one member identifier.
func (c *Client) FetchMember(ctx context.Context, memberID string) (*roster.SourceRecord, error) {
	if memberID == "" {
		return nil, errors.NewValidationError("memberID", memberID, "must not be empty")
	}

	query := url.Values{}
	query.Set("user", memberID)

	var detail memberDetailResponse
	if err := c.call(ctx, "users.info", query, &detail); err != nil {
		return nil, err
	}
	if detail.User == nil {
		return nil, errors.NewParseError("json", memberID, "detail response has no user record", nil)
	}

	return detail.User, nil
}

// ListAllMembers returns member identifiers for the whole workspace using
// a single bulk request with a high page-size ceiling. Populations above
// that ceiling are truncated: this call does not loop over cursors, and
// callers that can exceed the cap must paginate themselves.
func (c *Client) ListAllMembers(ctx context.Context) ([]string, error) {
	query := url.Values{}
	query.Set("limit", bulkListLimit)

	var list usersListResponse
	if err := c.call(ctx, "users.list", query, &list); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list.Members))
	for _, m := range list.Members {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// envelopeChecker lets call inspect the shared ok/error envelope on any
// decoded response type.
type envelopeChecker interface {
	failed() (code string, failed bool)
}

func (e *envelope) failed() (string, bool) {
	return e.Error, !e.OK
}

// call performs one GET against an API method and decodes the response,
// translating an ok=false envelope into an APIError. No retries: any
// transport or upstream failure surfaces immediately.
func (c *Client) call(ctx context.Context, method string, query url.Values, target envelopeChecker) error {
	endpoint := c.baseURL + "/" + method + "?" + query.Encode()

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return errors.WrapAPI(sourceName, method, err)
	}

	if err := transport.DecodeResponse(resp, sourceName, target); err != nil {
		return err
	}

	if code, failed := target.failed(); failed {
		return &errors.APIError{
			Source:   sourceName,
			Endpoint: method,
			Code:     code,
			Message:  "upstream reported failure",
		}
	}

	return nil
}
