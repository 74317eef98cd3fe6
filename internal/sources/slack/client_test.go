package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rserrors "github.com/rosterkit/rostersync/pkg/errors"
)

func TestListScopeMembersPaginates(t *testing.T) {
	// Three pages of two members each, chained by cursors c1 and c2.
	pages := map[string]membersResponse{
		"":   page([]string{"U1", "U2"}, "c1"),
		"c1": page([]string{"U3", "U4"}, "c2"),
		"c2": page([]string{"U5", "U6"}, ""),
	}

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/conversations.members", r.URL.Path)
		assert.Equal(t, "C123", r.URL.Query().Get("channel"))
		assert.Equal(t, "200", r.URL.Query().Get("limit"))

		calls++
		resp, ok := pages[r.URL.Query().Get("cursor")]
		require.True(t, ok, "unexpected cursor %q", r.URL.Query().Get("cursor"))
		writeJSON(t, w, resp)
	}))
	defer server.Close()

	client := New("xoxb-test", WithBaseURL(server.URL))
	ids, err := client.ListScopeMembers(context.Background(), "C123")
	require.NoError(t, err)

	assert.Equal(t, []string{"U1", "U2", "U3", "U4", "U5", "U6"}, ids)
	assert.Equal(t, 3, calls)
}

func TestListScopeMembersEmptyScope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, page(nil, ""))
	}))
	defer server.Close()

	client := New("xoxb-test", WithBaseURL(server.URL))
	ids, err := client.ListScopeMembers(context.Background(), "C999")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListScopeMembersRejectsEmptyScopeID(t *testing.T) {
	client := New("xoxb-test")
	_, err := client.ListScopeMembers(context.Background(), "")
	require.Error(t, err)
	assert.True(t, rserrors.IsValidationError(err))
}

func TestListScopeMembersUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, envelope{OK: false, Error: "channel_not_found"})
	}))
	defer server.Close()

	client := New("xoxb-test", WithBaseURL(server.URL))
	_, err := client.ListScopeMembers(context.Background(), "C404")
	require.Error(t, err)

	var apiErr *rserrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "channel_not_found", apiErr.Code)
}

func TestFetchMember(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users.info", r.URL.Path)
		assert.Equal(t, "U1", r.URL.Query().Get("user"))
		assert.Equal(t, "Bearer xoxb-test", r.Header.Get("Authorization"))

		fmt.Fprint(w, `{"ok":true,"user":{"id":"U1","profile":{"display_name":"a Alice"}}}`)
	}))
	defer server.Close()

	client := New("xoxb-test", WithBaseURL(server.URL))
	record, err := client.FetchMember(context.Background(), "U1")
	require.NoError(t, err)

	assert.Equal(t, "U1", record.ID)
	assert.Equal(t, "a Alice", record.Profile.DisplayName)
}

func TestFetchMemberRejectsEmptyID(t *testing.T) {
	client := New("xoxb-test")
	_, err := client.FetchMember(context.Background(), "")
	require.Error(t, err)
	assert.True(t, rserrors.IsValidationError(err))
}

func TestFetchMemberUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, envelope{OK: false, Error: "user_not_found"})
	}))
	defer server.Close()

	client := New("xoxb-test", WithBaseURL(server.URL))
	_, err := client.FetchMember(context.Background(), "U404")
	require.Error(t, err)

	var apiErr *rserrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "user_not_found", apiErr.Code)
}

func TestFetchMemberMissingUserRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := New("xoxb-test", WithBaseURL(server.URL))
	_, err := client.FetchMember(context.Background(), "U1")
	require.Error(t, err)

	var parseErr *rserrors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestListAllMembersSingleBulkCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users.list", r.URL.Path)
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		calls++
		fmt.Fprint(w, `{"ok":true,"members":[{"id":"U1"},{"id":"U2"}]}`)
	}))
	defer server.Close()

	client := New("xoxb-test", WithBaseURL(server.URL))
	ids, err := client.ListAllMembers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"U1", "U2"}, ids)
	assert.Equal(t, 1, calls, "unscoped listing must not paginate")
}

func page(members []string, nextCursor string) membersResponse {
	resp := membersResponse{Members: members}
	resp.OK = true
	resp.ResponseMetadata.NextCursor = nextCursor
	return resp
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}
