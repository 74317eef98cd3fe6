package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rosterkit/rostersync/pkg/errors"
)

// DecodeResponse decodes a JSON response into the target structure. The
// response body is always closed. A non-200 status is reported as an
// APIError carrying the raw body as its message.
func DecodeResponse(resp *http.Response, source string, target any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "", err)
	}

	return nil
}
