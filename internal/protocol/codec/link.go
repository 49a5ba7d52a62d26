package codec

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"linkbox/internal/domain"
)

// Query parameter names used on deep links.
const (
	ParamData     = "data"
	ParamResponse = "response"
	ParamAttempt  = "attempt"

	// ResponseApproved is the response value of an approved request.
	ResponseApproved = "approved"
)

// EndpointURL joins a link base such as "petra:///api/v1" with ep.
func EndpointURL(base string, ep domain.Endpoint) string {
	return strings.TrimRight(base, "/") + "/" + ep.String()
}

// BuildURL returns the deep link that delivers encoded to ep under base.
func BuildURL(base string, ep domain.Endpoint, encoded string) string {
	q := url.Values{}
	q.Set(ParamData, encoded)
	return EndpointURL(base, ep) + "?" + q.Encode()
}

// RedirectLink returns the link the wallet should answer on, with optional
// extra query parameters.
func RedirectLink(base string, ep domain.Endpoint, extra url.Values) string {
	link := EndpointURL(base, ep)
	if len(extra) > 0 {
		link += "?" + extra.Encode()
	}
	return link
}

func encodeJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
