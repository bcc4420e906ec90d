package proxy

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// hopHeaders are meaningful only for a single connection and are never
// forwarded.
var hopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// OutboundHeader copies the caller's headers for a verbatim forward. Host,
// hop-by-hop, Content-Length and Accept-Encoding are dropped so the transport
// can set them for the upstream connection, and Authorization is replaced
// with the gateway's bearer token.
func OutboundHeader(inbound http.Header, token string) http.Header {
	h := inbound.Clone()
	if h == nil {
		h = http.Header{}
	}
	for _, v := range h.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, k := range hopHeaders {
		h.Del(k)
	}
	h.Del("Host")
	h.Del("Content-Length")
	h.Del("Accept-Encoding")
	h.Set("Authorization", "Bearer "+token)
	return h
}

// BearerHeader builds the headers for a gateway-constructed request.
func BearerHeader(token string, jsonBody bool) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	if jsonBody {
		h.Set("Content-Type", "application/json")
	}
	return h
}

// redactQuery drops the query string so ids and filters stay out of logs and
// span attributes.
func redactQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}

// writeUpstreamResponse relays an upstream reply with the given status.
func writeUpstreamResponse(c *gin.Context, status int, resp *Response) {
	c.Data(status, resp.ContentType(), resp.Body)
}
