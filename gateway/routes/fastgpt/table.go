// Package fastgpt holds the explicit routes the gateway serves in front of
// the FastGPT API. Each route is declared as data and served by one generic
// handler.
package fastgpt

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/like-mike/fastgpt-gateway/gateway/routes/proxy"
	"github.com/like-mike/fastgpt-gateway/shared/credentials"
	"github.com/like-mike/fastgpt-gateway/shared/middleware"
	"github.com/like-mike/fastgpt-gateway/shared/usage"
)

// Route is one explicit handler.
type Route struct {
	// Name labels the route in logs and spans.
	Name   string
	Method string
	Path   string
	// Binding is the credential this route always uses, regardless of path
	// markers.
	Binding credentials.Name
	// Target is the upstream path appended to the binding's base URL.
	Target string
	// Query lists inbound query parameters copied to the upstream query.
	// They are always sent, empty when absent.
	Query []Param
	// Body projects the inbound body; nil sends no body.
	Body Projector
	// Failure is the fixed message returned when the call fails.
	Failure string
	// Respond reshapes a successful upstream body; nil returns it verbatim.
	Respond func(upstream []byte) (any, error)
	// TrackUsage hands successful replies to the usage recorder.
	TrackUsage bool
}

// Param copies the inbound query parameter From to the upstream parameter To.
type Param struct {
	From string
	To   string
}

// Q copies a query parameter under its own name.
func Q(name string) Param {
	return Param{From: name, To: name}
}

// Table serves a set of routes through a shared forwarder.
type Table struct {
	resolver  *credentials.Resolver
	forwarder *proxy.Forwarder
	usage     *usage.Recorder
	logger    *zap.Logger
}

func NewTable(resolver *credentials.Resolver, forwarder *proxy.Forwarder, logger *zap.Logger) *Table {
	return &Table{resolver: resolver, forwarder: forwarder, logger: logger}
}

// WithUsage sets the recorder that receives replies from routes with
// TrackUsage.
func (t *Table) WithUsage(r *usage.Recorder) *Table {
	t.usage = r
	return t
}

// Register adds every route to r in declaration order.
func (t *Table) Register(r gin.IRoutes, routes []Route) {
	for _, rt := range routes {
		r.Handle(rt.Method, rt.Path, t.Handler(rt))
	}
}

// Handler returns the gin handler for a single route.
func (t *Table) Handler(rt Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		binding, ok := t.resolver.Binding(rt.Binding)
		if !ok {
			t.logger.Error("binding not configured",
				zap.String("route", rt.Name),
				zap.String("binding", string(rt.Binding)),
			)
			c.String(http.StatusInternalServerError, rt.Failure)
			return
		}

		var body []byte
		if rt.Body != nil {
			raw, err := c.GetRawData()
			if err != nil {
				c.String(http.StatusBadRequest, ErrInvalidBody.Error())
				return
			}
			body, err = rt.Body.Project(raw)
			if err != nil {
				if !errors.Is(err, ErrInvalidBody) {
					t.logger.Error("failed to build upstream body", zap.String("route", rt.Name), zap.Error(err))
				}
				c.String(http.StatusBadRequest, ErrInvalidBody.Error())
				return
			}
		}

		resp, err := t.forwarder.Forward(c.Request.Context(), &proxy.Request{
			Method:  rt.Method,
			URL:     binding.BaseURL + rt.Target + buildQuery(c, rt.Query),
			Header:  proxy.BearerHeader(binding.Token, body != nil),
			Body:    body,
			Binding: binding.Name,
			Route:   rt.Name,
		})
		if err != nil {
			c.String(proxy.StatusCode(err), rt.Failure)
			return
		}

		if rt.TrackUsage {
			t.usage.Submit(&usage.Job{
				Route:     rt.Name,
				Binding:   string(binding.Name),
				RequestID: middleware.GetRequestID(c),
				Body:      resp.Body,
			})
		}

		if rt.Respond == nil {
			c.Data(http.StatusOK, resp.ContentType(), resp.Body)
			return
		}
		out, err := rt.Respond(resp.Body)
		if err != nil {
			t.logger.Error("unexpected upstream response", zap.String("route", rt.Name), zap.Error(err))
			c.String(http.StatusInternalServerError, rt.Failure)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func buildQuery(c *gin.Context, params []Param) string {
	if len(params) == 0 {
		return ""
	}
	v := url.Values{}
	for _, p := range params {
		v.Set(p.To, c.Query(p.From))
	}
	return "?" + v.Encode()
}
