package deeplink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pion/logging"

	"linkbox/internal/domain"
	"linkbox/internal/metrics"
	"linkbox/internal/protocol/codec"
)

// Outcome classifies what Route did with a link.
type Outcome int

const (
	// OutcomeIgnored means the link was empty, unparseable or not ours.
	OutcomeIgnored Outcome = iota
	// OutcomeApproved means the wallet approved a connect.
	OutcomeApproved
	// OutcomeRejected means the wallet declined a connect.
	OutcomeRejected
	// OutcomeDisconnectAck means the wallet answered a disconnect.
	OutcomeDisconnectAck
	// OutcomeSubmitResponse means the wallet answered a signAndSubmit.
	OutcomeSubmitResponse
	// OutcomeFailed means the link was ours but could not be applied.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeApproved:
		return "approved"
	case OutcomeRejected:
		return "rejected"
	case OutcomeDisconnectAck:
		return "disconnect_ack"
	case OutcomeSubmitResponse:
		return "submit_response"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RouterConfig configures a Router.
type RouterConfig struct {
	// SelfBase is the base this program's redirect links live under.
	SelfBase string

	// Session receives connect responses.
	Session domain.ConnectionResponder

	Metrics *metrics.Metrics

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Router maps inbound links to session events.
type Router struct {
	selfPath string
	session  domain.ConnectionResponder
	metrics  *metrics.Metrics
	log      logging.LeveledLogger
}

// NewRouter returns a Router for links under cfg.SelfBase.
func NewRouter(cfg RouterConfig) (*Router, error) {
	if cfg.Session == nil {
		return nil, errors.New("deeplink: router needs a session")
	}
	base, err := url.Parse(strings.TrimSpace(cfg.SelfBase))
	if err != nil {
		return nil, fmt.Errorf("deeplink: self base %q: %w", cfg.SelfBase, err)
	}
	r := &Router{
		selfPath: strings.TrimRight(linkPath(base), "/"),
		session:  cfg.Session,
		metrics:  cfg.Metrics,
	}
	if cfg.LoggerFactory != nil {
		r.log = cfg.LoggerFactory.NewLogger("router")
	}
	return r, nil
}

// Route processes one inbound link. Links that are empty or not addressed
// to this program are ignored without error. A rejected connect is a normal
// outcome, not an error.
func (r *Router) Route(ctx context.Context, raw string) (Outcome, error) {
	out, err := r.route(ctx, raw)
	if err != nil {
		out = OutcomeFailed
	}
	r.metrics.Inbound(out.String())
	return out, err
}

func (r *Router) route(ctx context.Context, raw string) (Outcome, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return OutcomeIgnored, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		if r.log != nil {
			r.log.Debugf("ignoring unparseable link: %v", err)
		}
		return OutcomeIgnored, nil
	}
	q := u.Query()
	response := q.Get(codec.ParamResponse)

	switch linkPath(u) {
	case r.endpointPath(domain.EndpointConnect):
		if response != codec.ResponseApproved {
			return OutcomeRejected, r.session.OnConnectionRejection(ctx)
		}
		data := q.Get(codec.ParamData)
		if data == "" {
			return OutcomeApproved, domain.ErrMissingResponseData
		}
		peer, err := codec.DecodeApproval(data)
		if err != nil {
			return OutcomeApproved, fmt.Errorf("%w: %w", domain.ErrMissingResponseData, err)
		}
		approval := domain.ConnectionApproval{
			PeerPublicKey: peer,
			Attempt:       domain.AttemptID(q.Get(codec.ParamAttempt)),
		}
		return OutcomeApproved, r.session.OnConnectionApproval(ctx, approval)

	case r.endpointPath(domain.EndpointDisconnect):
		if r.log != nil {
			r.log.Infof("wallet answered disconnect: response=%q", response)
		}
		return OutcomeDisconnectAck, nil

	case r.endpointPath(domain.EndpointResponse):
		if r.log != nil {
			r.log.Infof("wallet answered signAndSubmit: response=%q", response)
		}
		return OutcomeSubmitResponse, nil
	}

	if r.log != nil {
		r.log.Debugf("ignoring link with unknown path %q", u.Path)
	}
	return OutcomeIgnored, nil
}

func (r *Router) endpointPath(ep domain.Endpoint) string {
	return r.selfPath + "/" + ep.String()
}

// linkPath returns the path of u, folding a non-empty host into it so that
// "scheme://api/v1/x" and "scheme:///api/v1/x" address the same endpoint.
func linkPath(u *url.URL) string {
	p := u.Path
	if u.Host != "" {
		p = "/" + u.Host + p
	}
	if u.Opaque != "" {
		p = "/" + strings.TrimLeft(u.Opaque, "/")
	}
	return p
}
