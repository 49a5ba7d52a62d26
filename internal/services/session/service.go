package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pion/logging"

	"linkbox/internal/crypto"
	"linkbox/internal/domain"
	"linkbox/internal/metrics"
	"linkbox/internal/protocol/codec"
)

var (
	// ErrNoOpener is returned by New when no LinkOpener is configured.
	ErrNoOpener = errors.New("session: link opener required")
	// ErrIncompleteConfig is returned by New when app info or a link base is missing.
	ErrIncompleteConfig = errors.New("session: app info and link bases required")
)

// Config configures a Service.
type Config struct {
	// AppInfo is attached to every outbound request.
	AppInfo domain.AppInfo

	// SelfBase is the requester's own link base, e.g. "linkbox:///api/v1".
	// Redirect links point below it.
	SelfBase string

	// PeerBase is the wallet's link base, e.g. "petra:///api/v1".
	PeerBase string

	// Opener delivers outbound links. Required.
	Opener domain.LinkOpener

	// Rand is the entropy source for keys, nonces and attempt ids.
	// Defaults to crypto/rand.Reader.
	Rand io.Reader

	// BindAttempt adds the connect attempt id to the connect redirect link
	// and requires approvals to echo it back.
	BindAttempt bool

	// Metrics is optional.
	Metrics *metrics.Metrics

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Service is the session state machine.
type Service struct {
	appInfo     domain.AppInfo
	selfBase    string
	peerBase    string
	opener      domain.LinkOpener
	rand        io.Reader
	bindAttempt bool
	metrics     *metrics.Metrics
	log         logging.LeveledLogger

	mu      sync.Mutex
	state   domain.SessionState
	keys    *crypto.KeyPair
	peer    *domain.X25519Public
	shared  *crypto.SharedKey
	attempt domain.AttemptID
}

// New returns a disconnected Service.
func New(cfg Config) (*Service, error) {
	if cfg.Opener == nil {
		return nil, ErrNoOpener
	}
	if cfg.AppInfo.Domain == "" || cfg.AppInfo.Name == "" {
		return nil, fmt.Errorf("%w: app domain and name", ErrIncompleteConfig)
	}
	if cfg.SelfBase == "" || cfg.PeerBase == "" {
		return nil, fmt.Errorf("%w: self and peer link bases", ErrIncompleteConfig)
	}
	s := &Service{
		appInfo:     cfg.AppInfo,
		selfBase:    cfg.SelfBase,
		peerBase:    cfg.PeerBase,
		opener:      cfg.Opener,
		rand:        cfg.Rand,
		bindAttempt: cfg.BindAttempt,
		metrics:     cfg.Metrics,
	}
	if s.rand == nil {
		s.rand = rand.Reader
	}
	if cfg.LoggerFactory != nil {
		s.log = cfg.LoggerFactory.NewLogger("session")
	}
	return s, nil
}

// InitiateConnect generates a fresh key pair and sends a connect request to
// the wallet. The session stays connecting until the wallet answers or
// Disconnect is called.
func (s *Service) InitiateConnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case domain.StateConnecting:
		return s.fail("connect", domain.ErrAlreadyConnecting)
	case domain.StateConnected:
		return s.fail("connect", domain.ErrAlreadyConnected)
	}

	kp, err := crypto.GenerateKeyPair(s.rand)
	if err != nil {
		return s.fail("connect", err)
	}
	attempt, err := s.newAttemptID()
	if err != nil {
		kp.Clear()
		return s.fail("connect", err)
	}

	var extra url.Values
	if s.bindAttempt {
		extra = url.Values{codec.ParamAttempt: {attempt.String()}}
	}
	pub := kp.Public()
	msg := domain.ConnectRequest{
		AppInfo:                 s.appInfo,
		RedirectLink:            codec.RedirectLink(s.selfBase, domain.EndpointConnect, extra),
		DappEncryptionPublicKey: codec.EncodeHex(pub[:]),
	}
	if err := s.emit(ctx, msg); err != nil {
		kp.Clear()
		return s.fail("connect", err)
	}

	s.keys = kp
	s.attempt = attempt
	s.transition(domain.StateConnecting)
	if s.log != nil {
		s.log.Infof("connect attempt %s sent (local key %s)", attempt, kp.Fingerprint())
	}
	return nil
}

// OnConnectionApproval completes a pending connect with the wallet's public
// key. An invalid key leaves the session connecting.
func (s *Service) OnConnectionApproval(_ context.Context, approval domain.ConnectionApproval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StateConnecting || s.keys.Cleared() {
		return s.fail("approve", domain.ErrNoActiveKeyPair)
	}
	if s.bindAttempt && approval.Attempt != s.attempt {
		if s.log != nil {
			s.log.Warnf("approval for attempt %q does not match pending attempt %s", approval.Attempt, s.attempt)
		}
		return s.fail("approve", domain.ErrStaleApproval)
	}

	shared, err := s.keys.DeriveSharedKey(approval.PeerPublicKey)
	if err != nil {
		return s.fail("approve", err)
	}

	peer := approval.PeerPublicKey
	s.peer = &peer
	s.shared = shared
	s.transition(domain.StateConnected)
	if s.log != nil {
		s.log.Infof("connected to wallet key %s (attempt %s)", crypto.Fingerprint(peer[:]), s.attempt)
	}
	return nil
}

// OnConnectionRejection ends a pending connect that the wallet declined.
func (s *Service) OnConnectionRejection(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StateConnecting {
		return s.fail("reject", domain.ErrNoActiveKeyPair)
	}
	if s.log != nil {
		s.log.Infof("wallet rejected connect attempt %s", s.attempt)
	}
	s.clear()
	s.transition(domain.StateDisconnected)
	return nil
}

// Disconnect ends the session. From connected it first tells the wallet,
// from connecting it cancels locally. Key material is destroyed even when
// the disconnect link cannot be delivered.
func (s *Service) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.StateDisconnected {
		return s.fail("disconnect", domain.ErrNotConnected)
	}

	var emitErr error
	if s.state == domain.StateConnected {
		pub := s.keys.Public()
		emitErr = s.emit(ctx, domain.DisconnectRequest{
			AppInfo:                 s.appInfo,
			RedirectLink:            codec.RedirectLink(s.selfBase, domain.EndpointDisconnect, nil),
			DappEncryptionPublicKey: codec.EncodeHex(pub[:]),
		})
	}

	s.clear()
	s.transition(domain.StateDisconnected)
	if emitErr != nil {
		return s.fail("disconnect", emitErr)
	}
	if s.log != nil {
		s.log.Info("disconnected")
	}
	return nil
}

// SignAndSubmit encrypts payload under the session key and sends it to the
// wallet. The payload is opaque to the session.
func (s *Service) SignAndSubmit(ctx context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StateConnected || s.shared == nil {
		return s.fail("submit", domain.ErrNotConnected)
	}

	ct, nonce, err := crypto.Encrypt(s.rand, s.shared, payload)
	if err != nil {
		return s.fail("submit", err)
	}
	pub := s.keys.Public()
	msg := domain.SignAndSubmitRequest{
		AppInfo:                 s.appInfo,
		RedirectLink:            codec.RedirectLink(s.selfBase, domain.EndpointResponse, nil),
		DappEncryptionPublicKey: codec.EncodeHex(pub[:]),
		Payload:                 codec.EncodeHex(ct),
		Nonce:                   codec.EncodeHex(nonce[:]),
	}
	if err := s.emit(ctx, msg); err != nil {
		return s.fail("submit", err)
	}
	if s.log != nil {
		s.log.Debugf("submitted %d byte payload", len(payload))
	}
	return nil
}

// Teardown destroys all key material without contacting the wallet. It is
// meant for process shutdown.
func (s *Service) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
	if s.state != domain.StateDisconnected {
		s.transition(domain.StateDisconnected)
	}
}

// State returns the current state.
func (s *Service) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns a snapshot that is safe to log or display.
func (s *Service) Status() domain.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := domain.SessionStatus{State: s.state, AttemptID: s.attempt}
	if s.keys != nil {
		st.LocalKeyFingerprint = s.keys.Fingerprint()
	}
	if s.peer != nil {
		st.PeerKeyFingerprint = domain.Fingerprint(crypto.Fingerprint(s.peer[:]))
	}
	return st
}

// emit encodes msg and hands the resulting link to the opener.
func (s *Service) emit(ctx context.Context, msg domain.OutboundMessage) error {
	encoded, err := codec.Encode(msg)
	if err != nil {
		return err
	}
	link := codec.BuildURL(s.peerBase, msg.Endpoint(), encoded)
	if err := s.opener.Open(ctx, link); err != nil {
		return fmt.Errorf("open %s link: %w", msg.Endpoint(), err)
	}
	s.metrics.Outbound(msg.Endpoint())
	return nil
}

// clear destroys all session secrets. Callers hold s.mu.
func (s *Service) clear() {
	s.keys.Clear()
	s.keys = nil
	s.shared.Wipe()
	s.shared = nil
	s.peer = nil
	s.attempt = ""
}

func (s *Service) transition(to domain.SessionState) {
	from := s.state
	s.state = to
	s.metrics.Transition(from, to)
	if s.log != nil {
		s.log.Debugf("state %s -> %s", from, to)
	}
}

func (s *Service) fail(op string, err error) error {
	s.metrics.ProtocolError(op)
	if s.log != nil {
		s.log.Warnf("%s failed in state %s: %v", op, s.state, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Service) newAttemptID() (domain.AttemptID, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), s.rand)
	if err != nil {
		return "", fmt.Errorf("%w: attempt id: %v", domain.ErrEntropyUnavailable, err)
	}
	return domain.AttemptID(id.String()), nil
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
