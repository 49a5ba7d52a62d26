package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"linkbox/internal/metrics"
	"linkbox/internal/protocol/codec"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// App is the interactive requester: it drains inbound links in the
// background and executes commands read from the console.
type App struct {
	w   *Wire
	out io.Writer
}

// New returns an App printing command results to out.
func New(w *Wire, out io.Writer) *App {
	return &App{w: w, out: out}
}

// Run serves until in is exhausted, a quit command arrives or ctx is done.
// Session secrets are destroyed on return.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	defer a.w.Close()

	watcher, err := a.w.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, cancel := context.WithCancel(ctx)
	errc := make(chan error, 3)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		errc <- a.w.Queue.Run(ctx, a.w.HandleLink)
	}()
	// The queue consumer has exited before Close tears the session down.
	defer func() {
		cancel()
		<-consumerDone
	}()
	go func() { errc <- watcher.Run(ctx) }()

	if addr := a.w.Config.Metrics.Addr; addr != "" {
		srv := &http.Server{Addr: addr, Handler: metrics.Handler(a.w.Registry), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("metrics server: %w", err)
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintln(a.out, "ready: connect | disconnect | submit <text> | submit-tx <json> | status | quit")
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := a.Exec(ctx, line); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				fmt.Fprintf(a.out, "error: %v\n", err)
			}
		}
	}
}

// Exec runs one console command.
func (a *App) Exec(ctx context.Context, line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	sess := a.w.Session

	switch cmd {
	case "":
		return nil
	case "connect":
		if err := sess.InitiateConnect(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "connect request sent; waiting for the wallet")
	case "disconnect":
		if err := sess.Disconnect(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "disconnected")
	case "submit":
		if arg == "" {
			return errors.New("usage: submit <text>")
		}
		if err := sess.SignAndSubmit(ctx, []byte(arg)); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "request sent")
	case "submit-tx":
		if arg == "" {
			return errors.New("usage: submit-tx <json>")
		}
		payload, err := codec.EncodeTransactionPayload(json.RawMessage(arg))
		if err != nil {
			return fmt.Errorf("submit-tx: %w", err)
		}
		if err := sess.SignAndSubmit(ctx, payload); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "transaction sent")
	case "status":
		st := sess.Status()
		fmt.Fprintf(a.out, "state=%s", st.State)
		if st.AttemptID != "" {
			fmt.Fprintf(a.out, " attempt=%s", st.AttemptID)
		}
		if st.LocalKeyFingerprint != "" {
			fmt.Fprintf(a.out, " local=%s", st.LocalKeyFingerprint)
		}
		if st.PeerKeyFingerprint != "" {
			fmt.Fprintf(a.out, " peer=%s", st.PeerKeyFingerprint)
		}
		fmt.Fprintln(a.out)
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
