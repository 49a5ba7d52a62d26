package deeplink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/pion/logging"

	"linkbox/internal/domain"
)

// DefaultOpenCommand returns the platform's URL opener.
func DefaultOpenCommand() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// ExecOpener opens links by running an external command with the link as
// its last argument.
type ExecOpener struct {
	argv []string
	log  logging.LeveledLogger
}

// NewExecOpener returns an opener running command, split on whitespace. An
// empty command selects DefaultOpenCommand.
func NewExecOpener(command string, lf logging.LoggerFactory) *ExecOpener {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		argv = DefaultOpenCommand()
	}
	o := &ExecOpener{argv: argv}
	if lf != nil {
		o.log = lf.NewLogger("opener")
	}
	return o
}

var _ domain.LinkOpener = (*ExecOpener)(nil)

// Open runs the command and waits for it to exit.
func (o *ExecOpener) Open(ctx context.Context, rawURL string) error {
	args := append(append([]string(nil), o.argv[1:]...), rawURL)
	cmd := exec.CommandContext(ctx, o.argv[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if o.log != nil {
		o.log.Debugf("running %s for %d byte link", o.argv[0], len(rawURL))
	}
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", o.argv[0], err, msg)
		}
		return fmt.Errorf("%s: %w", o.argv[0], err)
	}
	return nil
}

// WriterOpener writes each link on its own line, for headless use.
type WriterOpener struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterOpener returns an opener printing to w.
func NewWriterOpener(w io.Writer) *WriterOpener { return &WriterOpener{w: w} }

var _ domain.LinkOpener = (*WriterOpener)(nil)

func (o *WriterOpener) Open(_ context.Context, rawURL string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := fmt.Fprintln(o.w, rawURL)
	return err
}
