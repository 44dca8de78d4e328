package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/brandloop/internal/logger"
)

// maxStderr bounds how much stderr is quoted back in errors.
const maxStderr = 512

// ErrNoCommand is returned when a collaborator has no command configured.
var ErrNoCommand = errors.New("no command configured")

// Runner executes a command with a JSON request on stdin and decodes
// a JSON response from stdout.
type Runner struct {
	argv    []string
	env     []string
	timeout time.Duration
}

// NewRunner creates a runner for argv. Timeout 0 means only ctx bounds the call.
func NewRunner(argv []string, timeout time.Duration) (*Runner, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, ErrNoCommand
	}
	return &Runner{argv: append([]string(nil), argv...), timeout: timeout}, nil
}

// WithEnv returns a copy of the runner with extra environment entries.
func (r *Runner) WithEnv(env ...string) *Runner {
	cp := *r
	cp.env = append(append([]string(nil), r.env...), env...)
	return &cp
}

// Run sends req and decodes the reply into resp. A nil resp discards stdout.
func (r *Runner) Run(ctx context.Context, req, resp any) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	//nolint:gosec // G204: the command comes from the operator's own config file.
	cmd := exec.CommandContext(ctx, r.argv[0], r.argv[1:]...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}

	start := time.Now()
	runErr := cmd.Run()
	logger.L().Debug("collaborator command finished",
		zap.String("command", r.argv[0]),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(runErr))

	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", r.argv[0], ctxErr)
		}
		return fmt.Errorf("%s: %w: %s", r.argv[0], runErr, tail(stderr.String()))
	}

	if resp == nil {
		return nil
	}
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), resp); err != nil {
		return fmt.Errorf("%s: decoding response: %w", r.argv[0], err)
	}
	return nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		return "..." + s[len(s)-maxStderr:]
	}
	return s
}
