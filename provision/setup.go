/*
 Caretaker, a scheduler for ephemeral game servers.
 Copyright (C) 2025 Yannic Rieger <oss@76k.io>

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const agentVersion = "1.8.2"

// Config describes what the setup sequence installs on the instance.
type Config struct {
	// Image is the game server container image to run.
	Image string

	// Name is the container name the image is started under.
	Name string

	// Env is passed to the container verbatim.
	Env map[string]string

	// Ports are docker port mappings, e.g. "27015:27015/udp".
	Ports []string

	// Hostname is set on the instance when non-empty.
	Hostname string

	// SettleDelay is how long to wait before the first remote command,
	// giving cloud-init time to finish.
	SettleDelay time.Duration

	// PullDelay and PullRetries bound the image pull. the pull is
	// attempted once plus PullRetries times with PullDelay in between.
	PullDelay   time.Duration
	PullRetries uint64
}

// SetupError is a remote command that completed with a non-zero exit
// code. it carries the commands captured output for the operator.
type SetupError struct {
	Cmd    string
	Output string
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup command %q failed: %s", e.Cmd, e.Output)
}

var errPullFailed = errors.New("image pull failed")

// Run executes the setup sequence on an open session. steps run in a
// fixed order and a failing step aborts the remainder. nothing is
// rolled back on failure so the operator can inspect the instance.
func Run(ctx context.Context, logger *slog.Logger, sess Session, cfg Config) error {
	if err := sleepCtx(ctx, cfg.SettleDelay); err != nil {
		return err
	}

	if err := pullImage(ctx, logger, sess, cfg); err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting container", "image", cfg.Image)
	if err := execStep(ctx, sess, dockerRunCommand(cfg)); err != nil {
		return err
	}

	logger.InfoContext(ctx, "setting up swap")
	swap := []string{
		"dd if=/dev/zero of=/swapfile bs=1M count=1024",
		"chmod 600 /swapfile && mkswap /swapfile && swapon /swapfile",
	}
	for _, cmd := range swap {
		if err := execStep(ctx, sess, cmd); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "setting up telemetry agent")
	agent := []string{
		fmt.Sprintf(
			"wget -q https://github.com/prometheus/node_exporter/releases/download/v%s/node_exporter-%s.linux-amd64.tar.gz -O /tmp/node_exporter.tar.gz",
			agentVersion, agentVersion,
		),
		fmt.Sprintf(
			"tar -xzf /tmp/node_exporter.tar.gz -C /usr/local/bin --strip-components=1 node_exporter-%s.linux-amd64/node_exporter",
			agentVersion,
		),
		"printf '[Unit]\\nDescription=node exporter\\n[Service]\\nDynamicUser=true\\nExecStart=/usr/local/bin/node_exporter\\n[Install]\\nWantedBy=multi-user.target\\n' > /etc/systemd/system/node_exporter.service",
		"iptables -I INPUT -p tcp --dport 9100 -j ACCEPT",
		"systemctl daemon-reload && systemctl start node_exporter",
	}
	for _, cmd := range agent {
		if err := execStep(ctx, sess, cmd); err != nil {
			return err
		}
	}

	if cfg.Hostname != "" {
		if err := execStep(ctx, sess, "hostname "+cfg.Hostname); err != nil {
			return err
		}
	}
	return nil
}

func pullImage(ctx context.Context, logger *slog.Logger, sess Session, cfg Config) error {
	var (
		pull    = "docker pull " + cfg.Image
		attempt uint64
		last    Result
	)
	logger.DebugContext(ctx, "pulling image", "image", cfg.Image)

	op := func() error {
		attempt++
		res, err := sess.Exec(ctx, pull)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("run %q: %w", pull, err))
		}
		if !res.Success() {
			last = res
			logger.ErrorContext(ctx, "failed to pull image",
				"attempt", attempt,
				"output", string(res.Output),
			)
			return errPullFailed
		}
		return nil
	}

	pol := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(cfg.PullDelay), cfg.PullRetries),
		ctx,
	)
	if err := backoff.Retry(op, pol); err != nil {
		if errors.Is(err, errPullFailed) {
			return &SetupError{Cmd: pull, Output: string(last.Output)}
		}
		return err
	}
	return nil
}

func execStep(ctx context.Context, sess Session, cmd string) error {
	res, err := sess.Exec(ctx, cmd)
	if err != nil {
		return fmt.Errorf("run %q: %w", cmd, err)
	}
	if !res.Success() {
		return &SetupError{Cmd: cmd, Output: string(res.Output)}
	}
	return nil
}

func dockerRunCommand(cfg Config) string {
	var sb strings.Builder
	sb.WriteString("docker run --name " + cfg.Name + " -d")

	keys := make([]string, 0, len(cfg.Env))
	for k := range cfg.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " -e '%s=%s'", k, cfg.Env[k])
	}

	for _, p := range cfg.Ports {
		sb.WriteString(" -p " + p)
	}

	sb.WriteString(" " + cfg.Image)
	return sb.String()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
