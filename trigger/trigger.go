// Package trigger invokes the poller, either once per inbound trigger message or on a timer.
package trigger

import (
	"context"

	"github.com/mjsigg/tkd-project-poller/poller"
)

type Runner interface {
	Run(ctx context.Context) (poller.Summary, error)
}

type RunnerFunc func(ctx context.Context) (poller.Summary, error)

func (f RunnerFunc) Run(ctx context.Context) (poller.Summary, error) {
	return f(ctx)
}
