// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryPolicy bounds how often a failed insert is attempted.
type retryPolicy struct {
	attempts  int
	baseDelay time.Duration
}

// backOff doubles the delay from baseDelay without jitter and stops after
// attempts tries or when ctx ends.
func (rp retryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = rp.baseDelay
	exp.RandomizationFactor = 0
	exp.Multiplier = 2
	exp.MaxElapsedTime = 0
	exp.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(rp.attempts-1)), ctx)
}

// do runs op until it succeeds, attempts run out or ctx ends. An error for
// which permanent reports true stops the loop at once.
func (rp retryPolicy) do(ctx context.Context, logger *slog.Logger, op func(context.Context) error, permanent func(error) bool) error {
	if rp.attempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	attempt := 0
	err := backoff.RetryNotify(func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		attempt++
		err := op(ctx)
		if err != nil && permanent != nil && permanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}, rp.backOff(ctx), func(err error, next time.Duration) {
		logger.Debug("operation failed, will retry",
			"attempt", attempt,
			"maxAttempts", rp.attempts,
			"delay", next,
			"err", err)
	})
	if err == nil && attempt > 1 {
		logger.Debug("operation succeeded after retry", "attempt", attempt)
	}
	return err
}
