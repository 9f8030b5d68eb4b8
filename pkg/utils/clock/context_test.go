package clock_test

import (
	"context"
	"testing"
	"time"

	"github.com/deskline-lab/vaani/pkg/utils/clock"
	"github.com/m-mizutani/gt"
)

func TestClock(t *testing.T) {
	now := time.Now()
	c := func() time.Time {
		return now
	}
	ctx := context.Background()
	ctx = clock.With(ctx, c)
	gt.Equal(t, clock.Now(ctx), now)
}

func TestClockDefault(t *testing.T) {
	before := time.Now()
	got := clock.Now(context.Background())
	gt.B(t, got.Before(before)).False()
}
