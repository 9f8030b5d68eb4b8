package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/model/errs"
	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/repository/memory"
	"github.com/deskline-lab/vaani/pkg/utils/clock"
	"github.com/m-mizutani/gt"
)

func TestPutAndGetSession(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	sess := session.New(ctx, "call-001")
	gt.NoError(t, repo.PutSession(ctx, sess))

	got := gt.R1(repo.GetSession(ctx, "call-001")).NoError(t)
	gt.V(t, got).NotNil()
	gt.Equal(t, got.ID, types.SessionID("call-001"))
	gt.Equal(t, got.Status, types.SessionStatusActive)
	gt.Equal(t, got.Step, types.StepWelcome)

	missing := gt.R1(repo.GetSession(ctx, "no-such")).NoError(t)
	gt.V(t, missing).Nil()
}

func TestGetSessionReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	sess := session.New(ctx, "call-002")
	gt.NoError(t, repo.PutSession(ctx, sess))

	first := gt.R1(repo.GetSession(ctx, "call-002")).NoError(t)
	first.Slots.Name = "mutated"
	first.Append(session.NewEntry(ctx, types.SpeakerUser, "hi", types.LangEnglish))

	second := gt.R1(repo.GetSession(ctx, "call-002")).NoError(t)
	gt.Equal(t, second.Slots.Name, "")
	gt.A(t, second.Transcript).Length(0)
}

func TestPutSessionRejectsTerminal(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	sess := session.New(ctx, "call-003")
	sess.Complete(ctx)
	gt.NoError(t, repo.PutSession(ctx, sess))

	// Second write against the now-terminal record must fail
	again := session.New(ctx, "call-003")
	err := repo.PutSession(ctx, again)
	gt.Error(t, err)
	gt.B(t, errors.Is(err, errs.ErrSessionClosed)).True()
}

func TestListActiveIdleSince(t *testing.T) {
	base := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	ctx := clock.With(context.Background(), func() time.Time { return base })
	repo := memory.New()

	idle := session.New(ctx, "idle-session")
	gt.NoError(t, repo.PutSession(ctx, idle))

	freshCtx := clock.With(context.Background(), func() time.Time { return base.Add(20 * time.Minute) })
	fresh := session.New(freshCtx, "fresh-session")
	gt.NoError(t, repo.PutSession(ctx, fresh))

	done := session.New(ctx, "done-session")
	done.Complete(ctx)
	gt.NoError(t, repo.PutSession(ctx, done))

	results := gt.R1(repo.ListActiveIdleSince(ctx, base.Add(10*time.Minute))).NoError(t)
	gt.A(t, results).Length(1)
	gt.Equal(t, results[0].ID, types.SessionID("idle-session"))
}
