package sessionstore_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/deskline-lab/vaani/pkg/domain/model/errs"
	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/repository/memory"
	"github.com/deskline-lab/vaani/pkg/service/sessionstore"
	"github.com/m-mizutani/gt"
)

func TestUpdateCreatesUnknownSession(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.New(memory.New())

	sess := gt.R1(store.Update(ctx, "fresh-id", func(ctx context.Context, s *session.Session) error {
		gt.Equal(t, s.Step, types.StepWelcome)
		gt.Equal(t, s.Status, types.SessionStatusActive)
		s.Slots.Name = "Ramesh"
		return nil
	})).NoError(t)

	gt.Equal(t, sess.Slots.Name, "Ramesh")

	stored := gt.R1(store.Load(ctx, "fresh-id")).NoError(t)
	gt.V(t, stored).NotNil()
	gt.Equal(t, stored.Slots.Name, "Ramesh")
}

func TestUpdateNoChange(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.New(memory.New())

	sess := gt.R1(store.Update(ctx, "skip-id", func(ctx context.Context, s *session.Session) error {
		return sessionstore.ErrNoChange
	})).NoError(t)
	gt.V(t, sess).NotNil()

	// Nothing was persisted
	stored := gt.R1(store.Load(ctx, "skip-id")).NoError(t)
	gt.V(t, stored).Nil()
}

// Concurrent updates for the same session must both land: the final state
// reflects the merge of all updates, not a lost write.
func TestUpdateSerializesSameSession(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.New(memory.New())

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.Update(ctx, "busy-id", func(ctx context.Context, s *session.Session) error {
				s.Append(session.NewEntry(ctx, types.SpeakerUser, fmt.Sprintf("turn %d", n), types.LangEnglish))
				if n == 0 {
					s.Slots.Name = "Ramesh"
				}
				if n == 1 {
					s.Slots.ServiceName = "haircut"
				}
				return nil
			})
			gt.NoError(t, err)
		}(i)
	}
	wg.Wait()

	final := gt.R1(store.Load(ctx, "busy-id")).NoError(t)
	gt.A(t, final.Transcript).Length(workers)
	gt.Equal(t, final.Slots.Name, "Ramesh")
	gt.Equal(t, final.Slots.ServiceName, "haircut")
}

func TestUpdateIndependentSessionsDoNotBlock(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.New(memory.New())

	blocker := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_, _ = store.Update(ctx, "slow-id", func(ctx context.Context, s *session.Session) error {
			close(started)
			<-blocker
			return nil
		})
	}()

	<-started
	// While slow-id holds its lock, another session proceeds freely
	_, err := store.Update(ctx, "fast-id", func(ctx context.Context, s *session.Session) error {
		s.Slots.Name = "Priya"
		return nil
	})
	gt.NoError(t, err)
	close(blocker)
}

func TestSaveTerminalRejected(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.New(memory.New())

	sess := gt.R1(store.Update(ctx, "done-id", func(ctx context.Context, s *session.Session) error {
		s.Complete(ctx)
		return nil
	})).NoError(t)
	gt.Equal(t, sess.Status, types.SessionStatusCompleted)

	err := store.Save(ctx, sess)
	gt.Error(t, err)
	gt.B(t, errors.Is(err, errs.ErrSessionClosed)).True()
}
