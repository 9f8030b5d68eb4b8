package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/domain/model/errs"
	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/repository/memory"
	"github.com/deskline-lab/vaani/pkg/service/catalog"
	"github.com/deskline-lab/vaani/pkg/service/intent"
	"github.com/deskline-lab/vaani/pkg/service/sessionstore"
	"github.com/deskline-lab/vaani/pkg/usecase"
	"github.com/deskline-lab/vaani/pkg/utils/clock"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

var refTime = time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)

func testCtx() context.Context {
	return clock.With(context.Background(), func() time.Time { return refTime })
}

func newTestUseCases(t *testing.T, opts ...usecase.Option) (*usecase.UseCases, *sessionstore.Store, *catalog.Catalog) {
	t.Helper()
	cat := gt.R1(catalog.Default()).NoError(t)
	store := sessionstore.New(memory.New())
	return usecase.New(store, cat, opts...), store, cat
}

func turn(t *testing.T, uc *usecase.UseCases, id types.SessionID, utterance string) *usecase.TurnResult {
	t.Helper()
	return gt.R1(uc.HandleTurn(testCtx(), usecase.TurnInput{
		SessionID: id,
		Utterance: utterance,
	})).NoError(t)
}

func TestWelcomeGreeting(t *testing.T) {
	uc, _, cat := newTestUseCases(t)

	result := turn(t, uc, "call-c", "hello")
	gt.Equal(t, result.Reply, cat.Get(types.LangEnglish, catalog.KeyWelcome))
	gt.Equal(t, result.Step, types.StepMainMenu)
	gt.Equal(t, result.Language, types.LangEnglish)
	gt.Equal(t, result.Intent, types.IntentGreeting)
}

func TestBookingNameAdvancesToService(t *testing.T) {
	uc, _, cat := newTestUseCases(t)

	turn(t, uc, "call-a", "hello")
	result := turn(t, uc, "call-a", "I want to book an appointment")
	gt.Equal(t, result.Step, types.StepBookingName)
	gt.Equal(t, result.Reply, cat.Get(types.LangEnglish, catalog.KeyAskName))

	result = turn(t, uc, "call-a", "my name is Ramesh")
	gt.Equal(t, result.Step, types.StepBookingService)
	gt.Equal(t, result.Reply, cat.Get(types.LangEnglish, catalog.KeyAskService))
}

func TestHindiContactNumber(t *testing.T) {
	uc, store, _ := newTestUseCases(t)

	result := turn(t, uc, "call-b", "मेरा नंबर 9876543210 है")
	gt.Equal(t, result.Language, types.LangHindi)

	sess := gt.R1(store.Load(testCtx(), "call-b")).NoError(t)
	gt.Equal(t, sess.Slots.ContactNumber, "9876543210")
	gt.Equal(t, sess.Contact, "9876543210")
	gt.Equal(t, sess.Language, types.LangHindi)
}

func TestUnclearHoldsStep(t *testing.T) {
	uc, _, cat := newTestUseCases(t)

	turn(t, uc, "call-u", "hello")
	result := turn(t, uc, "call-u", "the weather is nice")
	gt.Equal(t, result.Step, types.StepMainMenu)
	gt.Equal(t, result.Intent, types.IntentUnclear)
	gt.Equal(t, result.Reply, cat.Get(types.LangEnglish, catalog.KeyNotUnderstood))
}

func TestSkipAheadWithVolunteeredSlots(t *testing.T) {
	uc, store, _ := newTestUseCases(t)

	turn(t, uc, "call-s", "hello")
	result := turn(t, uc, "call-s", "book a haircut tomorrow, my name is Ramesh")
	// name, service and date arrived together; only time is missing
	gt.Equal(t, result.Step, types.StepBookingTime)

	sess := gt.R1(store.Load(testCtx(), "call-s")).NoError(t)
	gt.Equal(t, sess.Slots.Name, "Ramesh")
	gt.Equal(t, sess.Slots.ServiceName, "haircut")
	gt.Equal(t, sess.Slots.PreferredDate, "2025-06-12")

	result = turn(t, uc, "call-s", "5 pm please")
	gt.Equal(t, result.Status, types.SessionStatusCompleted)
	gt.Equal(t, result.Step, types.StepCompleted)
	gt.S(t, result.Reply).Contains("Ramesh")
	gt.S(t, result.Reply).Contains("haircut")
}

func TestFullBookingFlow(t *testing.T) {
	uc, store, _ := newTestUseCases(t)
	id := types.SessionID("call-flow")

	turn(t, uc, id, "hello")
	turn(t, uc, id, "I want to book an appointment")
	turn(t, uc, id, "my name is Priya Sharma")
	turn(t, uc, id, "a facial please")
	turn(t, uc, id, "next sunday")
	result := turn(t, uc, id, "at 11 am")

	gt.Equal(t, result.Status, types.SessionStatusCompleted)

	sess := gt.R1(store.Load(testCtx(), id)).NoError(t)
	gt.Equal(t, sess.Slots.Name, "Priya Sharma")
	gt.Equal(t, sess.Slots.ServiceName, "facial")
	gt.Equal(t, sess.Slots.PreferredDate, "2025-06-15")
	gt.Equal(t, sess.Slots.PreferredTime, "11:00")
	gt.B(t, sess.EndedAt.IsZero()).False()
	// user + assistant entries per turn
	gt.A(t, sess.Transcript).Length(12)
}

func TestTrackingFlow(t *testing.T) {
	uc, _, _ := newTestUseCases(t)

	turn(t, uc, "call-t", "track my order")
	result := turn(t, uc, "call-t", "order number ORD-12345678")
	gt.Equal(t, result.Step, types.StepCompleted)
	gt.Equal(t, result.Status, types.SessionStatusCompleted)
	gt.S(t, result.Reply).Contains("ORD-12345678")

	// Order number volunteered with the tracking request completes in one turn
	uc2, _, _ := newTestUseCases(t)
	result = turn(t, uc2, "call-t2", "track order number ORD-12345678")
	gt.Equal(t, result.Status, types.SessionStatusCompleted)
}

func TestLanguageSwitchMidSession(t *testing.T) {
	uc, _, cat := newTestUseCases(t)

	result := turn(t, uc, "call-l", "hello")
	gt.Equal(t, result.Language, types.LangEnglish)

	result = turn(t, uc, "call-l", "मुझे अपॉइंटमेंट चाहिए")
	gt.Equal(t, result.Language, types.LangHindi)
	gt.Equal(t, result.Step, types.StepBookingName)
	gt.Equal(t, result.Reply, cat.Get(types.LangHindi, catalog.KeyAskName))
}

func TestResolverTimeoutFallsBack(t *testing.T) {
	slow := &slowResolver{delay: time.Second}
	uc, _, cat := newTestUseCases(t, usecase.WithResolver(
		intent.New(slow, intent.WithTimeout(10*time.Millisecond))))

	turn(t, uc, "call-d", "hello")
	result := turn(t, uc, "call-d", "what services do you offer")
	gt.Equal(t, result.Intent, types.IntentServiceInquiry)
	gt.Equal(t, result.Reply, cat.Get(types.LangEnglish, catalog.KeyServices))
}

func TestTurnOnClosedSession(t *testing.T) {
	uc, store, _ := newTestUseCases(t)

	ctx := testCtx()
	gt.R1(store.Update(ctx, "call-x", func(ctx context.Context, s *session.Session) error {
		s.Complete(ctx)
		return nil
	})).NoError(t)

	_, err := uc.HandleTurn(ctx, usecase.TurnInput{SessionID: "call-x", Utterance: "hello"})
	gt.Error(t, err)
	gt.B(t, errors.Is(err, errs.ErrSessionClosed)).True()
}

func TestStepNeverRegresses(t *testing.T) {
	uc, store, _ := newTestUseCases(t)
	id := types.SessionID("call-mono")

	order := map[types.Step]int{
		types.StepWelcome: 0, types.StepLanguageSelect: 1, types.StepMainMenu: 2,
		types.StepBookingName: 3, types.StepBookingService: 4, types.StepBookingDate: 5,
		types.StepBookingTime: 6, types.StepBookingConfirm: 7, types.StepCompleted: 8,
	}

	utterances := []string{
		"hello", "blah blah", "book an appointment", "ummm", "my name is Anil",
		"waxing", "tomorrow", "evening",
	}

	prev := 0
	for _, u := range utterances {
		turn(t, uc, id, u)
		sess := gt.R1(store.Load(testCtx(), id)).NoError(t)
		cur := order[sess.Step]
		gt.B(t, cur >= prev).True()
		prev = cur
	}
}

type slowResolver struct {
	delay time.Duration
}

func (x *slowResolver) Resolve(ctx context.Context, query interfaces.IntentQuery) (*interfaces.IntentResult, error) {
	select {
	case <-time.After(x.delay):
		return nil, goerr.New("too slow")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
