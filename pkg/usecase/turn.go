package usecase

import (
	"context"
	"fmt"

	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/domain/model/errs"
	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/service/catalog"
	"github.com/deskline-lab/vaani/pkg/service/extract"
	"github.com/deskline-lab/vaani/pkg/service/langdetect"
	"github.com/deskline-lab/vaani/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// TurnInput is one inbound user utterance addressed to a session.
type TurnInput struct {
	SessionID types.SessionID `json:"session_id"`
	Contact   string          `json:"contact"`
	Utterance string          `json:"utterance"`
}

// TurnResult is the computed outcome of a turn. It is valid even when the
// persistence write failed; the caller may deliver Reply and retry on the
// next turn.
type TurnResult struct {
	SessionID types.SessionID     `json:"session_id"`
	Reply     string              `json:"reply"`
	Language  types.Language      `json:"language"`
	Step      types.Step          `json:"step"`
	Status    types.SessionStatus `json:"status"`
	Intent    types.Intent        `json:"intent"`
}

// HandleTurn runs the per-turn algorithm: classify language, merge extracted
// slots, resolve intent, advance the state machine, compose the reply, append
// to the transcript, and persist. Turns for the same session are serialized
// by the session store; turns for different sessions run concurrently.
func (x *UseCases) HandleTurn(ctx context.Context, input TurnInput) (*TurnResult, error) {
	if input.SessionID == "" {
		return nil, goerr.New("session id is required", goerr.T(errs.TagValidation))
	}

	var result *TurnResult
	_, err := x.store.Update(ctx, input.SessionID, func(ctx context.Context, sess *session.Session) error {
		if sess.Status.IsTerminal() {
			return goerr.Wrap(errs.ErrSessionClosed, "turn on closed session",
				goerr.V("session_id", sess.ID),
				goerr.V("status", sess.Status),
				goerr.T(errs.TagSessionClosed))
		}

		result = x.processTurn(ctx, sess, input)
		return nil
	})
	if err != nil {
		// The reply was computed before the write failed; surface both so the
		// caller can still answer and retry persistence on the next turn.
		if result != nil {
			return result, goerr.Wrap(err, "turn computed but not persisted",
				goerr.V("session_id", input.SessionID))
		}
		return nil, err
	}

	return result, nil
}

// processTurn mutates the loaded session in place and returns the computed
// result. It never fails: classification and extraction are total, and the
// resolver degrades to rule-based matching.
func (x *UseCases) processTurn(ctx context.Context, sess *session.Session, input TurnInput) *TurnResult {
	logger := logging.From(ctx).With("session_id", sess.ID)

	if sess.Contact == "" && input.Contact != "" {
		sess.Contact = input.Contact
	}

	// 1. Language can change mid-session; the latest utterance wins.
	lang := langdetect.Detect(input.Utterance)
	if lang != sess.Language {
		logger.Debug("session language switched", "from", sess.Language, "to", lang)
		sess.Language = lang
	}

	// 2. Merge whatever the utterance volunteered.
	extracted := extract.Extract(ctx, input.Utterance, lang)
	sess.Slots.Merge(extracted)
	if sess.Contact == "" && extracted.ContactNumber != "" {
		sess.Contact = extracted.ContactNumber
	}

	// 3. Intent resolution with the bounded transcript suffix as context.
	// The resolver has its own fallback chain; a residual error degrades to
	// unclear rather than failing the turn.
	res, err := x.resolver.Resolve(ctx, interfaces.IntentQuery{
		Utterance: input.Utterance,
		Language:  lang,
		Context:   sess.LastN(x.contextWindow),
	})
	if err != nil || res == nil {
		logger.Warn("intent resolution failed, treating as unclear", logging.ErrAttr(err))
		res = &interfaces.IntentResult{Intent: types.IntentUnclear}
	}

	// 4+5. Advance the state machine and compose the reply.
	reply := x.advance(ctx, sess, res.Intent, extracted)

	// 6. Both halves of the turn go to the transcript.
	sess.Append(session.NewEntry(ctx, types.SpeakerUser, input.Utterance, lang))
	sess.Append(session.NewEntry(ctx, types.SpeakerAssistant, reply, sess.Language))

	return &TurnResult{
		SessionID: sess.ID,
		Reply:     reply,
		Language:  sess.Language,
		Step:      sess.Step,
		Status:    sess.Status,
		Intent:    res.Intent,
	}
}

// advance computes the next step and reply text. Slot progress outranks the
// intent label inside the booking and tracking branches: an answer like
// "Ramesh" resolves as unclear by keywords but still fills the asked slot.
func (x *UseCases) advance(ctx context.Context, sess *session.Session, resolved types.Intent, extracted session.Slots) string {
	switch {
	case sess.Step.IsBooking():
		return x.advanceBooking(ctx, sess, resolved, extracted)
	case sess.Step.IsTracking():
		return x.advanceTracking(ctx, sess, resolved, extracted)
	default:
		return x.advanceMenu(ctx, sess, resolved, extracted)
	}
}

// advanceMenu handles welcome, language_select, and main_menu.
func (x *UseCases) advanceMenu(ctx context.Context, sess *session.Session, resolved types.Intent, extracted session.Slots) string {
	// Volunteered booking data implies booking even without the keyword.
	if resolved == types.IntentUnclear && hasBookingData(extracted) {
		resolved = types.IntentBookingStart
	}

	if resolved == types.IntentUnclear {
		return x.catalog.Get(sess.Language, catalog.KeyNotUnderstood)
	}

	atWelcome := sess.Step == types.StepWelcome || sess.Step == types.StepLanguageSelect
	if atWelcome {
		// Any understood utterance moves the session off the greeting step.
		x.mustAdvance(ctx, sess, types.StepMainMenu)
	}

	switch resolved {
	case types.IntentBookingStart:
		return x.enterBooking(ctx, sess)
	case types.IntentTrackingStart:
		return x.enterTracking(ctx, sess, extracted)
	case types.IntentGreeting:
		if atWelcome {
			return x.catalog.Get(sess.Language, catalog.KeyWelcome)
		}
		return x.catalog.Get(sess.Language, catalog.KeyMainMenu)
	case types.IntentServiceInquiry:
		return x.catalog.Get(sess.Language, catalog.KeyServices)
	case types.IntentPricingInquiry:
		return x.catalog.Get(sess.Language, catalog.KeyPricing)
	case types.IntentGoodbye:
		return x.catalog.Get(sess.Language, catalog.KeyGoodbye)
	default:
		return x.catalog.Get(sess.Language, catalog.KeyNotUnderstood)
	}
}

func (x *UseCases) advanceBooking(ctx context.Context, sess *session.Session, resolved types.Intent, extracted session.Slots) string {
	target := nextBookingStep(sess.Slots)

	if target == types.StepBookingConfirm {
		x.mustAdvance(ctx, sess, types.StepBookingConfirm)
		reply := x.confirmReply(sess)
		sess.Complete(ctx)
		return reply
	}

	if target != sess.Step {
		// Skip ahead to the first slot still missing; filled slots are never
		// asked again.
		x.mustAdvance(ctx, sess, target)
		return x.catalog.ForStep(sess.Language, target)
	}

	// No progress on the asked slot.
	if resolved == types.IntentGoodbye {
		return x.catalog.Get(sess.Language, catalog.KeyGoodbye)
	}
	if extracted.Empty() {
		return x.catalog.Get(sess.Language, catalog.KeyNotUnderstood)
	}
	return x.catalog.ForStep(sess.Language, sess.Step)
}

func (x *UseCases) advanceTracking(ctx context.Context, sess *session.Session, resolved types.Intent, extracted session.Slots) string {
	if sess.Slots.OrderNumber != "" {
		x.mustAdvance(ctx, sess, types.StepTrackingLookup)
		reply := fmt.Sprintf(x.catalog.Get(sess.Language, catalog.KeyOrderFound), sess.Slots.OrderNumber)
		sess.Complete(ctx)
		return reply
	}

	if resolved == types.IntentUnclear && extracted.Empty() {
		return x.catalog.Get(sess.Language, catalog.KeyNotUnderstood)
	}
	return x.catalog.Get(sess.Language, catalog.KeyAskOrderNumber)
}

// enterBooking moves into the booking branch at the first unfilled slot; a
// fully volunteered booking confirms immediately.
func (x *UseCases) enterBooking(ctx context.Context, sess *session.Session) string {
	target := nextBookingStep(sess.Slots)
	x.mustAdvance(ctx, sess, target)

	if target == types.StepBookingConfirm {
		reply := x.confirmReply(sess)
		sess.Complete(ctx)
		return reply
	}
	return x.catalog.ForStep(sess.Language, target)
}

func (x *UseCases) enterTracking(ctx context.Context, sess *session.Session, extracted session.Slots) string {
	x.mustAdvance(ctx, sess, types.StepTrackingStart)
	return x.advanceTracking(ctx, sess, types.IntentTrackingStart, extracted)
}

func (x *UseCases) confirmReply(sess *session.Session) string {
	return fmt.Sprintf(x.catalog.Get(sess.Language, catalog.KeyConfirm),
		sess.Slots.Name, sess.Slots.ServiceName, sess.Slots.PreferredDate, sess.Slots.PreferredTime)
}

// mustAdvance applies a transition the engine itself computed. The adjacency
// check only fails on a programming error, so it is logged and dropped rather
// than failing the caller's turn.
func (x *UseCases) mustAdvance(ctx context.Context, sess *session.Session, next types.Step) {
	if err := sess.AdvanceTo(next); err != nil {
		errs.Handle(ctx, err)
	}
}

// nextBookingStep picks the first unfilled slot in the fixed order
// name -> service -> date -> time, or confirm when all are present.
func nextBookingStep(slots session.Slots) types.Step {
	switch {
	case slots.Name == "":
		return types.StepBookingName
	case slots.ServiceName == "":
		return types.StepBookingService
	case slots.PreferredDate == "":
		return types.StepBookingDate
	case slots.PreferredTime == "":
		return types.StepBookingTime
	default:
		return types.StepBookingConfirm
	}
}

func hasBookingData(slots session.Slots) bool {
	return slots.Name != "" || slots.ServiceName != "" || slots.PreferredDate != "" || slots.PreferredTime != ""
}
