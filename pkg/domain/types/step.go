package types

// Step is the position of a session in the dialog state machine.
type Step string

const (
	StepWelcome        Step = "welcome"
	StepLanguageSelect Step = "language_select"
	StepMainMenu       Step = "main_menu"
	StepBookingName    Step = "booking_name"
	StepBookingService Step = "booking_service"
	StepBookingDate    Step = "booking_date"
	StepBookingTime    Step = "booking_time"
	StepBookingConfirm Step = "booking_confirm"
	StepTrackingStart  Step = "tracking_start"
	StepTrackingLookup Step = "tracking_lookup"
	StepCompleted      Step = "completed"
)

func (x Step) String() string {
	return string(x)
}

// stepAdjacency lists the allowed forward transitions for each step. The
// booking branch allows skipping ahead when slots arrive out of order, so
// each booking step links to every later booking step.
var stepAdjacency = map[Step][]Step{
	StepWelcome:        {StepLanguageSelect, StepMainMenu},
	StepLanguageSelect: {StepMainMenu},
	StepMainMenu:       {StepBookingName, StepBookingService, StepBookingDate, StepBookingTime, StepBookingConfirm, StepTrackingStart},
	StepBookingName:    {StepBookingService, StepBookingDate, StepBookingTime, StepBookingConfirm},
	StepBookingService: {StepBookingDate, StepBookingTime, StepBookingConfirm},
	StepBookingDate:    {StepBookingTime, StepBookingConfirm},
	StepBookingTime:    {StepBookingConfirm},
	StepBookingConfirm: {StepCompleted},
	StepTrackingStart:  {StepTrackingLookup},
	StepTrackingLookup: {StepCompleted},
}

// CanAdvanceTo reports whether the state machine may move from x to next.
// Staying on the same step is always allowed (informational and unclear
// intents hold position).
func (x Step) CanAdvanceTo(next Step) bool {
	if x == next {
		return true
	}
	for _, s := range stepAdjacency[x] {
		if s == next {
			return true
		}
	}
	return false
}

// IsBooking reports whether the step belongs to the booking branch.
func (x Step) IsBooking() bool {
	switch x {
	case StepBookingName, StepBookingService, StepBookingDate, StepBookingTime, StepBookingConfirm:
		return true
	}
	return false
}

// IsTracking reports whether the step belongs to the order tracking branch.
func (x Step) IsTracking() bool {
	return x == StepTrackingStart || x == StepTrackingLookup
}
