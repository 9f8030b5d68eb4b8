package types

// Intent is the resolved purpose of a user utterance. The resolver always
// produces some intent; IntentUnclear is the floor, never a failure.
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentServiceInquiry Intent = "service_inquiry"
	IntentPricingInquiry Intent = "pricing_inquiry"
	IntentBookingStart   Intent = "booking_start"
	IntentTrackingStart  Intent = "tracking_start"
	IntentGoodbye        Intent = "goodbye"
	IntentUnclear        Intent = "unclear"
)

func (x Intent) String() string {
	return string(x)
}

// Valid reports whether the label is one the engine knows. Used to validate
// labels coming back from the remote resolver.
func (x Intent) Valid() bool {
	switch x {
	case IntentGreeting, IntentServiceInquiry, IntentPricingInquiry,
		IntentBookingStart, IntentTrackingStart, IntentGoodbye, IntentUnclear:
		return true
	}
	return false
}
