package session

// Slots holds the structured booking fields extracted incrementally from
// user utterances. Each field is independently present (non-empty) or absent;
// a fixed struct rather than a dynamic map so adding a field is a compile-time
// change.
type Slots struct {
	Name          string `firestore:"name,omitempty" json:"name,omitempty"`
	ContactNumber string `firestore:"contact_number,omitempty" json:"contact_number,omitempty"`
	Email         string `firestore:"email,omitempty" json:"email,omitempty"`
	ServiceName   string `firestore:"service_name,omitempty" json:"service_name,omitempty"`
	PreferredDate string `firestore:"preferred_date,omitempty" json:"preferred_date,omitempty"`
	PreferredTime string `firestore:"preferred_time,omitempty" json:"preferred_time,omitempty"`
	OrderNumber   string `firestore:"order_number,omitempty" json:"order_number,omitempty"`
}

// Merge overlays non-empty fields from src onto s. An empty (unextracted)
// field never clears a stored value; a newly extracted value overwrites the
// old one (most recent utterance wins).
func (s *Slots) Merge(src Slots) {
	if src.Name != "" {
		s.Name = src.Name
	}
	if src.ContactNumber != "" {
		s.ContactNumber = src.ContactNumber
	}
	if src.Email != "" {
		s.Email = src.Email
	}
	if src.ServiceName != "" {
		s.ServiceName = src.ServiceName
	}
	if src.PreferredDate != "" {
		s.PreferredDate = src.PreferredDate
	}
	if src.PreferredTime != "" {
		s.PreferredTime = src.PreferredTime
	}
	if src.OrderNumber != "" {
		s.OrderNumber = src.OrderNumber
	}
}

// BookingComplete reports whether all fields required to confirm a booking
// are present.
func (s Slots) BookingComplete() bool {
	return s.Name != "" && s.ServiceName != "" && s.PreferredDate != "" && s.PreferredTime != ""
}

// Empty reports whether no field has been extracted yet.
func (s Slots) Empty() bool {
	return s == Slots{}
}
