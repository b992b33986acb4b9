package purchase

// State is where a viewing session sits in the purchase flow.
type State string

const (
	StateBrowsing          State = "BROWSING"
	StateCollectingContact State = "COLLECTING_CONTACT"
	StateAwaitingPayment   State = "AWAITING_PAYMENT"
	StateSucceeded         State = "SUCCEEDED"
	StateUnavailable       State = "UNAVAILABLE"
)

func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether no transition may leave the state.
func (s State) IsTerminal() bool {
	return s == StateUnavailable
}

func (s State) IsValid() bool {
	switch s {
	case StateBrowsing, StateCollectingContact, StateAwaitingPayment, StateSucceeded, StateUnavailable:
		return true
	}
	return false
}
