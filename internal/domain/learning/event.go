package learning

// EventNewInteraction is pushed by the backend after an interaction is stored.
const EventNewInteraction = "new_interaction"

// Event is an inbound push-channel message.
type Event struct {
	Type string
	// Activity is set for EventNewInteraction.
	Activity *Activity
}
