package dialogue

// State is the position of the engine in the learning conversation.
type State int

const (
	// StateIdle scans each line for unknown words.
	StateIdle State = iota
	// StateAwaitingPart waits for the user to name the part of speech of an unknown word.
	StateAwaitingPart
	// StateAwaitingConfirmation waits for a yes/no on the offered classification.
	StateAwaitingConfirmation
	// StateAwaitingSavePhrase takes the next line verbatim as the save phrase.
	StateAwaitingSavePhrase
	// StateAwaitingDefinition takes the next line as the definition of a known word.
	StateAwaitingDefinition
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPart:
		return "awaiting_part"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateAwaitingSavePhrase:
		return "awaiting_save_phrase"
	case StateAwaitingDefinition:
		return "awaiting_definition"
	default:
		return "unknown"
	}
}
