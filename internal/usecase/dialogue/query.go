package dialogue

// Mode selects how a query is rendered.
type Mode int

const (
	// ModeStatement renders the subject alone.
	ModeStatement Mode = iota
	// ModeComparison renders "<subject> is <value>?".
	ModeComparison
	// ModeDirect renders "<subject> <value>?".
	ModeDirect
	// ModeValue renders "<subject> (<value>)".
	ModeValue
)

// Query is one message posted to the user.
type Query struct {
	Subject string
	Value   string
	Mode    Mode
	// Exclaim appends "!" after the mode is applied.
	Exclaim bool
}

func (q Query) String() string {
	var message string
	switch q.Mode {
	case ModeComparison:
		message = q.Subject + " is " + q.Value + "?"
	case ModeDirect:
		message = q.Subject + " " + q.Value + "?"
	case ModeValue:
		message = q.Subject + " (" + q.Value + ")"
	default:
		message = q.Subject
	}
	if q.Exclaim {
		message += "!"
	}
	return message
}

func statement(subject string) Query { return Query{Subject: subject} }

func comparison(subject, value string) Query {
	return Query{Subject: subject, Value: value, Mode: ModeComparison}
}

func direct(subject, value string) Query {
	return Query{Subject: subject, Value: value, Mode: ModeDirect}
}

func valued(subject, value string) Query {
	return Query{Subject: subject, Value: value, Mode: ModeValue}
}
