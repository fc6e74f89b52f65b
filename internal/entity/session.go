package entity

import "strconv"

// Preferences are the per-user settings persisted next to the vocabulary.
type Preferences struct {
	Alphabet    []rune
	BaseVersion string
	// Version is derived on load from BaseVersion, the word count and the
	// alphabet; it is never written back.
	Version    string
	SavePhrase string
	Greeting   string
}

// DeriveVersion computes the display version: the base tag without its last
// two characters, the word count, a hyphen, then the alphabet characters at
// len-4, len-2 and len-1. Out of range positions are skipped.
func (p *Preferences) DeriveVersion(wordCount int) string {
	base := []rune(p.BaseVersion)
	if len(base) >= 2 {
		base = base[:len(base)-2]
	} else {
		base = nil
	}
	out := string(base) + strconv.Itoa(wordCount) + "-"
	n := len(p.Alphabet)
	for _, idx := range []int{n - 4, n - 2, n - 1} {
		if idx >= 0 {
			out += string(p.Alphabet[idx])
		}
	}
	return out
}

// Session owns the state of one interactive run.
type Session struct {
	Words *WordStore
	Prefs *Preferences
}

func NewSession() *Session {
	return &Session{Words: NewWordStore(), Prefs: &Preferences{}}
}

// HasSavePhrase reports whether the user has chosen a save trigger.
func (s *Session) HasSavePhrase() bool { return s.Prefs.SavePhrase != "" }
