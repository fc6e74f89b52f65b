package entity

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Word is a learned vocabulary entry. Its identity is the literal text; lookups
// go through Key, the normalized form of that text.
type Word struct {
	Text       string         `json:"text"`
	Parts      []PartOfSpeech `json:"-"`
	Definition string         `json:"definition,omitempty"`
	// Keys counts auxiliary tags attached to the word. They are kept in memory
	// and in backups, never in the flat word file.
	Keys map[string]int `json:"keys,omitempty"`
}

// NewWord builds a word from its text and parts. Invalid parts are dropped and
// duplicates ignored; at least one valid part is required.
func NewWord(text string, parts ...PartOfSpeech) (*Word, error) {
	if err := validateWordText(text); err != nil {
		return nil, err
	}
	w := &Word{Text: text}
	for _, p := range parts {
		if p.Valid() {
			w.AddPart(p)
		}
	}
	if len(w.Parts) == 0 {
		return nil, fmt.Errorf("%q: %w", text, ErrNoValidPart)
	}
	return w, nil
}

// NewWordFromIndices builds a word from on-disk part indices.
func NewWordFromIndices(text string, indices ...int) (*Word, error) {
	parts := make([]PartOfSpeech, 0, len(indices))
	for _, idx := range indices {
		if p, ok := PartByIndex(idx); ok {
			parts = append(parts, p)
		}
	}
	return NewWord(text, parts...)
}

func validateWordText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidWordText
	}
	if strings.ContainsAny(text, ",\r\n") {
		return fmt.Errorf("%q: %w", text, ErrInvalidWordText)
	}
	return nil
}

// Key returns the store key of the word.
func (w *Word) Key() string { return NormalizeWordToken(w.Text) }

func (w *Word) String() string { return w.Text }

// TopPart returns the primary classification, the first part assigned.
func (w *Word) TopPart() (PartOfSpeech, bool) {
	if len(w.Parts) == 0 {
		return PartOfSpeech{}, false
	}
	return w.Parts[0], true
}

// AddPart assigns the word to another part of speech. It reports whether the
// part was new.
func (w *Word) AddPart(p PartOfSpeech) bool {
	if !p.Valid() || lo.Contains(w.Parts, p) {
		return false
	}
	w.Parts = append(w.Parts, p)
	return true
}

// HasPart reports whether the word has been assigned to p.
func (w *Word) HasPart(p PartOfSpeech) bool {
	return lo.Contains(w.Parts, p)
}

// PartIndices returns the on-disk indices of every part, primary first.
func (w *Word) PartIndices() []int {
	return lo.Map(w.Parts, func(p PartOfSpeech, _ int) int { return p.Index() })
}

// PartNameList returns the names of every part, primary first.
func (w *Word) PartNameList() []string {
	return lo.Map(w.Parts, func(p PartOfSpeech, _ int) string { return p.Name() })
}

// Define replaces the definition. A definition must fit on one line of the
// word file, so line breaks are rejected and the word is left unchanged.
func (w *Word) Define(defn string) error {
	if strings.ContainsAny(defn, "\r\n") {
		return fmt.Errorf("%q: %w", w.Text, ErrInvalidDefinition)
	}
	w.Definition = defn
	return nil
}

func (w *Word) HasDefinition() bool { return w.Definition != "" }

// AddKey increments the count attached to key, adding it on first use.
func (w *Word) AddKey(key string) {
	if key == "" {
		return
	}
	if w.Keys == nil {
		w.Keys = make(map[string]int)
	}
	w.Keys[key]++
}

// AddKeys adds every positive count in keys.
func (w *Word) AddKeys(keys map[string]int) {
	for k, n := range keys {
		if k == "" || n <= 0 {
			continue
		}
		if w.Keys == nil {
			w.Keys = make(map[string]int, len(keys))
		}
		w.Keys[k] += n
	}
}

// merge folds other into w: new parts are appended, key counts summed and
// the definition filled in only when w has none.
func (w *Word) merge(other *Word) {
	for _, p := range other.Parts {
		w.AddPart(p)
	}
	w.AddKeys(other.Keys)
	if !w.HasDefinition() {
		w.Definition = other.Definition
	}
}
