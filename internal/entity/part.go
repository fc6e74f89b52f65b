package entity

import (
	"strings"

	"github.com/samber/lo"
)

// PartOfSpeech is a grammatical category. The zero value is not a valid part.
type PartOfSpeech struct {
	name  string
	index int
}

var (
	PartNoun         = PartOfSpeech{name: "noun", index: 1}
	PartPronoun      = PartOfSpeech{name: "pronoun", index: 2}
	PartVerb         = PartOfSpeech{name: "verb", index: 3}
	PartAdverb       = PartOfSpeech{name: "adverb", index: 4}
	PartAdjective    = PartOfSpeech{name: "adjective", index: 5}
	PartPreposition  = PartOfSpeech{name: "preposition", index: 6}
	PartConjunction  = PartOfSpeech{name: "conjunction", index: 7}
	PartInterjection = PartOfSpeech{name: "interjection", index: 8}
	PartDeterminer   = PartOfSpeech{name: "determiner", index: 9}
)

var allParts = []PartOfSpeech{
	PartNoun,
	PartPronoun,
	PartVerb,
	PartAdverb,
	PartAdjective,
	PartPreposition,
	PartConjunction,
	PartInterjection,
	PartDeterminer,
}

// AllParts returns every part of speech ordered by index.
func AllParts() []PartOfSpeech {
	return append([]PartOfSpeech(nil), allParts...)
}

// PartNames returns the canonical names of every part of speech.
func PartNames() []string {
	return lo.Map(allParts, func(p PartOfSpeech, _ int) string { return p.name })
}

// PartByName looks up a part by its canonical name, ignoring case and surrounding space.
func PartByName(name string) (PartOfSpeech, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PartOfSpeech{}, false
	}
	return lo.Find(allParts, func(p PartOfSpeech) bool { return p.name == name })
}

// PartByIndex looks up a part by its 1-based on-disk index.
func PartByIndex(index int) (PartOfSpeech, bool) {
	if index < 1 || index > len(allParts) {
		return PartOfSpeech{}, false
	}
	return allParts[index-1], true
}

func (p PartOfSpeech) Name() string { return p.name }

func (p PartOfSpeech) Index() int { return p.index }

func (p PartOfSpeech) String() string { return p.name }

// Valid reports whether p is one of the registered parts.
func (p PartOfSpeech) Valid() bool {
	known, ok := PartByIndex(p.index)
	return ok && known == p
}
