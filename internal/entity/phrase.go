package entity

import (
	"hash/fnv"
	"strings"

	"github.com/samber/lo"
)

// Phrase is an ordered sequence of words. It is immutable after construction.
type Phrase struct {
	words []*Word
}

func NewPhrase(words ...*Word) Phrase {
	return Phrase{words: append([]*Word(nil), words...)}
}

func (p Phrase) Words() []*Word { return append([]*Word(nil), p.words...) }

func (p Phrase) Len() int { return len(p.words) }

// Equal reports whether both phrases hold the same words in the same positions.
func (p Phrase) Equal(other Phrase) bool {
	if len(p.words) != len(other.words) {
		return false
	}
	for i := range p.words {
		if p.words[i].Key() != other.words[i].Key() {
			return false
		}
	}
	return true
}

// Hash weights each word's hash by its position. It is a convenience value for
// bucketing, not a digest; distinct phrases can share a hash.
func (p Phrase) Hash() uint64 {
	var code uint64
	for i, w := range p.words {
		h := fnv.New64a()
		_, _ = h.Write([]byte(w.Key()))
		code += h.Sum64() * uint64(i+1)
	}
	return code
}

func (p Phrase) String() string {
	return strings.Join(lo.Map(p.words, func(w *Word, _ int) string { return w.Text }), " ")
}
