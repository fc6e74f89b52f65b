package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWord(t *testing.T, text string, parts ...PartOfSpeech) *Word {
	t.Helper()
	w, err := NewWord(text, parts...)
	require.NoError(t, err)
	return w
}

func TestWordStore_AddAndLookup(t *testing.T) {
	s := NewWordStore()
	stored, created := s.Add(mustWord(t, "Cat", PartNoun))
	require.True(t, created)
	assert.Equal(t, "Cat", stored.Text)

	for _, token := range []string{"cat", "CAT", "Cat"} {
		w, ok := s.Lookup(token)
		require.True(t, ok, token)
		assert.Same(t, stored, w)
	}
	assert.False(t, s.Contains("dog"))
	assert.Equal(t, 1, s.Len())
}

func TestWordStore_AddMergesSameKey(t *testing.T) {
	s := NewWordStore()
	first := mustWord(t, "light", PartNoun)
	first.Define("brightness")
	s.Add(first)

	second := mustWord(t, "Light", PartAdjective, PartNoun)
	second.Define("not heavy")
	second.AddKey("weather")
	stored, created := s.Add(second)

	assert.False(t, created)
	assert.Same(t, first, stored)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []int{1, 5}, stored.PartIndices())
	assert.Equal(t, "brightness", stored.Definition)
	assert.Equal(t, 1, stored.Keys["weather"])
}

func TestWordStore_WordsInInsertionOrder(t *testing.T) {
	s := NewWordStore()
	for _, text := range []string{"zebra", "apple", "mango"} {
		s.Add(mustWord(t, text, PartNoun))
	}
	s.Add(mustWord(t, "apple", PartVerb))

	var got []string
	for _, w := range s.Words() {
		got = append(got, w.Text)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, got)
}

func TestWordStore_UnknownWord(t *testing.T) {
	s := NewWordStore()
	s.Add(mustWord(t, "the", PartDeterminer))
	s.Add(mustWord(t, "cat", PartNoun))

	_, found := s.UnknownWord([]string{"The", "CAT"})
	assert.False(t, found)

	_, found = s.UnknownWord(nil)
	assert.False(t, found)

	unknown, found := s.UnknownWord([]string{"the", "dog", "cat", "sat"})
	require.True(t, found)
	assert.Equal(t, "dog", unknown)
}

func TestWordStore_Phrase(t *testing.T) {
	s := NewWordStore()
	s.Add(mustWord(t, "the", PartDeterminer))
	s.Add(mustWord(t, "cat", PartNoun))

	p, ok := s.Phrase([]string{"The", "cat"})
	require.True(t, ok)
	assert.Equal(t, "the cat", p.String())

	_, ok = s.Phrase([]string{"the", "dog"})
	assert.False(t, ok)
}
