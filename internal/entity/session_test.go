package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferences_DeriveVersion(t *testing.T) {
	cases := []struct {
		name     string
		alphabet string
		base     string
		count    int
		want     string
	}{
		{"full alphabet", "abcdefghijklmnopqrstuvwxyz", "v1-2", 42, "v142-wyz"},
		{"short alphabet skips negative positions", "abc", "v1-2", 3, "v13-bc"},
		{"single rune alphabet", "z", "rel99", 0, "rel0-z"},
		{"empty alphabet", "", "v1-2", 7, "v17-"},
		{"base shorter than two", "abcd", "v", 1, "1-acd"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Preferences{Alphabet: []rune(c.alphabet), BaseVersion: c.base}
			assert.Equal(t, c.want, p.DeriveVersion(c.count))
		})
	}
}

func TestSession_HasSavePhrase(t *testing.T) {
	s := NewSession()
	assert.False(t, s.HasSavePhrase())
	s.Prefs.SavePhrase = "remember"
	assert.True(t, s.HasSavePhrase())
	assert.Equal(t, 0, s.Words.Len())
}
