package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eslsoft/charm/internal/entity"
)

func TestApplyUserData(t *testing.T) {
	lines := splitFileLines("abcdefghijklmnopqrstuvwxyz\nversion,v1-2\nsave,remember this\ngreeting,Hello, friend\n")
	prefs := &entity.Preferences{}

	applyUserData(lines, prefs, 42)

	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", string(prefs.Alphabet))
	assert.Equal(t, "v1-2", prefs.BaseVersion)
	assert.Equal(t, "v142-wyz", prefs.Version)
	assert.Equal(t, "remember this", prefs.SavePhrase)
	assert.Equal(t, "Hello, friend", prefs.Greeting)
}

func TestApplyUserData_CommaJoinedAlphabet(t *testing.T) {
	prefs := &entity.Preferences{}
	applyUserData([]string{"a,b,c,d,e\n", "v,x9-0\n"}, prefs, 2)

	assert.Equal(t, "abcde", string(prefs.Alphabet))
	assert.Equal(t, "x92-bde", prefs.Version)
}

func TestApplyUserData_MissingFieldsKeepDefaults(t *testing.T) {
	prefs := &entity.Preferences{SavePhrase: "keep", Greeting: "hi"}
	applyUserData([]string{"\n", "version\n", "save\n"}, prefs, 0)

	assert.Empty(t, prefs.Alphabet)
	assert.Empty(t, prefs.BaseVersion)
	assert.Empty(t, prefs.Version)
	assert.Equal(t, "keep", prefs.SavePhrase)
	assert.Equal(t, "hi", prefs.Greeting)
}

func TestMergeUserData(t *testing.T) {
	lines := []string{"abc\n", "version,v1-2\n", "save,old\n", "greeting,hello\n"}

	out := mergeUserData(lines, &entity.Preferences{SavePhrase: "new"})
	assert.Equal(t, []string{"abc\n", "version,v1-2\n", "save,new\n", "greeting,hello\n"}, out)
	assert.Equal(t, "save,old\n", lines[2], "input must not be mutated")

	out = mergeUserData(lines, &entity.Preferences{})
	assert.Equal(t, lines, out)
}

func TestMergeUserData_ShortFile(t *testing.T) {
	prefs := &entity.Preferences{SavePhrase: "new", Greeting: "hey"}

	assert.Empty(t, mergeUserData(nil, prefs))

	lines := []string{"abc\n", "version,v1-2\n", "save,old\n"}
	assert.Equal(t, []string{"abc\n", "version,v1-2\n", "save,new\n"}, mergeUserData(lines, prefs))
}

func TestSplitFileLines(t *testing.T) {
	assert.Nil(t, splitFileLines(""))
	assert.Equal(t, []string{"a\n", "b"}, splitFileLines("a\nb"))
	assert.Equal(t, []string{"a\n", "\n"}, splitFileLines("a\n\n"))
}
