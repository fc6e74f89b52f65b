package repository

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/charm/internal/entity"
	"github.com/eslsoft/charm/internal/usecase/backup"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func bufioReader(content string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(content))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestLoad_MissingFilesAreCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	repo := NewSessionRepository(dir, nil)
	session := entity.NewSession()

	require.NoError(t, repo.Load(context.Background(), session))

	assert.Equal(t, 0, session.Words.Len())
	assert.Empty(t, session.Prefs.Version)
	assert.Equal(t, "", readFile(t, filepath.Join(dir, WordsFileName)))
	assert.Equal(t, "", readFile(t, filepath.Join(dir, UserDataFileName)))
}

func TestLoad_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, WordsFileName), "cat,1,,\nbroken line without separator\ndog,1,a loyal animal,\n\nrun,3 1,,\n")

	session := entity.NewSession()
	require.NoError(t, NewSessionRepository(dir, nil).Load(context.Background(), session))

	require.Equal(t, 3, session.Words.Len())
	dog, ok := session.Words.Lookup("dog")
	require.True(t, ok)
	assert.Equal(t, "a loyal animal", dog.Definition)
	run, ok := session.Words.Lookup("run")
	require.True(t, ok)
	assert.Equal(t, []int{3, 1}, run.PartIndices())
}

func TestLoad_SkipsOversizedLines(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("a", maxWordLineBytes+1) + ",1,,"
	writeFile(t, filepath.Join(dir, WordsFileName), "cat,1,,\n"+long+"\ndog,1,,\n")

	session := entity.NewSession()
	require.NoError(t, NewSessionRepository(dir, nil).Load(context.Background(), session))

	assert.Equal(t, 2, session.Words.Len())
	assert.True(t, session.Words.Contains("cat"))
	assert.True(t, session.Words.Contains("dog"))
}

func TestReadRecord(t *testing.T) {
	br := bufioReader("short\n" + strings.Repeat("x", 40) + "\r\nlast")

	line, oversized, err := readRecord(br, 16)
	require.NoError(t, err)
	assert.Equal(t, "short", line)
	assert.False(t, oversized)

	line, oversized, err = readRecord(br, 16)
	require.NoError(t, err)
	assert.Empty(t, line)
	assert.True(t, oversized)

	line, oversized, err = readRecord(br, 16)
	require.NoError(t, err)
	assert.Equal(t, "last", line)
	assert.False(t, oversized)

	_, _, err = readRecord(br, 16)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLoad_VersionUsesWordCount(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, WordsFileName), "a,9,,\nb,1,,\n")
	writeFile(t, filepath.Join(dir, UserDataFileName), "abcdefghijklmnopqrstuvwxyz\nversion,v1-2\nsave,keep it\ngreeting,Hi there\n")

	session := entity.NewSession()
	require.NoError(t, NewSessionRepository(dir, nil).Load(context.Background(), session))

	assert.Equal(t, "v12-wyz", session.Prefs.Version)
	assert.Equal(t, "keep it", session.Prefs.SavePhrase)
	assert.Equal(t, "Hi there", session.Prefs.Greeting)
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewSessionRepository(dir, nil)
	ctx := context.Background()

	src := entity.NewSession()
	for _, tc := range []struct {
		text  string
		parts []entity.PartOfSpeech
		defn  string
	}{
		{"cat", []entity.PartOfSpeech{entity.PartNoun}, ""},
		{"Light", []entity.PartOfSpeech{entity.PartAdjective, entity.PartNoun}, "not heavy"},
		{"quickly", []entity.PartOfSpeech{entity.PartAdverb}, "at speed, fast"},
	} {
		w, err := entity.NewWord(tc.text, tc.parts...)
		require.NoError(t, err)
		w.Define(tc.defn)
		src.Words.Add(w)
	}
	require.NoError(t, repo.Save(ctx, src))

	dst := entity.NewSession()
	require.NoError(t, repo.Load(ctx, dst))
	require.Equal(t, src.Words.Len(), dst.Words.Len())
	for _, want := range src.Words.Words() {
		got, ok := dst.Words.Lookup(want.Text)
		require.True(t, ok, want.Text)
		assert.Equal(t, want.Text, got.Text)
		assert.Equal(t, want.Parts, got.Parts)
		assert.Equal(t, want.Definition, got.Definition)
	}
}

func TestSave_Idempotent(t *testing.T) {
	dir := t.TempDir()
	repo := NewSessionRepository(dir, nil)
	ctx := context.Background()

	session := entity.NewSession()
	for _, text := range []string{"zebra", "apple", "mango"} {
		w, err := entity.NewWord(text, entity.PartNoun)
		require.NoError(t, err)
		session.Words.Add(w)
	}

	require.NoError(t, repo.Save(ctx, session))
	first := readFile(t, filepath.Join(dir, WordsFileName))
	require.NoError(t, repo.Save(ctx, session))
	second := readFile(t, filepath.Join(dir, WordsFileName))

	assert.Equal(t, "zebra,1,,\napple,1,,\nmango,1,,\n", first)
	assert.Equal(t, first, second)
}

func TestSave_NeverBlanksStoredSavePhrase(t *testing.T) {
	dir := t.TempDir()
	original := "abc\nversion,v1-2\nsave,remember\ngreeting,hello\n"
	writeFile(t, filepath.Join(dir, UserDataFileName), original)
	repo := NewSessionRepository(dir, nil)
	ctx := context.Background()

	session := entity.NewSession()
	require.NoError(t, repo.Load(ctx, session))
	require.Equal(t, "remember", session.Prefs.SavePhrase)

	session.Prefs.SavePhrase = ""
	session.Prefs.Greeting = ""
	require.NoError(t, repo.Save(ctx, session))

	assert.Equal(t, original, readFile(t, filepath.Join(dir, UserDataFileName)))
}

func TestSave_OverwritesSavePhraseAndGreeting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, UserDataFileName), "abc\nversion,v1-2\nsave,old\ngreeting,hello\n")

	session := entity.NewSession()
	session.Prefs.SavePhrase = "keep this"
	session.Prefs.Greeting = "welcome back"
	require.NoError(t, NewSessionRepository(dir, nil).Save(context.Background(), session))

	assert.Equal(t, "abc\nversion,v1-2\nsave,keep this\ngreeting,welcome back\n",
		readFile(t, filepath.Join(dir, UserDataFileName)))
}

func TestSave_ShortUserDataDoesNotFail(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, UserDataFileName), "abc\n")

	session := entity.NewSession()
	session.Prefs.SavePhrase = "keep"
	require.NoError(t, NewSessionRepository(dir, nil).Save(context.Background(), session))

	assert.Equal(t, "abc\n", readFile(t, filepath.Join(dir, UserDataFileName)))
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewSessionRepository(t.TempDir(), nil).Load(ctx, entity.NewSession())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRestore_WritesCompleteUserData(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	repo := NewSessionRepository(dir, nil)
	ctx := context.Background()

	src := entity.NewSession()
	cat, err := entity.NewWord("cat", entity.PartNoun)
	require.NoError(t, err)
	src.Words.Add(cat)
	src.Prefs.Alphabet = []rune("abcdefghijklmnopqrstuvwxyz")
	src.Prefs.BaseVersion = "v1-2"
	src.Prefs.SavePhrase = "remember"
	src.Prefs.Greeting = "hello"
	require.NoError(t, repo.Restore(ctx, src))

	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz\nversion,v1-2\nsave,remember\ngreeting,hello\n",
		readFile(t, filepath.Join(dir, UserDataFileName)))

	dst := entity.NewSession()
	require.NoError(t, repo.Load(ctx, dst))
	assert.Equal(t, "remember", dst.Prefs.SavePhrase)
	assert.Equal(t, "hello", dst.Prefs.Greeting)
	assert.Equal(t, "v11-wyz", dst.Prefs.Version)
}

func TestRestore_KeepsExistingLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, UserDataFileName), "abc")
	repo := NewSessionRepository(dir, nil)
	ctx := context.Background()

	src := entity.NewSession()
	src.Prefs.SavePhrase = "keep"
	require.NoError(t, repo.Restore(ctx, src))
	assert.Equal(t, "abc\nversion\nsave,keep\ngreeting\n", readFile(t, filepath.Join(dir, UserDataFileName)))

	dst := entity.NewSession()
	require.NoError(t, repo.Load(ctx, dst))
	assert.Equal(t, "abc", string(dst.Prefs.Alphabet))
	assert.Equal(t, "keep", dst.Prefs.SavePhrase)
	assert.Empty(t, dst.Prefs.Greeting)
	assert.Empty(t, dst.Prefs.BaseVersion)
	assert.Empty(t, dst.Prefs.Version)
}

func TestRestore_ImportedPreferencesSurviveReload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	repo := NewSessionRepository(dir, nil)
	ctx := context.Background()

	session := entity.NewSession()
	require.NoError(t, repo.Load(ctx, session))

	input := strings.Join([]string{
		`{"type":"meta","version":1,"preferences":{"alphabet":"uvwxyz","base_version":"v1-2","save_phrase":"remember","greeting":"hi"}}`,
		`{"type":"word","payload":{"text":"cat","parts":["noun"],"definition":"a pet, furry"}}`,
	}, "\n")
	_, err := backup.NewService().Import(ctx, strings.NewReader(input), session)
	require.NoError(t, err)
	require.NoError(t, repo.Restore(ctx, session))

	reloaded := entity.NewSession()
	require.NoError(t, repo.Load(ctx, reloaded))
	assert.Equal(t, 1, reloaded.Words.Len())
	cat, ok := reloaded.Words.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, "a pet, furry", cat.Definition)
	assert.Equal(t, "uvwxyz", string(reloaded.Prefs.Alphabet))
	assert.Equal(t, "remember", reloaded.Prefs.SavePhrase)
	assert.Equal(t, "hi", reloaded.Prefs.Greeting)
	assert.Equal(t, "v11-wyz", reloaded.Prefs.Version)
}

func TestSave_LogsPreferencesWithoutLine(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, UserDataFileName), "abc\n")
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	session := entity.NewSession()
	session.Prefs.SavePhrase = "keep"
	require.NoError(t, NewSessionRepository(dir, logger).Save(context.Background(), session))

	assert.Equal(t, "abc\n", readFile(t, filepath.Join(dir, UserDataFileName)))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, []string{"save"}, entry.Data["preferences"])
}
