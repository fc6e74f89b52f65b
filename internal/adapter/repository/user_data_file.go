package repository

import (
	"strings"

	"github.com/eslsoft/charm/internal/entity"
)

// Line positions inside the user data file.
const (
	userDataAlphabetLine = iota
	userDataVersionLine
	userDataSaveLine
	userDataGreetingLine
)

const (
	versionLabel    = "version"
	savePhraseLabel = "save"
	greetingLabel   = "greeting"
)

// applyUserData reads the user data lines into prefs. The alphabet line is
// always read; the remaining lines are only interpreted when they carry more
// than one comma-separated field. Missing fields leave prefs untouched.
func applyUserData(lines []string, prefs *entity.Preferences, wordCount int) {
	versionSeen := false
	for i, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if i == userDataAlphabetLine {
			if alphabet := parseAlphabet(line); len(alphabet) > 0 {
				prefs.Alphabet = alphabet
			}
			continue
		}

		sections := strings.Split(line, ",")
		if len(sections) < 2 {
			continue
		}
		switch i {
		case userDataVersionLine:
			prefs.BaseVersion = sections[1]
			versionSeen = true
		case userDataSaveLine:
			prefs.SavePhrase = valueAfterLabel(line)
		case userDataGreetingLine:
			prefs.Greeting = valueAfterLabel(line)
		}
	}
	if versionSeen {
		prefs.Version = prefs.DeriveVersion(wordCount)
	}
}

// parseAlphabet accepts either one concatenated token or a comma-joined list.
func parseAlphabet(line string) []rune {
	var b strings.Builder
	for _, section := range strings.Split(line, ",") {
		b.WriteString(strings.TrimSpace(section))
	}
	return []rune(b.String())
}

// valueAfterLabel returns everything after the first comma so that values
// containing commas survive a save and reload.
func valueAfterLabel(line string) string {
	_, value, _ := strings.Cut(line, ",")
	return value
}

// mergeUserData overwrites the save phrase and greeting lines of an existing
// file. Empty values never replace a stored one, and lines that do not exist
// yet are left alone.
func mergeUserData(lines []string, prefs *entity.Preferences) []string {
	out := append([]string(nil), lines...)
	if prefs.SavePhrase != "" && len(out) > userDataSaveLine {
		out[userDataSaveLine] = savePhraseLabel + "," + prefs.SavePhrase + "\n"
	}
	if prefs.Greeting != "" && len(out) > userDataGreetingLine {
		out[userDataGreetingLine] = greetingLabel + "," + prefs.Greeting + "\n"
	}
	return out
}

// completeUserData pads a short file with every line it lacks, filled from
// prefs, then applies mergeUserData. Lines that already exist are kept.
// Empty values are written as a bare label so they read back as unset.
func completeUserData(lines []string, prefs *entity.Preferences) []string {
	out := append([]string(nil), lines...)
	if n := len(out); n > 0 && !strings.HasSuffix(out[n-1], "\n") {
		out[n-1] += "\n"
	}
	for i := len(out); i <= userDataGreetingLine; i++ {
		switch i {
		case userDataAlphabetLine:
			out = append(out, string(prefs.Alphabet)+"\n")
		case userDataVersionLine:
			out = append(out, labeledLine(versionLabel, prefs.BaseVersion))
		case userDataSaveLine:
			out = append(out, labeledLine(savePhraseLabel, prefs.SavePhrase))
		case userDataGreetingLine:
			out = append(out, labeledLine(greetingLabel, prefs.Greeting))
		}
	}
	return mergeUserData(out, prefs)
}

func labeledLine(label, value string) string {
	if value == "" {
		return label + "\n"
	}
	return label + "," + value + "\n"
}

// unwrittenPreferences names the preferences mergeUserData drops because the
// file has no line for them.
func unwrittenPreferences(lines []string, prefs *entity.Preferences) []string {
	var names []string
	if prefs.SavePhrase != "" && len(lines) <= userDataSaveLine {
		names = append(names, savePhraseLabel)
	}
	if prefs.Greeting != "" && len(lines) <= userDataGreetingLine {
		names = append(names, greetingLabel)
	}
	return names
}

// splitFileLines splits content into lines that keep their terminators.
func splitFileLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
