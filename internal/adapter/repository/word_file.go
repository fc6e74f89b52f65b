package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eslsoft/charm/internal/entity"
)

// FormatWord renders a word as one line of the word file, without the newline:
//
//	WORD,PRIMARY[ EXTRA ...],DEFINITION,
func FormatWord(w *entity.Word) string {
	indices := make([]string, 0, len(w.Parts))
	for _, idx := range w.PartIndices() {
		indices = append(indices, strconv.Itoa(idx))
	}
	var b strings.Builder
	b.WriteString(w.Text)
	b.WriteByte(',')
	b.WriteString(strings.Join(indices, " "))
	b.WriteByte(',')
	b.WriteString(w.Definition)
	b.WriteByte(',')
	return b.String()
}

// ParseWordLine parses one line of the word file. Lines without a text field
// and at least one known part index yield entity.ErrMalformedRecord.
func ParseWordLine(line string) (*entity.Word, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: missing part field", entity.ErrMalformedRecord)
	}

	text := fields[0]
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: missing word text", entity.ErrMalformedRecord)
	}

	var indices []int
	for _, raw := range strings.Fields(fields[1]) {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		indices = append(indices, idx)
	}

	word, err := entity.NewWordFromIndices(text, indices...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrMalformedRecord, err)
	}

	if len(fields) > 2 {
		rest := fields[2:]
		// The format closes every record with a trailing comma; anything
		// between the part field and that comma is the definition.
		if len(rest) > 1 && rest[len(rest)-1] == "" {
			rest = rest[:len(rest)-1]
		}
		if err := word.Define(strings.Join(rest, ",")); err != nil {
			return nil, fmt.Errorf("%w: %w", entity.ErrMalformedRecord, err)
		}
	}
	return word, nil
}
