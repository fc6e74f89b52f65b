package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/charm/internal/entity"
)

const formatVersion = 1

const (
	recordMeta = "meta"
	recordWord = "word"
)

// ProgressReporter receives callbacks while words are exported or imported.
type ProgressReporter interface {
	Start(section string, total int)
	Increment(section string, delta int)
	Finish(section string)
}

type noopProgress struct{}

func (noopProgress) Start(string, int)     {}
func (noopProgress) Increment(string, int) {}
func (noopProgress) Finish(string)         {}

// Service writes and reads session backups as NDJSON: one meta record
// followed by one record per word.
type Service struct {
	now func() time.Time
}

type Option func(*Service)

// WithClock overrides the timestamp source for the meta record.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(opts ...Option) *Service {
	svc := &Service{now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type options struct {
	reporter ProgressReporter
}

type ExportOption func(*options)

// WithProgressReporter registers a reporter for export or import progress.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(o *options) {
		if reporter != nil {
			o.reporter = reporter
		}
	}
}

type record struct {
	Type        string          `json:"type"`
	Version     int             `json:"version,omitempty"`
	ExportedAt  *time.Time      `json:"exported_at,omitempty"`
	WordCount   int             `json:"word_count,omitempty"`
	Preferences *preferencesDTO `json:"preferences,omitempty"`
	Payload     any             `json:"payload,omitempty"`
}

type rawRecord struct {
	Type        string          `json:"type"`
	Version     int             `json:"version"`
	ExportedAt  *time.Time      `json:"exported_at"`
	WordCount   int             `json:"word_count"`
	Preferences *preferencesDTO `json:"preferences"`
	Payload     json.RawMessage `json:"payload"`
}

type preferencesDTO struct {
	Alphabet    string `json:"alphabet,omitempty"`
	BaseVersion string `json:"base_version,omitempty"`
	SavePhrase  string `json:"save_phrase,omitempty"`
	Greeting    string `json:"greeting,omitempty"`
}

type wordDTO struct {
	Text       string         `json:"text"`
	Parts      []string       `json:"parts"`
	Definition string         `json:"definition,omitempty"`
	Keys       map[string]int `json:"keys,omitempty"`
}

// Summary reports what an import changed.
type Summary struct {
	Words   int
	Created int
}

func (s *Service) Export(ctx context.Context, w io.Writer, session *entity.Session, opts ...ExportOption) error {
	cfg := options{reporter: noopProgress{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	writer := bufio.NewWriter(w)
	words := session.Words.Words()

	now := s.now().UTC()
	meta := record{
		Type:        recordMeta,
		Version:     formatVersion,
		ExportedAt:  &now,
		WordCount:   len(words),
		Preferences: toPreferencesDTO(session.Prefs),
	}
	if err := writeRecord(writer, meta); err != nil {
		return err
	}

	cfg.reporter.Start(recordWord, len(words))
	for _, word := range words {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeRecord(writer, record{Type: recordWord, Payload: toWordDTO(word)}); err != nil {
			return fmt.Errorf("write word %q: %w", word.Text, err)
		}
		cfg.reporter.Increment(recordWord, 1)
	}
	cfg.reporter.Finish(recordWord)
	return writer.Flush()
}

// Import reads a backup and merges it into session. Words merge with existing
// entries; preferences fill only the fields session leaves empty. Nothing is
// applied unless the whole backup decodes.
func (s *Service) Import(ctx context.Context, r io.Reader, session *entity.Session, opts ...ExportOption) (*Summary, error) {
	cfg := options{reporter: noopProgress{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	br := bufio.NewReader(r)
	var (
		metaSeen bool
		meta     rawRecord
		words    []*entity.Word
		lineNo   int
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read backup: %w", err)
		}
		lineNo++
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			var rec rawRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return nil, fmt.Errorf("decode record on line %d: %w", lineNo, err)
			}

			switch rec.Type {
			case recordMeta:
				metaSeen = true
				meta = rec
				cfg.reporter.Start(recordWord, rec.WordCount)
			case recordWord:
				if len(rec.Payload) == 0 {
					return nil, fmt.Errorf("backup: missing payload for word on line %d", lineNo)
				}
				word, err := decodeWord(rec.Payload)
				if err != nil {
					return nil, fmt.Errorf("backup: line %d: %w", lineNo, err)
				}
				words = append(words, word)
				cfg.reporter.Increment(recordWord, 1)
			default:
				// Unknown record types come from newer writers; skip them.
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}

	if !metaSeen {
		return nil, errors.New("backup: missing meta record")
	}
	if meta.Version != formatVersion {
		return nil, fmt.Errorf("backup: unsupported format version %d", meta.Version)
	}
	if err := validatePreferences(meta.Preferences); err != nil {
		return nil, err
	}

	summary := &Summary{Words: len(words)}
	for _, word := range words {
		if _, created := session.Words.Add(word); created {
			summary.Created++
		}
	}
	applyPreferences(session, meta.Preferences)
	cfg.reporter.Finish(recordWord)
	return summary, nil
}

func decodeWord(payload json.RawMessage) (*entity.Word, error) {
	var dto wordDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		return nil, fmt.Errorf("decode word: %w", err)
	}
	parts := lo.FilterMap(dto.Parts, func(name string, _ int) (entity.PartOfSpeech, bool) {
		return entity.PartByName(name)
	})
	word, err := entity.NewWord(dto.Text, parts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrMalformedRecord, err)
	}
	if err := word.Define(dto.Definition); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrMalformedRecord, err)
	}
	word.AddKeys(dto.Keys)
	return word, nil
}

// validatePreferences rejects values that cannot be stored on one line of the
// user data file.
func validatePreferences(dto *preferencesDTO) error {
	if dto == nil {
		return nil
	}
	for name, value := range map[string]string{
		"alphabet":     dto.Alphabet,
		"base_version": dto.BaseVersion,
		"save_phrase":  dto.SavePhrase,
		"greeting":     dto.Greeting,
	} {
		if strings.ContainsAny(value, "\r\n") {
			return fmt.Errorf("backup: %w: preference %s spans several lines", entity.ErrMalformedRecord, name)
		}
	}
	return nil
}

func applyPreferences(session *entity.Session, dto *preferencesDTO) {
	if dto == nil {
		return
	}
	prefs := session.Prefs
	if len(prefs.Alphabet) == 0 {
		prefs.Alphabet = []rune(dto.Alphabet)
	}
	if prefs.BaseVersion == "" {
		prefs.BaseVersion = dto.BaseVersion
	}
	if prefs.SavePhrase == "" {
		prefs.SavePhrase = dto.SavePhrase
	}
	if prefs.Greeting == "" {
		prefs.Greeting = dto.Greeting
	}
	if prefs.BaseVersion != "" {
		prefs.Version = prefs.DeriveVersion(session.Words.Len())
	}
}

func toPreferencesDTO(prefs *entity.Preferences) *preferencesDTO {
	return &preferencesDTO{
		Alphabet:    string(prefs.Alphabet),
		BaseVersion: prefs.BaseVersion,
		SavePhrase:  prefs.SavePhrase,
		Greeting:    prefs.Greeting,
	}
}

func toWordDTO(word *entity.Word) wordDTO {
	return wordDTO{
		Text:       word.Text,
		Parts:      word.PartNameList(),
		Definition: word.Definition,
		Keys:       word.Keys,
	}
}

func writeRecord(w io.Writer, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}
	return nil
}
