package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/charm/internal/entity"
	"github.com/eslsoft/charm/internal/repository"
)

// File names inside the data directory.
const (
	WordsFileName    = "words"
	UserDataFileName = "user_data"
)

const maxWordLineBytes = 1 << 20

type flatFileRepository struct {
	dir    string
	logger *logrus.Logger
}

// NewSessionRepository stores the session as two flat text files under dir.
func NewSessionRepository(dir string, logger *logrus.Logger) repository.SessionRepository {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &flatFileRepository{dir: dir, logger: logger}
}

func (r *flatFileRepository) wordsPath() string    { return filepath.Join(r.dir, WordsFileName) }
func (r *flatFileRepository) userDataPath() string { return filepath.Join(r.dir, UserDataFileName) }

func (r *flatFileRepository) Load(ctx context.Context, session *entity.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.loadWords(session.Words); err != nil {
		return err
	}
	return r.loadUserData(session)
}

func (r *flatFileRepository) loadWords(store *entity.WordStore) error {
	file, err := os.Open(r.wordsPath())
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.WithField("path", r.wordsPath()).Info("word file missing, creating empty one")
		return r.createEmpty(r.wordsPath())
	}
	if err != nil {
		return fmt.Errorf("open word file: %w", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	lineNo, loaded, skipped := 0, 0, 0
	for {
		line, oversized, err := readRecord(br, maxWordLineBytes)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read word file: %w", err)
		}
		lineNo++
		if oversized {
			skipped++
			r.logger.WithField("line", lineNo).Debug("skipping oversized word record")
			continue
		}
		if line == "" {
			continue
		}
		word, err := ParseWordLine(line)
		if err != nil {
			skipped++
			r.logger.WithError(err).WithField("line", lineNo).Debug("skipping word record")
			continue
		}
		store.Add(word)
		loaded++
	}
	r.logger.WithFields(logrus.Fields{"loaded": loaded, "skipped": skipped}).Debug("words recovered")
	return nil
}

// readRecord returns the next line without its terminator. Lines longer than
// limit are consumed and reported as oversized instead of being buffered.
func readRecord(br *bufio.Reader, limit int) (string, bool, error) {
	var (
		buf       []byte
		oversized bool
	)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !oversized {
			if len(buf)+len(chunk) > limit {
				oversized, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), oversized, nil
		}
	}
}

func (r *flatFileRepository) loadUserData(session *entity.Session) error {
	content, err := os.ReadFile(r.userDataPath())
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.WithField("path", r.userDataPath()).Info("user data missing, creating empty one")
		return r.createEmpty(r.userDataPath())
	}
	if err != nil {
		return fmt.Errorf("read user data: %w", err)
	}
	applyUserData(splitFileLines(string(content)), session.Prefs, session.Words.Len())
	return nil
}

func (r *flatFileRepository) Save(ctx context.Context, session *entity.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.saveWords(session.Words); err != nil {
		return err
	}
	return r.saveUserData(session.Prefs, false)
}

func (r *flatFileRepository) Restore(ctx context.Context, session *entity.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.saveWords(session.Words); err != nil {
		return err
	}
	return r.saveUserData(session.Prefs, true)
}

// TODO: write to a temporary file and rename it into place so a crash
// between truncate and rewrite cannot lose the vocabulary.
func (r *flatFileRepository) saveWords(store *entity.WordStore) (err error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	file, err := os.Create(r.wordsPath())
	if err != nil {
		return fmt.Errorf("truncate word file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close word file: %w", cerr)
		}
	}()

	w := bufio.NewWriter(file)
	for _, word := range store.Words() {
		if _, err := w.WriteString(FormatWord(word) + "\n"); err != nil {
			return fmt.Errorf("write word %q: %w", word.Text, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush word file: %w", err)
	}
	r.logger.WithField("words", store.Len()).Debug("word file written")
	return nil
}

func (r *flatFileRepository) saveUserData(prefs *entity.Preferences, complete bool) error {
	content, err := os.ReadFile(r.userDataPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read user data: %w", err)
	}
	existing := splitFileLines(string(content))

	var lines []string
	if complete {
		lines = completeUserData(existing, prefs)
	} else {
		if missing := unwrittenPreferences(existing, prefs); len(missing) > 0 {
			r.logger.WithFields(logrus.Fields{
				"path":        r.userDataPath(),
				"preferences": missing,
			}).Info("user data has no line for these preferences, they are kept for this session only")
		}
		lines = mergeUserData(existing, prefs)
	}

	var out []byte
	for _, line := range lines {
		out = append(out, line...)
	}
	if err := os.WriteFile(r.userDataPath(), out, 0o644); err != nil {
		return fmt.Errorf("write user data: %w", err)
	}
	return nil
}

func (r *flatFileRepository) createEmpty(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	return file.Close()
}
