// Package dialogue drives the conversation that teaches charm new words.
//
// Each input line is one turn. The engine looks for the first word it does not
// know, asks for its part of speech, confirms the answer and stores the word.
// Typing the user's save phrase persists everything; the exit token ends the
// session.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/charm/internal/entity"
	"github.com/eslsoft/charm/internal/repository"
)

// DefaultExitToken ends the session when typed on its own.
const DefaultExitToken = "x"

const affirmative = "yes"

var negatives = []string{"no", "negative", "nah"}

// Console is the line-oriented boundary the engine talks through.
type Console interface {
	// ReadLine blocks until a line is available. It returns io.EOF when input ends.
	ReadLine() (string, error)
	Display(message string)
}

// Result describes what a single turn did.
type Result struct {
	Exit    bool
	Saved   bool
	Learned *entity.Word
}

type Option func(*Engine)

// WithExitToken overrides DefaultExitToken. Empty tokens are ignored.
func WithExitToken(token string) Option {
	return func(e *Engine) {
		if token != "" {
			e.exitToken = token
		}
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine is the learning state machine. It is not safe for concurrent use;
// turns are processed one at a time.
type Engine struct {
	session   *entity.Session
	repo      repository.SessionRepository
	console   Console
	logger    logrus.FieldLogger
	exitToken string

	state       State
	pending     []string
	unknown     string
	pendingPart entity.PartOfSpeech
	pendingWord *entity.Word
}

func NewEngine(session *entity.Session, repo repository.SessionRepository, console Console, opts ...Option) *Engine {
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	e := &Engine{
		session:   session,
		repo:      repo,
		console:   console,
		logger:    silent,
		exitToken: DefaultExitToken,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) State() State { return e.state }

// Pending returns the tokens retained while an unknown word is being resolved.
func (e *Engine) Pending() []string { return append([]string(nil), e.pending...) }

// Greet announces the session version and the user's greeting.
func (e *Engine) Greet() {
	e.post(valued("Connected to Charm interactive", e.session.Prefs.Version))
	if e.session.Prefs.Greeting != "" {
		e.post(statement(e.session.Prefs.Greeting))
	}
}

// Run greets the user and processes lines until the exit token, the end of
// input or cancellation of ctx.
func (e *Engine) Run(ctx context.Context) error {
	e.Greet()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := e.console.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		if res := e.Handle(ctx, line); res.Exit {
			e.logger.Info("session ended by exit token")
			return nil
		}
	}
}

// Handle processes one line of input.
func (e *Engine) Handle(ctx context.Context, line string) Result {
	if e.session.HasSavePhrase() && line == e.session.Prefs.SavePhrase {
		return e.save(ctx, line)
	}
	if line == e.exitToken {
		return Result{Exit: true}
	}
	if entity.IsBlankLine(line) {
		return Result{}
	}

	switch e.state {
	case StateAwaitingPart:
		return e.classify(line)
	case StateAwaitingConfirmation:
		return e.confirm(line)
	case StateAwaitingSavePhrase:
		return e.defineSavePhrase(line)
	case StateAwaitingDefinition:
		return e.define(line)
	default:
		return e.scan(entity.Tokenize(line))
	}
}

func (e *Engine) save(ctx context.Context, phrase string) Result {
	e.reset()
	if err := e.repo.Save(ctx, e.session); err != nil {
		e.logger.WithError(err).Error("save failed")
		e.post(statement("I could not " + phrase))
		return Result{}
	}
	e.logger.WithField("words", e.session.Words.Len()).Info("session saved")
	e.post(Query{Subject: "I " + phrase, Exclaim: true})
	return Result{Saved: true}
}

// scan looks for the first unknown token. Only one unknown word is surfaced
// per turn.
func (e *Engine) scan(tokens []string) Result {
	unknown, found := e.session.Words.UnknownWord(tokens)
	if !found {
		e.reset()
		if phrase, ok := e.session.Words.Phrase(tokens); ok {
			e.logger.WithFields(logrus.Fields{"phrase": phrase.String(), "hash": phrase.Hash()}).Debug("line recognized")
		}
		if len(tokens) == 1 {
			e.offerDefinition(tokens[0])
		}
		return Result{}
	}

	e.pending = append([]string(nil), tokens...)
	e.unknown = unknown
	e.transition(StateAwaitingPart)
	e.post(comparison("What", unknown))
	return Result{}
}

func (e *Engine) offerDefinition(token string) {
	word, ok := e.session.Words.Lookup(token)
	if !ok || word.HasDefinition() {
		return
	}
	e.pendingWord = word
	e.transition(StateAwaitingDefinition)
	e.post(direct("Define", quote(word.Text)))
}

func (e *Engine) classify(line string) Result {
	first := entity.Tokenize(line)[0]
	part, ok := entity.PartByName(first)
	if !ok {
		e.logger.WithField("answer", first).Debug("unrecognized part of speech")
		e.reset()
		e.post(statement("Okay, maybe another time"))
		return Result{}
	}
	e.pendingPart = part
	e.transition(StateAwaitingConfirmation)
	e.post(direct("Is "+quote(e.unknown)+" a", part.Name()))
	return Result{}
}

func (e *Engine) confirm(line string) Result {
	first := entity.Tokenize(line)[0]
	if !strings.EqualFold(first, affirmative) {
		return e.scan(e.pending)
	}

	learnedFrom := entity.NormalizeWordToken(strings.Join(e.pending, " "))
	part := e.pendingPart
	word, err := entity.NewWord(e.unknown, part)
	if err != nil {
		e.logger.WithError(err).WithField("word", e.unknown).Warn("could not learn word")
		e.reset()
		e.post(statement("That does not make sense"))
		return Result{}
	}
	word.AddKey(learnedFrom)
	stored, _ := e.session.Words.Add(word)
	e.reset()
	e.logger.WithFields(logrus.Fields{"word": stored.Text, "part": part.Name()}).Info("word learned")

	if !e.session.HasSavePhrase() {
		e.transition(StateAwaitingSavePhrase)
		e.post(statement("What should I do with that?"))
		return Result{Learned: stored}
	}
	e.post(statement(fmt.Sprintf("Got it, %s is a %s", quote(stored.Text), part)))
	return Result{Learned: stored}
}

func (e *Engine) defineSavePhrase(line string) Result {
	e.session.Prefs.SavePhrase = line
	e.reset()
	e.post(statement("I will " + quote(line) + " to keep new information"))
	return Result{}
}

func (e *Engine) define(line string) Result {
	word := e.pendingWord
	e.reset()
	if word == nil || lo.Contains(negatives, entity.NormalizeWordToken(line)) {
		return Result{}
	}
	if err := word.Define(line); err != nil {
		e.logger.WithError(err).WithField("word", word.Text).Warn("could not define word")
		e.post(statement("That does not make sense"))
		return Result{}
	}
	e.post(statement(fmt.Sprintf("Defined %s as %s", quote(word.Text), quote(line))))
	return Result{}
}

func (e *Engine) post(q Query) {
	e.console.Display(q.String())
}

func quote(s string) string { return "'" + s + "'" }

func (e *Engine) transition(next State) {
	if e.state != next {
		e.logger.WithFields(logrus.Fields{"from": e.state, "to": next}).Debug("dialogue state")
	}
	e.state = next
}

// reset drops any work in progress and returns to idle.
func (e *Engine) reset() {
	e.pending = nil
	e.unknown = ""
	e.pendingPart = entity.PartOfSpeech{}
	e.pendingWord = nil
	e.transition(StateIdle)
}
