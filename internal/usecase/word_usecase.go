package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/eslsoft/charm/internal/entity"
	"github.com/eslsoft/charm/internal/repository"
	"github.com/eslsoft/charm/pkg/filterexpr"
)

// WordUsecase exposes read access to a session's vocabulary.
type WordUsecase interface {
	Lookup(ctx context.Context, text string) (*entity.Word, error)
	List(ctx context.Context, query *repository.ListWordQuery) ([]*entity.Word, error)
	// Stats counts words per primary part of speech, in registry order.
	Stats(ctx context.Context) []PartCount
}

// PartCount is the number of words whose primary part is Part.
type PartCount struct {
	Part  entity.PartOfSpeech
	Count int
}

var listWordsSchema = filterexpr.ResourceSchema{
	Fields: map[string]filterexpr.ValueKind{
		"text":       filterexpr.KindString,
		"part":       filterexpr.KindString,
		"parts":      filterexpr.KindStringList,
		"definition": filterexpr.KindString,
		"defined":    filterexpr.KindBool,
		"uses":       filterexpr.KindNumber,
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "text",
		FallbackKey:    "text",
		Keys:           []string{"text", "part", "uses", "defined"},
	},
}

type wordUsecase struct {
	session *entity.Session
}

func NewWordUsecase(session *entity.Session) WordUsecase {
	return &wordUsecase{session: session}
}

func (u *wordUsecase) Lookup(_ context.Context, text string) (*entity.Word, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entity.ErrInvalidWordText
	}
	w, ok := u.session.Words.Lookup(text)
	if !ok {
		return nil, fmt.Errorf("%q: %w", text, entity.ErrWordNotFound)
	}
	return w, nil
}

func (u *wordUsecase) List(ctx context.Context, query *repository.ListWordQuery) ([]*entity.Word, error) {
	if query == nil {
		query = &repository.ListWordQuery{}
	}
	q, err := filterexpr.Compile(query, listWordsSchema)
	if err != nil {
		return nil, err
	}

	var out []*entity.Word
	for _, w := range u.session.Words.Words() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := q.Match(wordRecord(w))
		if err != nil {
			return nil, fmt.Errorf("word %q: %w", w.Text, err)
		}
		if ok {
			out = append(out, w)
		}
	}
	filterexpr.Sort(out, q.Order, wordRecord)
	return out, nil
}

func (u *wordUsecase) Stats(_ context.Context) []PartCount {
	counts := lo.CountValuesBy(u.session.Words.Words(), func(w *entity.Word) int {
		top, _ := w.TopPart()
		return top.Index()
	})
	return lo.FilterMap(entity.AllParts(), func(p entity.PartOfSpeech, _ int) (PartCount, bool) {
		n := counts[p.Index()]
		return PartCount{Part: p, Count: n}, n > 0
	})
}

func wordRecord(w *entity.Word) filterexpr.Record {
	part := ""
	if top, ok := w.TopPart(); ok {
		part = top.Name()
	}
	uses := 0
	for _, n := range w.Keys {
		uses += n
	}
	return filterexpr.Record{
		"text":       w.Text,
		"part":       part,
		"parts":      w.PartNameList(),
		"definition": w.Definition,
		"defined":    w.HasDefinition(),
		"uses":       float64(uses),
	}
}
