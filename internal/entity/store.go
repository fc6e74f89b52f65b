package entity

// WordStore holds every known word keyed by its normalized text. Iteration
// follows insertion order so saved files are reproducible.
type WordStore struct {
	index map[string]*Word
	order []string
}

func NewWordStore() *WordStore {
	return &WordStore{index: make(map[string]*Word)}
}

// Lookup finds the word stored for token, comparing normalized forms.
func (s *WordStore) Lookup(token string) (*Word, bool) {
	w, ok := s.index[NormalizeWordToken(token)]
	return w, ok
}

func (s *WordStore) Contains(token string) bool {
	_, ok := s.Lookup(token)
	return ok
}

// Add inserts w, or merges it into the entry already stored under the same
// key. It returns the stored word and whether a new entry was created.
func (s *WordStore) Add(w *Word) (*Word, bool) {
	key := w.Key()
	if existing, ok := s.index[key]; ok {
		if existing != w {
			existing.merge(w)
		}
		return existing, false
	}
	s.index[key] = w
	s.order = append(s.order, key)
	return w, true
}

// Words returns the stored words in insertion order.
func (s *WordStore) Words() []*Word {
	out := make([]*Word, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.index[key])
	}
	return out
}

func (s *WordStore) Len() int { return len(s.order) }

// UnknownWord returns the first token, left to right, that the store does not know.
func (s *WordStore) UnknownWord(tokens []string) (string, bool) {
	for _, token := range tokens {
		if !s.Contains(token) {
			return token, true
		}
	}
	return "", false
}

// Phrase resolves every token to a stored word. It fails on the first unknown token.
func (s *WordStore) Phrase(tokens []string) (Phrase, bool) {
	words := make([]*Word, 0, len(tokens))
	for _, token := range tokens {
		w, ok := s.Lookup(token)
		if !ok {
			return Phrase{}, false
		}
		words = append(words, w)
	}
	return NewPhrase(words...), true
}
