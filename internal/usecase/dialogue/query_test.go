package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_String(t *testing.T) {
	cases := []struct {
		name  string
		query Query
		want  string
	}{
		{"statement", statement("That does not make sense"), "That does not make sense"},
		{"comparison", comparison("What", "cat"), "What is cat?"},
		{"direct", direct("Define", "'cat'"), "Define 'cat'?"},
		{"value", valued("Connected to Charm interactive", "v3-xyz"), "Connected to Charm interactive (v3-xyz)"},
		{"exclaim", Query{Subject: "I save", Exclaim: true}, "I save!"},
		{"exclaim after mode", Query{Subject: "What", Value: "cat", Mode: ModeComparison, Exclaim: true}, "What is cat?!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.query.String())
		})
	}
}
