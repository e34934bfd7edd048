package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"React", "react"},
		{"Node.js", "node"},
		{"nodejs", "node"},
		{"ReactJS", "react"},
		{"C++", "c++"},
		{"  Python 3 ", "python3"},
		{"PostgreSQL!", "postgresql"},
		{"", ""},
		{"!!!", ""},
		// "js" on its own collapses to nothing; known heuristic.
		{"js", ""},
		{"JS", ""},
		{"jsjs", ""},
		{"JavaScript", "javascript"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"", "js", "jsjs", "nodejsjs", "Vue.JS", "C#", "c++", "Ünïcödé", "a b c",
		"TypeScript", "k8s", "1js", "+js", "---", "Go/Golang",
	}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func TestTokenize_PunctuationIsBoundary(t *testing.T) {
	assert.Equal(t, []string{"java", "script"}, Tokenize("Java/Script"))
	assert.Equal(t, []string{"node", "js", "c++", "go"}, Tokenize("Node.js, C++; go!"))
	assert.Empty(t, Tokenize(" ... "))
}

func TestExtractJobSkills(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		got := ExtractJobSkills("React, Node.js  SQL")
		assert.Equal(t, []string{"react", "node", "sql"}, got)
	})

	t.Run("array", func(t *testing.T) {
		got := ExtractJobSkills([]string{"Python", "Django REST", "AWS,GCP"})
		assert.Equal(t, []string{"python", "django", "rest", "aws", "gcp"}, got)
	})

	t.Run("empty tokens retained", func(t *testing.T) {
		got := ExtractJobSkills([]string{"js", "Go", "!!"})
		assert.Equal(t, []string{"", "go", ""}, got)
		assert.Equal(t, []string{"go"}, CompactTokens(got))
	})

	t.Run("unsupported type", func(t *testing.T) {
		assert.Empty(t, ExtractJobSkills(42))
		assert.NotNil(t, ExtractJobSkills(nil))
	})
}
