package resume

import (
	"errors"
	"testing"

	"skill-hire/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_UnsupportedType(t *testing.T) {
	_, err := ExtractText("image/png", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestExtractText_InvalidPDF(t *testing.T) {
	_, err := ExtractText(MimePDF, []byte("not a pdf"))
	assert.Error(t, err)
}

func TestSuggestSkills(t *testing.T) {
	catalogue := []skill.Skill{
		{ID: 1, Name: "Go"},
		{ID: 2, Name: "PostgreSQL"},
		{ID: 3, Name: "C++"},
		{ID: 4, Name: "Node.js"},
		{ID: 5, Name: "Java"},
		{ID: 6, Name: "Machine Learning"},
	}
	text := "Backend engineer: Go, PostgreSQL and some node.js.\nTinkered with C++ and machine learning. Javascript too."

	got := SuggestSkills(text, catalogue, []int64{2})

	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"C++", "Go", "Machine Learning", "Node.js"}, names)
}

func TestSuggestSkills_EmptyText(t *testing.T) {
	got := SuggestSkills("   ", []skill.Skill{{ID: 1, Name: "Go"}}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "a b\nc", normalizeSpace("  a \t b \n\n   c  "))
}
