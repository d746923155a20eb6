package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileExpr(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       []string
		wantErr    bool
	}{
		{name: "genre equality", expression: `genre == "Horror"`, want: []string{"1", "5"}},
		{name: "case insensitive helper", expression: `icontains(author, "cameron")`, want: []string{"2", "4"}},
		{name: "combined", expression: `genre == "Sci-Fi" && author == "Ridley Scott"`, want: []string{"3"}},
		{name: "contains operator", expression: `title contains "Alien"`, want: []string{"1", "2"}},
		{name: "builtin lower", expression: `lower(title) startsWith "the"`, want: []string{"4", "5"}},
		{name: "no picture", expression: `!hasPicture`, want: []string{"1", "2", "3", "4", "5"}},
		{name: "iequals", expression: `iequals(genre, "sci-fi")`, want: []string{"3", "4"}},
		{name: "empty", expression: "  ", wantErr: true},
		{name: "not boolean", expression: `title`, wantErr: true},
		{name: "syntax error", expression: `genre ==`, wantErr: true},
		{name: "unknown field", expression: `rating > 3`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileExpr(tt.expression)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(FilterExpr(catalogFixture, f)))
		})
	}
}

func TestExprFilter_String(t *testing.T) {
	f, err := CompileExpr(`  genre == "Horror" `)
	require.NoError(t, err)
	assert.Equal(t, `genre == "Horror"`, f.String())
}
