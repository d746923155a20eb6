package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/moviecatalog/internal/model"
)

var catalogFixture = []model.Movie{
	{ID: "1", Title: "Alien", Author: "Ridley Scott", Genre: "Horror"},
	{ID: "2", Title: "Aliens", Author: "James Cameron", Genre: "Action"},
	{ID: "3", Title: "Blade Runner", Author: "Ridley Scott", Genre: "Sci-Fi"},
	{ID: "4", Title: "The Terminator", Author: "James Cameron", Genre: "Sci-Fi"},
	{ID: "5", Title: "The Thing", Author: "John Carpenter", Genre: "Horror"},
}

func ids(movies []model.Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

func TestFilterMovies(t *testing.T) {
	tests := []struct {
		name   string
		filter CatalogFilter
		want   []string
	}{
		{name: "empty filter keeps all", filter: CatalogFilter{}, want: []string{"1", "2", "3", "4", "5"}},
		{name: "search is case insensitive", filter: CatalogFilter{Search: "ALIEN"}, want: []string{"1", "2"}},
		{name: "search is substring", filter: CatalogFilter{Search: "run"}, want: []string{"3"}},
		{name: "genre exact", filter: CatalogFilter{Genre: "Sci-Fi"}, want: []string{"3", "4"}},
		{name: "genre is case sensitive", filter: CatalogFilter{Genre: "horror"}, want: []string{}},
		{name: "author exact", filter: CatalogFilter{Author: "Ridley Scott"}, want: []string{"1", "3"}},
		{name: "author partial does not match", filter: CatalogFilter{Author: "Ridley"}, want: []string{}},
		{name: "conjunction", filter: CatalogFilter{Search: "the", Genre: "Horror", Author: "John Carpenter"}, want: []string{"5"}},
		{name: "conjunction empty", filter: CatalogFilter{Search: "alien", Genre: "Sci-Fi"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterMovies(catalogFixture, tt.filter)))
		})
	}
}

func TestFilterMovies_Properties(t *testing.T) {
	filters := []CatalogFilter{
		{Search: "a"},
		{Search: "the", Genre: "Horror"},
		{Genre: "Sci-Fi", Author: "James Cameron"},
		{Search: "x", Author: "Ridley Scott"},
	}

	for _, f := range filters {
		got := FilterMovies(catalogFixture, f)

		// every visible movie satisfies each clause
		for _, m := range got {
			assert.Contains(t, strings.ToLower(m.Title), strings.ToLower(f.Search))
			if f.Genre != "" {
				assert.Equal(t, f.Genre, m.Genre)
			}
			if f.Author != "" {
				assert.Equal(t, f.Author, m.Author)
			}
		}

		// conjunction is the intersection of the single-criterion results
		bySearch := FilterMovies(catalogFixture, CatalogFilter{Search: f.Search})
		byGenre := FilterMovies(catalogFixture, CatalogFilter{Genre: f.Genre})
		byAuthor := FilterMovies(catalogFixture, CatalogFilter{Author: f.Author})
		assert.Equal(t, ids(got), intersect(ids(bySearch), ids(byGenre), ids(byAuthor)))
	}
}

func TestFilterMovies_DoesNotMutateInput(t *testing.T) {
	in := append([]model.Movie(nil), catalogFixture...)
	_ = FilterMovies(in, CatalogFilter{Genre: "Horror"})
	assert.Equal(t, catalogFixture, in)
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, []string{"Horror", "Action", "Sci-Fi"}, DistinctGenres(catalogFixture))
	assert.Equal(t, []string{"Ridley Scott", "James Cameron", "John Carpenter"}, DistinctAuthors(catalogFixture))
	assert.Empty(t, DistinctGenres(nil))

	partial := []model.Movie{{Title: "A"}, {Title: "B", Genre: "Drama", Author: "X"}, {Title: "C", Genre: "Drama"}}
	assert.Equal(t, []string{"Drama"}, DistinctGenres(partial))
	assert.Equal(t, []string{"X"}, DistinctAuthors(partial))
}

func TestCatalogView_VisibleOnlyWhenLoaded(t *testing.T) {
	view := &CatalogView{State: StateLoading, Movies: catalogFixture}
	assert.Empty(t, view.Visible())

	view.State = StateLoaded
	assert.Len(t, view.Visible(), len(catalogFixture))
}

func TestCatalogFilter_IsZero(t *testing.T) {
	assert.True(t, CatalogFilter{}.IsZero())
	assert.False(t, CatalogFilter{Genre: "Horror"}.IsZero())
}

func intersect(sets ...[]string) []string {
	out := []string{}
	for _, id := range sets[0] {
		inAll := true
		for _, other := range sets[1:] {
			found := false
			for _, o := range other {
				if o == id {
					found = true
					break
				}
			}
			if !found {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, id)
		}
	}
	return out
}
