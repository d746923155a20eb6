package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/moviecatalog/internal/backendtest"
	"github.com/user/moviecatalog/internal/model"
	"github.com/user/moviecatalog/internal/repository"
)

func run(t *testing.T, backend *backendtest.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--backend", backend.URL}, args...))

	err := root.Execute()
	return out.String(), err
}

func seed(backend *backendtest.Server) []string {
	return backend.Seed(
		model.Movie{Title: "Alien", Author: "Ridley Scott", Genre: "Horror", Synopsis: "In space no one can hear you scream.", Picture: "https://example.com/alien.jpg"},
		model.Movie{Title: "Heat", Author: "Michael Mann", Genre: "Crime"},
		model.Movie{Title: "Blade Runner", Author: "Ridley Scott", Genre: "Sci-Fi"},
	)
}

func TestList(t *testing.T) {
	backend := backendtest.New(t)
	seed(backend)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{name: "all", args: []string{"list"}, want: []string{"Found 3 of 3", "Alien", "Heat", "Blade Runner"}},
		{name: "genre", args: []string{"list", "--genre", "Crime"}, want: []string{"Found 1 of 3", "Heat"}, notWant: []string{"Alien"}},
		{name: "search", args: []string{"list", "-s", "blade"}, want: []string{"Blade Runner"}, notWant: []string{"Heat"}},
		{name: "where", args: []string{"list", "--where", `icontains(author, "scott") && hasPicture`}, want: []string{"Found 1 of 3", "Alien"}, notWant: []string{"Blade Runner"}},
		{name: "nothing", args: []string{"list", "--author", "Nobody"}, want: []string{"No movies found"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, backend, "", tt.args...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestList_InvalidWhere(t *testing.T) {
	backend := backendtest.New(t)

	_, err := run(t, backend, "", "list", "--where", "genre ==")
	assert.ErrorContains(t, err, "invalid --where expression")
	assert.Empty(t, backend.Requests())
}

func TestShow(t *testing.T) {
	backend := backendtest.New(t)
	ids := seed(backend)

	out, err := run(t, backend, "", "show", ids[0])
	require.NoError(t, err)
	assert.Contains(t, out, "Title:    Alien")
	assert.Contains(t, out, "In space no one can hear you scream.")

	_, err = run(t, backend, "", "show", "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreate(t *testing.T) {
	backend := backendtest.New(t)

	out, err := run(t, backend, "", "create",
		"--title", "Alien",
		"--author", "Ridley Scott",
		"--genre", "Horror",
		"--synopsis", "In space no one can hear you scream.",
		"--picture", "https://example.com/alien.jpg",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Created movie m1")
	assert.Equal(t, 1, backend.Len())
}

func TestCreate_Invalid(t *testing.T) {
	backend := backendtest.New(t)

	_, err := run(t, backend, "", "create",
		"--title", "Alien",
		"--author", "Ridley Scott",
		"--genre", "Horror",
		"--synopsis", "x",
		"--picture", "not a url",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "picture must be a valid URL")
	assert.Empty(t, backend.Requests())
}

func TestEdit(t *testing.T) {
	backend := backendtest.New(t)
	ids := seed(backend)

	out, err := run(t, backend, "", "edit", ids[1], "--title", "Heat (1995)")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated movie "+ids[1])

	doc, ok := backend.Doc(ids[1])
	require.True(t, ok)
	assert.Equal(t, "Heat (1995)", doc["title"])
	assert.Equal(t, "Michael Mann", doc["author"])
}

func TestEdit_ClearRequiredField(t *testing.T) {
	backend := backendtest.New(t)
	ids := seed(backend)

	_, err := run(t, backend, "", "edit", ids[1], "--genre", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "genre is a required field")
}

func TestDelete(t *testing.T) {
	backend := backendtest.New(t)
	ids := seed(backend)

	out, err := run(t, backend, "n\n", "delete", ids[0])
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Equal(t, 3, backend.Len())

	out, err = run(t, backend, "y\n", "delete", ids[0])
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted movie "+ids[0])
	assert.Equal(t, 2, backend.Len())

	_, err = run(t, backend, "", "delete", "--yes", ids[1])
	require.NoError(t, err)
	assert.Equal(t, 1, backend.Len())
}

func TestInvalidBackend(t *testing.T) {
	backend := backendtest.New(t)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--backend", "not a url", "list"})
	assert.Error(t, root.Execute())
	assert.Empty(t, backend.Requests())
}
