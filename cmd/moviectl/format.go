package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/user/moviecatalog/internal/model"
	"github.com/user/moviecatalog/internal/utils"
)

// synopsisWidth characters of synopsis in list output
const synopsisWidth = 100

func printMovieList(w io.Writer, movies []model.Movie, total int) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies found matching the filter criteria.")
		return
	}

	fmt.Fprintf(w, "\nFound %d of %d movies:\n", len(movies), total)
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, m := range movies {
		fmt.Fprintf(w, "• %s  [%s]\n", m.Title, m.ID)
		fmt.Fprintf(w, "  %s · %s\n", m.Author, m.Genre)
		if m.Synopsis != "" {
			fmt.Fprintf(w, "  %s\n", utils.Excerpt(m.Synopsis, synopsisWidth))
		}
	}
}

func printMovie(w io.Writer, m *model.Movie) {
	fmt.Fprintf(w, "ID:       %s\n", m.ID)
	fmt.Fprintf(w, "Title:    %s\n", m.Title)
	fmt.Fprintf(w, "Author:   %s\n", m.Author)
	fmt.Fprintf(w, "Genre:    %s\n", m.Genre)
	fmt.Fprintf(w, "Picture:  %s\n", utils.PictureOrPlaceholder(m.Picture))
	if m.Synopsis != "" {
		fmt.Fprintf(w, "\n%s\n", m.Synopsis)
	}
}

// describe turns field errors into a readable message
func describe(err error) error {
	var fe model.FieldErrors
	if errors.As(err, &fe) {
		return fmt.Errorf("invalid movie: %s", fe.Error())
	}
	return err
}
