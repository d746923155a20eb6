package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/user/moviecatalog/internal/config"
	"github.com/user/moviecatalog/internal/model"
	"github.com/user/moviecatalog/internal/repository"
	"github.com/user/moviecatalog/internal/service"
	"github.com/user/moviecatalog/internal/utils"
)

// app state shared by the subcommands
type app struct {
	cfgFile string
	backend string

	cfg     *config.Config
	logger  zerolog.Logger
	catalog *service.CatalogService
	movies  *service.MovieService
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "moviectl",
		Short: "Browse and manage the movie catalog from a terminal",
		Long: `moviectl talks to the same movie service as the web catalog and applies
the same validation rules when creating or editing movies.`,
		PersistentPreRunE: a.initialize,
		SilenceUsage:      true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "movie service URL (overrides backend_url)")

	root.AddCommand(
		a.listCmd(),
		a.showCmd(),
		a.createCmd(),
		a.editCmd(),
		a.deleteCmd(),
	)
	return root
}

// initialize loads the configuration and wires the services
func (a *app) initialize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.backend != "" {
		cfg.BackendURL = strings.TrimRight(a.backend, "/")
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	a.cfg = cfg
	a.logger = utils.NewLogger(cfg.LogLevel, cfg.LogFormat)

	repos, err := repository.NewRepositories(utils.NewHTTPClient(cfg.BackendTimeout), cfg.BackendURL, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create movie client: %w", err)
	}

	// views log their failures; the CLI reports them itself
	quiet := a.logger.Level(zerolog.Disabled)
	a.catalog = service.NewCatalogService(repos.Movie, quiet)
	a.movies = service.NewMovieService(repos.Movie, quiet)
	return nil
}

func (a *app) listCmd() *cobra.Command {
	var (
		filter service.CatalogFilter
		where  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies, optionally filtered",
		Example: `  moviectl list --genre Horror
  moviectl list --where 'icontains(author, "scott") && hasPicture'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var exprFilter *service.ExprFilter
			if where != "" {
				f, err := service.CompileExpr(where)
				if err != nil {
					return fmt.Errorf("invalid --where expression: %w", err)
				}
				exprFilter = f
			}

			view := a.catalog.Activate(cmd.Context(), filter)
			if view.State == service.StateError {
				return fmt.Errorf("failed to load catalog: %w", view.Err)
			}

			movies := view.Visible()
			if exprFilter != nil {
				movies = service.FilterExpr(movies, exprFilter)
			}
			printMovieList(cmd.OutOrStdout(), movies, len(view.Movies))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "title substring, case-insensitive")
	cmd.Flags().StringVarP(&filter.Genre, "genre", "g", "", "exact genre")
	cmd.Flags().StringVarP(&filter.Author, "author", "a", "", "exact author")
	cmd.Flags().StringVarP(&where, "where", "w", "", "expr filter over id, title, author, genre, synopsis, picture")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := a.movies.Detail(cmd.Context(), args[0])
			if view.State == service.StateError {
				return fmt.Errorf("failed to load movie %s: %w", args[0], view.Err)
			}
			printMovie(cmd.OutOrStdout(), view.Movie)
			return nil
		},
	}
}

func (a *app) createCmd() *cobra.Command {
	var form model.CreateForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a movie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			movie, err := a.movies.Create(cmd.Context(), form)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created movie %s\n", movie.ID)
			printMovie(cmd.OutOrStdout(), movie)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "title (required)")
	cmd.Flags().StringVar(&form.Author, "author", "", "author (required)")
	cmd.Flags().StringVar(&form.Genre, "genre", "", "genre (required)")
	cmd.Flags().StringVar(&form.Synopsis, "synopsis", "", "synopsis (required)")
	cmd.Flags().StringVar(&form.Picture, "picture", "", "picture URL (required)")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var changes model.EditForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a movie; fields without a flag keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			view := a.movies.Edit(cmd.Context(), id)
			if view.State == service.StateError {
				return fmt.Errorf("failed to load movie %s: %w", id, view.Err)
			}

			form := view.Form
			flags := cmd.Flags()
			if flags.Changed("title") {
				form.Title = changes.Title
			}
			if flags.Changed("author") {
				form.Author = changes.Author
			}
			if flags.Changed("genre") {
				form.Genre = changes.Genre
			}
			if flags.Changed("synopsis") {
				form.Synopsis = changes.Synopsis
			}
			if flags.Changed("picture") {
				form.Picture = changes.Picture
			}

			movie, err := a.movies.Update(cmd.Context(), id, form)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated movie %s\n", movie.ID)
			printMovie(cmd.OutOrStdout(), movie)
			return nil
		},
	}

	cmd.Flags().StringVar(&changes.Title, "title", "", "new title")
	cmd.Flags().StringVar(&changes.Author, "author", "", "new author")
	cmd.Flags().StringVar(&changes.Genre, "genre", "", "new genre")
	cmd.Flags().StringVar(&changes.Synopsis, "synopsis", "", "new synopsis")
	cmd.Flags().StringVar(&changes.Picture, "picture", "", "new picture URL")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := a.movies.Detail(cmd.Context(), args[0])
			if view.State == service.StateError {
				return fmt.Errorf("failed to load movie %s: %w", args[0], view.Err)
			}

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %q (%s)? [y/N] ", view.Movie.Title, view.ID)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if reply := strings.ToLower(strings.TrimSpace(answer)); reply != "y" && reply != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := a.movies.Delete(cmd.Context(), view); err != nil {
				return fmt.Errorf("failed to delete movie %s: %w", view.ID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted movie %s\n", view.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
