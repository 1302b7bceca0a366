package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/jotter/internal/errors"
	"github.com/hpungsan/jotter/internal/ops"
	"github.com/hpungsan/jotter/internal/web"
)

// newCLIApp creates the CLI application with all commands.
// a is nil for --help and --version, which never reach an Action.
func newCLIApp(a *app) *cli.App {
	cliApp := &cli.App{
		Name:    "jotter",
		Usage:   "Local notes with categories, pins and search",
		Version: Version,
		Commands: []*cli.Command{
			createCmd(a),
			updateCmd(a),
			deleteCmd(a),
			pinCmd(a),
			showCmd(a),
			viewCmd(a),
			categoryCmd(a),
			themeCmd(a),
			exportCmd(a),
			serveCmd(a),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	cliApp.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return cliApp
}

// createCmd creates the create command.
func createCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a note (reads content from stdin when piped)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Note title (default \"Untitled Note\")"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category name (default Uncategorized)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.CreateInput{
				Title:    c.String("title"),
				Category: c.String("category"),
			}

			if stdinHasData() {
				content, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Content = content
			}

			output, err := ops.Create(c.Context, a.st, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// updateCmd creates the update command.
// Fields not given keep their current value.
func updateCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Edit a note (reads new content from stdin when piped)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "New category"},
		},
		Action: func(c *cli.Context) error {
			id, err := argID(c)
			if err != nil {
				return outputError(err)
			}

			current, err := ops.Get(a.st, ops.GetInput{ID: id})
			if err != nil {
				return outputError(err)
			}

			input := ops.UpdateInput{
				ID:       id,
				Title:    current.Title,
				Content:  current.Content.String(),
				Category: current.Category,
			}
			if c.IsSet("title") {
				input.Title = c.String("title")
			}
			if c.IsSet("category") {
				input.Category = c.String("category")
			}
			if stdinHasData() {
				content, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				if content != "" {
					input.Content = content
				}
			}

			output, err := ops.Update(c.Context, a.st, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Permanently delete a note",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Confirm deletion"},
		},
		Action: func(c *cli.Context) error {
			id, err := argID(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Delete(c.Context, a.st, ops.DeleteInput{ID: id, Confirm: c.Bool("yes")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// pinCmd creates the pin command.
func pinCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "pin",
		Usage:     "Toggle the pinned flag of a note",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := argID(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.TogglePin(c.Context, a.st, ops.TogglePinInput{ID: id})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// showCmd creates the show command.
func showCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single note",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := argID(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Get(a.st, ops.GetInput{ID: id})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// viewCmd creates the view command.
func viewCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "List notes through a filter and search query",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Value: "all", Usage: "all|pinned|recent|category:<name>"},
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Case-insensitive search over title and content"},
			&cli.BoolFlag{Name: "content", Usage: "Include full note content"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.View(a.st, ops.ViewInput{
				Filter:         c.String("filter"),
				Query:          c.String("query"),
				IncludeContent: c.Bool("content"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// categoryCmd creates the category command with its add and list subcommands.
func categoryCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:  "category",
		Usage: "Manage categories",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a category",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return outputError(errors.NewInvalidRequest("category name is required"))
					}

					output, err := ops.AddCategory(c.Context, a.st, ops.AddCategoryInput{
						Name: strings.Join(c.Args().Slice(), " "),
					})
					if err != nil {
						return outputError(err)
					}

					return outputJSON(output)
				},
			},
			{
				Name:  "list",
				Usage: "List categories with note counts",
				Action: func(c *cli.Context) error {
					return outputJSON(ops.ListCategories(a.st))
				},
			},
		},
	}
}

// themeCmd creates the theme command.
func themeCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "theme",
		Usage:     "Show or set the UI theme",
		ArgsUsage: "[dark|light|toggle]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputJSON(ops.ThemeOutput{Theme: a.st.Theme()})
			}

			output, err := ops.SetTheme(c.Context, a.st, ops.ThemeInput{Theme: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a note as a plain text file",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "raw", Usage: "Keep the stored markup instead of plain text"},
			&cli.BoolFlag{Name: "stdout", Usage: "Write the artifact to stdout instead of the exports directory"},
		},
		Action: func(c *cli.Context) error {
			id, err := argID(c)
			if err != nil {
				return outputError(err)
			}

			if c.Bool("stdout") {
				artifact, err := ops.RenderExport(a.st, id, c.Bool("raw"))
				if err != nil {
					return outputError(err)
				}
				_, err = os.Stdout.Write(artifact.Body)
				return err
			}

			output, err := ops.Export(c.Context, a.st, ops.ExportInput{
				ID:  id,
				Dir: a.exportsDir(),
				Raw: c.Bool("raw"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Address to bind (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			cfg := *a.cfg
			if c.IsSet("bind") {
				cfg.WebBind = c.String("bind")
			}
			if c.IsSet("port") {
				cfg.WebPort = c.Int("port")
			}

			srv, err := web.NewServer(a.st, &cfg, a.log, Version)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				a.st.RunAutosave(ctx, cfg.AutosaveInterval())
			}()

			err = web.Run(ctx, srv, a.log)
			cancel()
			<-done
			if err != nil {
				a.log.Error(ctx, "web server stopped", zap.Error(err))
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// argID parses the first positional argument as a note id.
func argID(c *cli.Context) (int64, error) {
	if c.NArg() == 0 {
		return 0, errors.NewInvalidRequest("note id is required")
	}
	return parseID(c.Args().First())
}

// parseID parses a note id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("invalid note id %q", s))
	}
	return id, nil
}

// outputJSON writes JSON output to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var jErr *errors.JotError
	if stderrors.As(err, &jErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", jErr.Code, jErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
