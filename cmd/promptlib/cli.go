package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/mcp"
	"github.com/hpungsan/promptlib/internal/ops"
	"github.com/hpungsan/promptlib/internal/web"
)

// maxStdinBytes caps body text read from stdin.
const maxStdinBytes = 4 << 20

// newCLIApp creates the CLI application with all commands.
func newCLIApp(e *env) *cli.App {
	app := &cli.App{
		Name:    "promptlib",
		Usage:   "Local library of reusable prompts and saved checkpoints",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				EnvVars: []string{"PROMPTLIB_DATA_DIR"},
				Usage:   "Data directory (default: per-user data dir)",
			},
			&cli.BoolFlag{Name: "verbose", Usage: "Log debug output to stderr"},
			&cli.StringFlag{Name: "format", Value: "json", Usage: "Output format: json|yaml"},
		},
		Before: func(c *cli.Context) error {
			if f := c.String("format"); f != "json" && f != "yaml" {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("unknown format %q (want json or yaml)", f)))
			}
			e.dataDir = c.String("data-dir")
			e.verbose = c.Bool("verbose")
			e.errOut = c.App.ErrWriter
			return nil
		},
		After: func(_ *cli.Context) error {
			return e.close()
		},
		Commands: []*cli.Command{
			categoriesCmd(e),
			promptsCmd(e),
			checkpointsCmd(e),
			importCmd(e),
			exportCmd(e),
			validateCmd(),
			resetCmd(e),
			snapshotsCmd(e),
			statsCmd(e),
			serveCmd(e),
			mcpCmd(e),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// kindFlag selects the category namespace.
func kindFlag() cli.Flag {
	return &cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Value: "prompt", Usage: "Category namespace: prompt|checkpoint"}
}

// categoriesCmd creates the categories command group.
func categoriesCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List and manage categories",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List categories with item counts",
				Flags: []cli.Flag{kindFlag()},
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.ListCategories(s, ops.ListCategoriesInput{Kind: c.String("kind")})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "add",
				Usage:     "Create a category",
				ArgsUsage: "<name>",
				Flags:     []cli.Flag{kindFlag()},
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.AddCategory(s, ops.AddCategoryInput{
						Kind: c.String("kind"),
						Name: strings.Join(c.Args().Slice(), " "),
					})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "rename",
				Usage:     "Rename a category",
				ArgsUsage: "<id> <name>",
				Flags:     []cli.Flag{kindFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: categories rename <id> <name>"))
					}
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.RenameCategory(s, ops.RenameCategoryInput{
						Kind: c.String("kind"),
						ID:   c.Args().First(),
						Name: strings.Join(c.Args().Tail(), " "),
					})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete an empty category",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{kindFlag()},
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.DeleteCategory(s, ops.DeleteCategoryInput{
						Kind: c.String("kind"),
						ID:   c.Args().First(),
					})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
		},
	}
}

// importCmd creates the import command.
func importCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Replace the library with a JSON file (bare library or export envelope)",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			s, err := e.open()
			if err != nil {
				return outputError(err)
			}
			result, err := ops.Import(s, e.config(), ops.ImportInput{Path: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return output(c, result)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the library to a JSON export envelope",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"o"}, Usage: "Output file (default: exports/promptlib-<timestamp>.json)"},
		},
		Action: func(c *cli.Context) error {
			s, err := e.open()
			if err != nil {
				return outputError(err)
			}
			result, err := ops.Export(s, e.config(), ops.ExportInput{Path: c.String("path")})
			if err != nil {
				return outputError(err)
			}
			return output(c, result)
		},
	}
}

// validateCmd creates the validate command. It does not open the library.
func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check a JSON file against the import rules without importing it",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			result, err := ops.Validate(ops.ValidateInput{Path: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			if err := output(c, result); err != nil {
				return err
			}
			if !result.Valid {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// resetCmd creates the reset command.
func resetCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Replace the library with the sample content or an empty library",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: ops.ResetSample, Usage: "sample|clear"},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Confirm replacing the whole library"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				return outputError(errors.NewInvalidRequest("reset replaces the whole library; pass --yes to confirm"))
			}
			s, err := e.open()
			if err != nil {
				return outputError(err)
			}
			result, err := ops.Reset(s, ops.ResetInput{Mode: c.String("mode")})
			if err != nil {
				return outputError(err)
			}
			return output(c, result)
		},
	}
}

// snapshotsCmd creates the snapshots command group.
func snapshotsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "snapshots",
		Usage: "List and restore journal snapshots",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List snapshots, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultSnapshotLimit, Usage: "Max results"},
					&cli.IntFlag{Name: "offset", Usage: "Skip first N results"},
				},
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.ListSnapshots(s, ops.ListSnapshotsInput{
						Limit:  c.Int("limit"),
						Offset: c.Int("offset"),
					})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "restore",
				Usage:     "Replace the library with a snapshot",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.RestoreSnapshot(s, ops.RestoreSnapshotInput{ID: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show collection counts and storage locations",
		Action: func(c *cli.Context) error {
			s, err := e.open()
			if err != nil {
				return outputError(err)
			}
			result, err := ops.Stats(s)
			if err != nil {
				return outputError(err)
			}
			return output(c, result)
		},
	}
}

// serveCmd creates the serve command for the web UI.
func serveCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Address to bind (default from config: 127.0.0.1)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on (default from config: 8765)"},
		},
		Action: func(c *cli.Context) error {
			s, err := e.open()
			if err != nil {
				return outputError(err)
			}
			cfg := e.config()
			bind, port := cfg.WebBind, cfg.WebPort
			if c.IsSet("bind") {
				bind = c.String("bind")
			}
			if c.IsSet("port") {
				port = c.Int("port")
			}
			srv, err := web.NewServer(s, e.log, Version, bind, port)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := web.Run(srv, e.log); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// mcpCmd creates the mcp command, which serves MCP over stdio.
func mcpCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve MCP tools over stdio",
		Action: func(_ *cli.Context) error {
			s, err := e.open()
			if err != nil {
				return outputError(err)
			}
			if err := mcp.Run(s, e.config(), e.log, Version); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// Helper functions

// output writes v to the app's writer in the selected --format.
func output(c *cli.Context, v any) error {
	w := c.App.Writer
	if c.String("format") == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var lErr *errors.LibError
	if stderrors.As(err, &lErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", lErr.Code, lErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if r has piped data (not a terminal).
func stdinHasData(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	return !isTTY(f)
}

// isTTY reports whether f is an interactive terminal.
func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// readStdin reads all content from r, failing past limit bytes.
func readStdin(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("input exceeds %d bytes", limit)
	}
	return string(data), nil
}
