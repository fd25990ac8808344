package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/ops"
)

// clipboardWriteAll is swapped out in tests; CI machines have no clipboard.
var clipboardWriteAll = clipboard.WriteAll

// CopyOutput reports a body placed on the clipboard.
type CopyOutput struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Chars int    `json:"chars" yaml:"chars"`
}

// promptsCmd creates the prompts command group.
func promptsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "prompts",
		Usage: "List and manage prompts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List prompt titles",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Only prompts in this category"},
				},
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.ListPrompts(s, ops.ListPromptsInput{CategoryID: c.String("category")})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "show",
				Usage:     "Show a prompt",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "raw", Usage: "Print only the body"},
				},
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.GetPrompt(s, ops.GetPromptInput{ID: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					if c.Bool("raw") {
						_, err := fmt.Fprintln(c.App.Writer, result.Body)
						return err
					}
					return output(c, result)
				},
			},
			{
				Name:  "new",
				Usage: "Create a prompt (body from --body or stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category id (default: first category)"},
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Title (default: New prompt)"},
					&cli.StringFlag{Name: "body", Aliases: []string{"b"}, Usage: "Body text"},
				},
				Action: func(c *cli.Context) error {
					body, err := bodyInput(c)
					if err != nil {
						return outputError(err)
					}
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					input := ops.CreatePromptInput{
						CategoryID: c.String("category"),
						Title:      c.String("title"),
					}
					if body != nil {
						input.Body = *body
					}
					result, err := ops.CreatePrompt(s, input)
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "edit",
				Usage:     "Update a prompt (body from --body or stdin)",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
					&cli.StringFlag{Name: "body", Aliases: []string{"b"}, Usage: "New body text"},
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Move to this category"},
				},
				Action: func(c *cli.Context) error {
					body, err := bodyInput(c)
					if err != nil {
						return outputError(err)
					}
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.UpdatePrompt(s, ops.UpdatePromptInput{
						ID:         c.Args().First(),
						Title:      flagPtr(c, "title"),
						Body:       body,
						CategoryID: flagPtr(c, "category"),
					})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a prompt",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.DeletePrompt(s, ops.DeletePromptInput{ID: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "copy",
				Usage:     "Copy a prompt body to the clipboard",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					p, err := ops.GetPrompt(s, ops.GetPromptInput{ID: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					result, err := copyBody(p.ID, p.Title, p.Body)
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
		},
	}
}

// checkpointsCmd creates the checkpoints command group.
func checkpointsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "checkpoints",
		Usage: "List and manage checkpoints",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List checkpoints",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Only checkpoints in this category"},
				},
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.ListCheckpoints(s, ops.ListCheckpointsInput{CategoryID: c.String("category")})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "show",
				Usage:     "Show a checkpoint",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "raw", Usage: "Print only the body"},
				},
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.GetCheckpoint(s, ops.GetCheckpointInput{ID: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					if c.Bool("raw") {
						_, err := fmt.Fprintln(c.App.Writer, result.Body)
						return err
					}
					return output(c, result)
				},
			},
			{
				Name:  "save",
				Usage: "Save a checkpoint (body from --body or stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Checkpoint category id (default: first)"},
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Title (default: New checkpoint)"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Short description"},
					&cli.StringFlag{Name: "body", Aliases: []string{"b"}, Usage: "Body text"},
				},
				Action: func(c *cli.Context) error {
					body, err := bodyInput(c)
					if err != nil {
						return outputError(err)
					}
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					input := ops.SaveCheckpointInput{
						CategoryID:  c.String("category"),
						Title:       c.String("title"),
						Description: c.String("description"),
					}
					if body != nil {
						input.Body = *body
					}
					result, err := ops.SaveCheckpoint(s, input)
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "edit",
				Usage:     "Update a checkpoint (body from --body or stdin)",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
					&cli.StringFlag{Name: "body", Aliases: []string{"b"}, Usage: "New body text"},
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Move to this checkpoint category"},
				},
				Action: func(c *cli.Context) error {
					body, err := bodyInput(c)
					if err != nil {
						return outputError(err)
					}
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.UpdateCheckpoint(s, ops.UpdateCheckpointInput{
						ID:          c.Args().First(),
						Title:       flagPtr(c, "title"),
						Description: flagPtr(c, "description"),
						Body:        body,
						CategoryID:  flagPtr(c, "category"),
					})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a checkpoint",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					result, err := ops.DeleteCheckpoint(s, ops.DeleteCheckpointInput{ID: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
			{
				Name:      "copy",
				Usage:     "Copy a checkpoint body to the clipboard",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					s, err := e.open()
					if err != nil {
						return outputError(err)
					}
					cp, err := ops.GetCheckpoint(s, ops.GetCheckpointInput{ID: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					result, err := copyBody(cp.ID, cp.Title, cp.Body)
					if err != nil {
						return outputError(err)
					}
					return output(c, result)
				},
			},
		},
	}
}

// bodyInput returns the --body flag, or piped stdin when the flag is unset.
// nil means no body was given. Empty stdin counts as no body.
func bodyInput(c *cli.Context) (*string, error) {
	if c.IsSet("body") {
		body := c.String("body")
		return &body, nil
	}
	if !stdinHasData(c.App.Reader) {
		return nil, nil
	}
	body, err := readStdin(c.App.Reader, maxStdinBytes)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	return &body, nil
}

// flagPtr returns a pointer to a string flag's value when it was set.
func flagPtr(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

// copyBody places body on the system clipboard.
func copyBody(id, title, body string) (*CopyOutput, error) {
	if err := clipboardWriteAll(body); err != nil {
		return nil, errors.NewIO("copy to clipboard", err)
	}
	return &CopyOutput{ID: id, Title: title, Chars: utf8.RuneCountInString(body)}, nil
}
