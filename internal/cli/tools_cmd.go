package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/audiobook-mcp/internal/di"
	"github.com/listenupapp/audiobook-mcp/internal/tools"
)

// errToolFault is returned when a one-shot call ends in a fault envelope.
var errToolFault = errors.New("tool call failed")

func (a *app) toolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print tool descriptors as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			injector, err := a.container(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = di.Shutdown(injector) }()

			d := do.MustInvoke[*tools.Dispatcher](injector)
			return writeJSON(cmd.OutOrStdout(), d.Tools())
		},
	}
}

func (a *app) callCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "call <tool> [json-args|-]",
		Short: "Call one tool against a fresh session",
		Long: "Call one tool against a fresh session and print its text. Arguments are a JSON " +
			"object; \"-\" reads them from stdin. A fault exits non-zero.",
		Example: `  audiobook-mcp call play_audiobook '{"query":"dune"}'
  echo '{"query":"orwell","type":"author"}' | audiobook-mcp call search_audiobooks -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := callArguments(cmd.InOrStdin(), args[1:])
			if err != nil {
				return err
			}

			injector, err := a.container(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = di.Shutdown(injector) }()

			d := do.MustInvoke[*tools.Dispatcher](injector)
			res := d.CallTool(commandContext(cmd), args[0], raw)

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, res.Text())
			}
			if res.IsError {
				return errToolFault
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result envelope as JSON")
	return cmd
}

// callArguments returns the raw arguments for a one-shot call.
func callArguments(stdin io.Reader, args []string) (json.RawMessage, error) {
	if len(args) == 0 {
		return json.RawMessage(`{}`), nil
	}

	text := args[0]
	if text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read arguments: %w", err)
		}
		text = string(data)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("arguments are not valid JSON: %q", text)
	}
	return json.RawMessage(text), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
