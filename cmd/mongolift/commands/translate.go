package commands

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mongolift/mongolift/cmd/mongolift/internal/ui"
	"github.com/mongolift/mongolift/pkg/dialect"
)

var translateCmd = &cobra.Command{
	Use:   "translate [request-file]",
	Short: "Translate a statement into its MongoDB command document",
	Long: `Translate a JSON statement envelope into a MongoDB command document
and print it as extended JSON. Reads from stdin when no file is given.
Parameter markers render as {"$undefined":true}; use exec to bind values
and run the command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranslate,
}

var translatePretty bool

func init() {
	translateCmd.Flags().BoolVar(&translatePretty, "pretty", false, "indent the rendered command")
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	req, err := readRequest(args)
	if err != nil {
		ui.PrintError("%v", err)
		return err
	}

	op, err := dialect.Translate(req.Statement, req.bindings(), req.options())
	if err != nil {
		if dialect.NotSupported(err) {
			ui.PrintError("not translatable: %v", err)
		} else {
			ui.PrintError("%v", err)
		}
		return err
	}

	if op.Command == nil {
		ui.PrintInfo("statement is a no-op; nothing to execute")
		return nil
	}

	out := op.CommandJSON
	if translatePretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(out), "", "  "); err == nil {
			out = buf.String()
		}
	}
	fmt.Println(out)

	if len(op.Binders) > 0 {
		keys := make([]string, len(op.Binders))
		for i, b := range op.Binders {
			switch b.Source {
			case dialect.BindOptionsOffset:
				keys[i] = "(options offset)"
			case dialect.BindOptionsLimit:
				keys[i] = "(options limit)"
			default:
				keys[i] = b.Key()
			}
		}
		ui.PrintSection("Parameters")
		ui.PrintList(keys)
	}
	ui.PrintSection("Collections")
	ui.PrintList(op.Collections)

	return nil
}
