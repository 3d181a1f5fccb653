package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mongolift/mongolift/cmd/mongolift/internal/ui"
	"github.com/mongolift/mongolift/internal/adapters/database/mongodb"
	"github.com/mongolift/mongolift/pkg/dialect"
)

var execCmd = &cobra.Command{
	Use:   "exec [request-file]",
	Short: "Translate a statement and run it against the configured server",
	Long: `Translate a JSON statement envelope, bind its parameters from the
request's bindings and options, and run the resulting command against the
configured MongoDB server. Prints the server reply as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
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

	ctx := context.Background()
	adapter := mongodb.NewAdapter(cfg)
	if err := adapter.Connect(ctx); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	defer func() {
		_ = adapter.Disconnect(ctx)
	}()

	reply, err := adapter.Execute(ctx, op, req.bindings(), req.options())
	if err != nil {
		ui.PrintError("%v", err)
		return err
	}

	out, err := json.MarshalIndent(reply, "", "  ")
	if err != nil {
		return fmt.Errorf("encode reply: %w", err)
	}
	fmt.Println(string(out))
	ui.PrintSuccess("command executed against %s", cfg.Database)

	return nil
}
