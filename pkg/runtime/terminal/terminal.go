package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/loyalty-tools/receipt-points/pkg/runtime/terminal/commands"
	"github.com/loyalty-tools/receipt-points/pkg/runtime/terminal/export"
	"github.com/loyalty-tools/receipt-points/pkg/services/validation"
)

// CLI represents the command-line interface
type CLI struct {
	validator *validation.Validator
	reporter  *export.Reporter
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		validator: validation.NewValidator(),
		reporter:  export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipt-points",
		Short: "Receipt reward points tool",
	}

	cmd.AddCommand(commands.NewScoreCmd(cli.validator, cli.reporter))

	return cmd
}
