// Session command for the tableside CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/tableside/internal/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session [script]",
	Short: "Run floor commands from a script or stdin",
	Long: `Run a service session. Commands are read one per line from the script
file, or from stdin when no file is given or the file is "-". Type "help"
in a session for the command list. The floor lives only for the session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSession,
}

func runSession(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	fl, l, err := openFloor(ctx)
	if err != nil {
		return err
	}
	opts := []session.Option{session.WithLogger(logger.Named("session"))}
	if l != nil {
		defer l.Close()
		opts = append(opts, session.WithSales(l))
	}

	s, err := session.New(fl, cmd.OutOrStdout(), opts...)
	if err != nil {
		return err
	}
	logger.Info("session started", zap.String("session", s.ID()))
	if err := s.Run(ctx, in); err != nil {
		return err
	}
	logger.Info("session ended", zap.String("session", s.ID()), zap.Int("queued", fl.QueueLen()))
	return nil
}
