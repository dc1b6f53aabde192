package cmd

import (
	"fmt"
	"log/slog"

	"github.com/golemcloud/rib/inferred"
	"github.com/golemcloud/rib/internal/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check facts.yaml",
	Short:        "Type check every listed type on its own, and report the parts left unresolved",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var checkLogLevel *int

func init() {
	checkLogLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*checkLogLevel))

	facts, err := loadFacts(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for i, fact := range facts {
		status := "ok"
		if err := inferred.TypeCheck(fact); err != nil {
			status = err.Error()
			failed++
		}
		if msg, unresolved := inferred.UnResolved(fact); unresolved {
			status += ", unresolved: " + msg
		}
		if _, err := fmt.Fprintf(out, "%d: %s: %s\n", i, fact, status); err != nil {
			return err
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d types failed to type check", failed, len(facts))
	}
	return nil
}
