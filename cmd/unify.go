package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/golemcloud/rib/inferred"
	"github.com/golemcloud/rib/internal/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var UnifyCmd = &cobra.Command{
	Use:   "unify facts.yaml",
	Short: "Accumulate the facts about an expression and unify them into a single type",
	Long: `Reads a YAML document with a list of facts known about one expression:

  facts:
    - record: {a: u32}
    - record: {b: string}

merges them in order, then unifies the result. Without --check the unified
type must be fully resolved.`,
	RunE:         runUnify,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	unifyCheckOnly *bool
	unifyYAML      *bool
	unifyLogLevel  *int
)

func init() {
	unifyCheckOnly = UnifyCmd.Flags().BoolP("check", "c", false, "only type check the unified type instead of requiring it to be resolved")
	unifyYAML = UnifyCmd.Flags().Bool("yaml", false, "print the unified type as YAML")
	unifyLogLevel = UnifyCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

// accumulate merges facts in order, starting from nothing known.
func accumulate(facts []*inferred.Type) *inferred.Type {
	acc := inferred.Unknown
	for _, fact := range facts {
		acc = inferred.Update(acc, fact)
	}
	return acc
}

func runUnify(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*unifyLogLevel))

	facts, err := loadFacts(args[0])
	if err != nil {
		return err
	}
	out, err := unifyFacts(facts, *unifyCheckOnly, *unifyYAML)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// Unify reads a facts document and returns the printed unified type, see UnifyCmd.
func Unify(doc []byte, checkOnly, asYAML bool) (string, error) {
	facts, err := parseFacts(doc, "document")
	if err != nil {
		return "", err
	}
	return unifyFacts(facts, checkOnly, asYAML)
}

func unifyFacts(facts []*inferred.Type, checkOnly, asYAML bool) (string, error) {
	merged := accumulate(facts)
	logger.Info("merged facts", "type", merged)

	var unified *inferred.Type
	var err error
	if checkOnly {
		unified, err = inferred.UnifyTypes(merged)
		if err == nil {
			err = inferred.TypeCheck(unified)
		}
	} else {
		unified, err = inferred.UnifyAndVerify(merged)
	}
	if err != nil {
		return "", diagnostics(merged, err)
	}

	out, err := formatType(unified, asYAML)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(out, "\n"), nil
}

func diagnostics(t *inferred.Type, err error) error {
	var errs *inferred.Errors
	if !errors.As(err, &errs) {
		return errors.Wrapf(err, "could not unify %s", t)
	}
	sb := &strings.Builder{}
	for _, msg := range errs.Messages() {
		sb.WriteString("\n  ")
		sb.WriteString(msg)
	}
	return errors.Errorf("could not unify %s:%s", t, sb.String())
}
