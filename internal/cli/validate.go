package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	steplineerrors "github.com/stepline/stepline/internal/errors"
	"github.com/stepline/stepline/internal/script"
)

// AddValidateCommand adds the validate command to the root command.
func AddValidateCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "validate <script>...",
		Short: "Check script files without running them",
		Long: `Validate loads each named script file and checks its structure.

This catches YAML syntax errors, missing step types, and misplaced
body/args fields. While loop arguments are only validated when a loop is
entered at run time, so validate does not check them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateScripts(cmd, args)
		},
	}

	root.AddCommand(cmd)
}

func validateScripts(cmd *cobra.Command, paths []string) error {
	logger := GetLogger()

	cwd, err := os.Getwd()
	if err != nil {
		return steplineerrors.Wrap(err, "failed to determine working directory")
	}
	loader := script.NewLoader(cwd)

	out := cmd.OutOrStdout()
	var firstErr error
	for _, path := range paths {
		s, err := loader.LoadFromFile(path)
		if err != nil {
			logger.Error().Str("script", path).Err(err).Msg("validation failed")
			fmt.Fprintf(out, "FAIL   %s\n       %v\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprintf(out, "OK     %s (%d steps)\n", path, len(s.Steps))
	}

	return firstErr
}
