package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/assuo/internal/version"
	"github.com/arthur-debert/assuo/pkg/config"
	"github.com/arthur-debert/assuo/pkg/engine"
	"github.com/arthur-debert/assuo/pkg/errors"
	"github.com/arthur-debert/assuo/pkg/filesystem"
	"github.com/arthur-debert/assuo/pkg/logging"
)

// DefaultDocument is the patch document used when neither a file, a
// URL, nor piped stdin is given.
const DefaultDocument = "assuo.toml"

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		filePath  string
		urlAddr   string
	)

	rootCmd := &cobra.Command{
		Use:     "assuo [file]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if filePath != "" || urlAddr != "" {
					return errors.New(errors.ErrConfigInvalid,
						"give the patch document as an argument, --file, or --url, not several")
				}
				filePath = args[0]
			}
			if filePath != "" && urlAddr != "" {
				return errors.New(errors.ErrConfigInvalid, "--file and --url are mutually exclusive")
			}
			return runPatch(cmd, filePath, urlAddr)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", MsgFlagFile)
	rootCmd.Flags().StringVarP(&urlAddr, "url", "u", "", MsgFlagURL)

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// runPatch compiles one patch document and writes the result verbatim
// to stdout. No trailing newline is added.
func runPatch(cmd *cobra.Command, filePath, urlAddr string) error {
	eng := engine.New(filesystem.NewOS(), nil)

	var (
		out []byte
		err error
	)
	switch {
	case urlAddr != "":
		out, err = eng.CompileURL(urlAddr)

	case filePath != "":
		out, err = eng.CompileFile(filePath)

	case stdinIsPiped(cmd.InOrStdin()):
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return errors.Wrap(readErr, errors.ErrFileRead, "cannot read patch document from stdin")
		}
		doc, parseErr := config.Parse(data)
		if parseErr != nil {
			return parseErr
		}
		out, err = eng.Compile(doc)

	default:
		if _, statErr := os.Stat(DefaultDocument); statErr != nil {
			_ = cmd.Help()
			return errors.Newf(errors.ErrFileRead, "no %s found in the working directory", DefaultDocument)
		}
		out, err = eng.CompileFile(DefaultDocument)
	}
	if err != nil {
		return err
	}

	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot write output")
	}
	return nil
}

// stdinIsPiped reports whether stdin carries piped data rather than a
// terminal. Only the real os.Stdin is probed; replaced readers (tests)
// always count as piped.
func stdinIsPiped(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	if f != os.Stdin {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "assuo version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}
