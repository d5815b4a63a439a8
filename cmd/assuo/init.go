package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/assuo/pkg/errors"
	"github.com/arthur-debert/assuo/pkg/filesystem"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [file]",
		Short: MsgInitShort,
		Long:  MsgInitLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := DefaultDocument
			if len(args) == 1 {
				target = args[0]
			}

			fs := filesystem.NewOS()
			if _, err := fs.Stat(target); err == nil {
				return errors.Newf(errors.ErrConfigInvalid, "%q already exists", target)
			}
			if err := fs.WriteFile(target, []byte(InitTemplate), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %q", target)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", target)
			return nil
		},
	}
}
