package main

import (
	"fmt"

	"github.com/dhamidi/jclass/format"
	"github.com/spf13/cobra"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file.class>...",
		Short: "Dump the structure of one or more class files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.NewEncoder(a.cfg.Output.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			for _, filename := range args {
				cf, err := a.parse(filename)
				if err != nil {
					return fmt.Errorf("parse %s: %w", filename, err)
				}
				if err := enc.Encode(format.NewClass(cf)); err != nil {
					return fmt.Errorf("encode %s: %w", a.cfg.Output.Format, err)
				}
			}
			return nil
		},
	}
}
