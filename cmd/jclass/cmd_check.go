package main

import (
	"fmt"

	"github.com/dhamidi/jclass/classfile"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.class>...",
		Short: "Decode, resolve and validate class files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, filename := range args {
				cf, err := a.parse(filename, classfile.WithResolve())
				if err == nil {
					err = cf.Check()
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL\t%s\t%v\n", filename, err)
					continue
				}
				fmt.Fprintf(out, "ok\t%s\t%s\n", filename, cf.ClassName())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d class files failed", failed, len(args))
			}
			return nil
		},
	}
}
