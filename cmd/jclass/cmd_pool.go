package main

import (
	"encoding/json"
	"fmt"

	"github.com/dhamidi/jclass/format"
	"github.com/spf13/cobra"
)

func newPoolCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pool <file.class>",
		Short: "List every constant pool slot of a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := a.parse(args[0])
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			class := format.NewClass(cf)

			switch a.cfg.Output.Format {
			case "line":
				return format.NewLinePoolEncoder(cmd.OutOrStdout()).Encode(class)
			case "json":
				data, err := json.MarshalIndent(class.Constants, "", "  ")
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			default:
				return fmt.Errorf("pool does not support format %s (expected line or json)", a.cfg.Output.Format)
			}
		},
	}
}
