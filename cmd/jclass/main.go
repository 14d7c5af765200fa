package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/jclass/classfile"
	"github.com/dhamidi/jclass/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var version = "dev"

// app holds the configuration shared by all subcommands. It is filled in by
// the root command's PersistentPreRunE.
type app struct {
	configPath string
	format     string
	resolve    bool
	verbose    int
	logFile    string

	cfg *config.Config
}

func (a *app) load(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		a.cfg.Output.Format = a.format
	}
	if flags.Changed("resolve") {
		a.cfg.Decode.Resolve = a.resolve
	}
	if flags.Changed("log") {
		a.cfg.Log.File = a.logFile
	}
	a.cfg.Log.Verbosity += a.verbose
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	commonlog.Initialize(a.cfg.Log.Verbosity, a.cfg.Log.File)
	return nil
}

// parse decodes a class file named on the command line; "-" reads stdin.
func (a *app) parse(path string, extra ...classfile.Option) (*classfile.ClassFile, error) {
	opts := append(a.cfg.DecodeOptions(), extra...)
	if path == "-" {
		return classfile.ParseReader(os.Stdin, opts...)
	}
	return classfile.ParseFile(path, opts...)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "jclass",
		Short:         "Decode JVM class files and their constant pools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to jclass.toml (default: search upwards from the working directory)")
	flags.StringVarP(&a.format, "format", "f", "line", "output format (line, json, cbor)")
	flags.BoolVar(&a.resolve, "resolve", false, "resolve constant pool references while decoding")
	flags.CountVarP(&a.verbose, "verbose", "v", "increase log verbosity")
	flags.StringVar(&a.logFile, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newDumpCmd(a))
	rootCmd.AddCommand(newPoolCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jclass:", err)
		os.Exit(1)
	}
}
