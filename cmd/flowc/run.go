package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/flowlang/flow/internal/executor"
	"github.com/flowlang/flow/internal/flowconfig"
	"github.com/flowlang/flow/internal/flowlog"
	"github.com/flowlang/flow/internal/flowprog"
	"github.com/flowlang/flow/internal/hostexpr"
	"github.com/flowlang/flow/internal/trace"
)

type runFlags struct {
	trace bool
}

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <program.yaml>",
		Short: "compile and execute a flowprog YAML program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(cmd, args[0], root, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.trace, "trace", false, "print a trace table after execution")

	return cmd
}

func runProgram(cmd *cobra.Command, path string, root *rootFlags, flags *runFlags) error {
	cfg := flowconfig.Defaults()
	if root.configPath != "" {
		loaded, err := flowconfig.Load(root.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	level := "info"
	if root.verbose {
		level = "debug"
	}
	logger, err := flowlog.New(flowlog.Options{Level: level})
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}

	tree, err := flowprog.LoadFile(path)
	if err != nil {
		return err
	}

	opts := []executor.Option{
		executor.WithEvaluator(hostexpr.New()),
		executor.WithLogger(logger),
	}
	sink := trace.NewSliceSink()
	if flags.trace || cfg.Trace.Enabled {
		opts = append(opts, executor.WithSink(sink))
	}

	ex := executor.New(opts...)
	value, err := ex.Execute(context.Background(), tree)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%v\n", value)

	if flags.trace {
		printTrace(cmd, sink)
	}
	return nil
}

func printTrace(cmd *cobra.Command, sink *trace.SliceSink) {
	runHeader := lipgloss.NewStyle().Bold(true).Render("run")
	header := lipgloss.NewStyle().Bold(true).Render("location")
	valueHeader := lipgloss.NewStyle().Bold(true).Render("value")
	fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-40s %s\n", runHeader, header, valueHeader)
	for _, r := range sink.Records {
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-40s %v\n", r.RunID[:8], r.Loc.String(), r.Value)
	}
}
