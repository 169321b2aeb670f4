package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfsmx/hfsmx"
	"github.com/hfsmx/hfsmx/preset"
	"github.com/hfsmx/hfsmx/runtime"
)

var (
	runMachine string
	runTicks   uint64
	runRate    time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Build a definition and drive it tick by tick",
	Long: `run builds the definition and drives it until the root machine
completes, printing every emitted trace line. Blackboard writes queued by
set behaviors are applied between ticks.`,
	Args: cobra.ExactArgs(1),
	RunE: runDefinition,
}

func init() {
	runCmd.Flags().StringVar(&runMachine, "machine", "", "machine to start (default: first in the file)")
	runCmd.Flags().Uint64Var(&runTicks, "ticks", 0, "stop after this many ticks (0 = run until done)")
	runCmd.Flags().DurationVar(&runRate, "rate", 50*time.Millisecond, "tick interval")
	rootCmd.AddCommand(runCmd)
}

func runDefinition(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	def, err := preset.NewDecoder().LoadDefinition(args[0])
	if err != nil {
		return err
	}
	store, err := def.Build()
	if err != nil {
		return err
	}

	stack := hfsmx.NewStack[preset.World, *preset.Effects]()
	if runMachine == "" {
		stack.Enter(0)
	} else {
		h, ok := store.LookupMachine(runMachine)
		if !ok {
			return fmt.Errorf("no machine named %q", runMachine)
		}
		stack.Enter(h)
	}

	bb := hfsmx.NewBlackboard()
	sink := &preset.Effects{}
	runner := runtime.New(store, stack, runtime.Config{
		TickRate: runRate,
		MaxTicks: runTicks,
		Logger:   log,
	})

	drain := func() {
		for _, line := range sink.Trace {
			fmt.Println(line)
		}
		sink.Trace = sink.Trace[:0]
		sink.Apply(bb)
	}

	status, err := runner.Run(cmd.Context(), func(uint64) (preset.World, *preset.Effects) {
		drain()
		return bb, sink
	})
	drain()
	if err != nil {
		return err
	}
	log.Infow("run finished", "status", status.String(), "ticks", runner.Tick())
	return nil
}
