package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	coroengine "github.com/wippyai/coro-engine"
	"github.com/wippyai/coro-engine/api"
	"github.com/wippyai/coro-engine/arena"
	"github.com/wippyai/coro-engine/engine"
)

func main() {
	var (
		workers     = flag.Int("workers", 3, "Number of worker coroutines")
		rounds      = flag.Int("rounds", 4, "Cede rotations each worker performs")
		mask        = flag.Uint("mask", uint(coroengine.SaveAll), "Save-mask applied to workers (hex accepted)")
		debug       = flag.Bool("debug", false, "Enable debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		engine.SetLogger(logger)
		arena.SetLogger(logger)
		api.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*workers, *rounds, coroengine.SaveMask(*mask)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(workers, rounds int, mask coroengine.SaveMask) error {
	sched := engine.New()
	coros := arena.New(sched)
	defer coros.Close()

	// Consume the scheduler the way a dependent module would: through
	// the published table, after the version handshake.
	api.Publish(api.APIName, api.Export(sched))
	table, err := api.Acquire(api.APIName, "coro-run", api.APIVersion)
	if err != nil {
		return err
	}

	fmt.Printf("coroutines: %d  rounds: %d  mask: %#x\n\n", workers, rounds, mask)

	var handles []*arena.Coro
	for i := 0; i < workers; i++ {
		name := fmt.Sprintf("worker-%d", i+1)
		_, c := coros.Spawn(name, func() {
			for r := 1; r <= rounds; r++ {
				live := sched.Live()
				fmt.Printf("  %-10s round %d  nready=%d  topic=%v\n",
					name, r, table.NReady(), live.Topic)
				live.Topic = name
				table.Cede()
			}
		})
		table.Save(c, mask)
		handles = append(handles, c)
	}

	sched.Run(func() {
		for _, c := range handles {
			table.Ready(c)
		}
		fmt.Printf("main: readied %d workers, scheduling\n", table.NReady())
		for table.NReady() > 0 {
			table.Schedule()
		}
	})

	fmt.Printf("\nmain: all workers finished, %d coroutines still in arena\n", coros.Len())
	return nil
}
