//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/polyspec/core/pkg/config"
	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine"
	"github.com/polyspec/core/pkg/engine/styles/wordspec"
	"github.com/polyspec/core/pkg/report"
)

// Runs the demo suite, optionally filtered by a run.yaml:
//
//	go run scripts/run.go [run.yaml]
func main() {
	runCfg := engine.RunConfig{}
	verbose, noColor := false, false

	if len(os.Args) > 1 {
		cfg, err := config.Load(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}
		runCfg = cfg.Engine()
		verbose, noColor = cfg.Verbose, cfg.NoColor
	}

	s := demoSuite()
	if err := s.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "suite error: %v\n", err)
		os.Exit(1)
	}

	var sum report.Summary
	console := report.NewConsole(os.Stdout,
		report.WithVerbose(verbose),
		report.WithNoColor(noColor),
	)

	if err := report.Run(s, runCfg, report.Multi(console, &sum)); err != nil {
		fmt.Fprintf(os.Stderr, "run error: %v\n", err)
		os.Exit(1)
	}

	output := map[string]interface{}{
		"registered": s.CountTests(),
		"passed":     sum.Passed(),
		"failed":     sum.Failed(),
		"pending":    sum.Pending(),
		"ignored":    sum.Ignored(),
	}
	json.NewEncoder(os.Stdout).Encode(output)

	if !sum.OK() {
		os.Exit(1)
	}
}

func demoSuite() *wordspec.Suite {
	s := wordspec.New("QueueSpec")
	s.Subject("A Queue", func(w *wordspec.Subject) {
		w.Should("deliver values in arrival order", func(any) domain.Outcome {
			q := []int{1, 2, 3}
			if q[0] != 1 {
				return domain.Failed(fmt.Errorf("head = %d, want 1", q[0]))
			}
			return domain.Passed()
		})
		w.When("empty", func(w *wordspec.Subject) {
			w.Must("report zero length", func(any) domain.Outcome {
				var q []int
				if len(q) != 0 {
					return domain.Failed(fmt.Errorf("len = %d, want 0", len(q)))
				}
				return domain.Passed()
			})
		})
		w.Ignore(wordspec.Can, "grow beyond its initial capacity", nil, "slow")
	})
	return s
}
