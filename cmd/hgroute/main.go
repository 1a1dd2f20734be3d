// Command hgroute routes a hypergraph problem file and prints the result.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ShiboSoftwareDev/hypergraph/internal/observability"
	"github.com/ShiboSoftwareDev/hypergraph/internal/project"
	"github.com/ShiboSoftwareDev/hypergraph/internal/solver"
	"github.com/ShiboSoftwareDev/hypergraph/internal/version"
)

func main() {
	problemPath := flag.String("problem", "", "Path to problem file (.hgproj)")
	variant := flag.String("variant", "", "Override routing variant: jumper or via")
	maxIterations := flag.Int("max-iterations", 0, "Override base iteration budget")
	metricsListen := flag.String("metrics-listen", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("hgroute %s\n", version.Version)
		return
	}
	if *problemPath == "" {
		fmt.Println("Usage: hgroute -problem <path> [-variant jumper|via] [-max-iterations N] [-v]")
		os.Exit(1)
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	proj, err := project.Load(*problemPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load problem: %v\n", err)
		os.Exit(1)
	}
	if *variant != "" {
		proj.Variant = *variant
	}
	if *maxIterations > 0 {
		proj.BaseMaxIterations = *maxIterations
	}

	opts, err := proj.SolverOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad solver options: %v\n", err)
		os.Exit(1)
	}

	if *metricsListen != "" {
		collector, err := observability.NewSolverCollector(nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register metrics: %v\n", err)
			os.Exit(1)
		}
		opts.Collector = collector
		go func() {
			http.Handle("/metrics", collector.Handler())
			if err := http.ListenAndServe(*metricsListen, nil); err != nil {
				log.Warnf("metrics listener stopped: %v", err)
			}
		}()
	}

	s, err := solver.NewFromSerialized(proj.Graph, proj.Connections, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build solver: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Routing %q: %d regions, %d ports, %d connections (%s variant)\n",
		proj.Name, len(proj.Graph.Regions), len(proj.Graph.Ports),
		len(proj.Connections), opts.Variant.Name())

	solveErr := s.Solve()

	for _, route := range s.Routes() {
		marker := " "
		if route.RequiredRip {
			marker = "*"
		}
		fmt.Printf("%s %-16s %2d hops  cost %7.2f  %s\n",
			marker, route.Connection.ID, route.Hops(), route.Cost(),
			strings.Join(route.RegionIDs(), " -> "))
	}

	fmt.Printf("%d/%d connections routed in %d iterations (budget %d)\n",
		len(s.Routes()), len(proj.Connections), s.Iterations(), s.MaxIterations())

	if solveErr != nil {
		fmt.Fprintf(os.Stderr, "Routing failed: %v\n", solveErr)
		os.Exit(1)
	}
}
