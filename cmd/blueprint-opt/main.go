// Command blueprint-opt runs the quantum-walk fixture optimizer over a
// blueprint's fixture candidates and writes per-sector selection results.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-blueprint/pkg/extract"
	"github.com/dd0wney/cluso-blueprint/pkg/fixture"
	"github.com/dd0wney/cluso-blueprint/pkg/logging"
	"github.com/dd0wney/cluso-blueprint/pkg/metrics"
	"github.com/dd0wney/cluso-blueprint/pkg/pipeline"
	"github.com/dd0wney/cluso-blueprint/pkg/veil"
)

func main() {
	var (
		inputPath   = flag.String("input", "", "Input file: fixture node list (.json) or blueprint export (.svg)")
		outputPath  = flag.String("output", "results.json", "Output path for optimization results")
		configPath  = flag.String("config", "", "Optional YAML configuration file")
		profileName = flag.String("profile", "all_layers", "Layer visibility profile")
		workers     = flag.Int("workers", 0, "Worker count override (0 = one per CPU)")
		compress    = flag.Bool("compress", false, "Snappy-compress the output")
		metricsAddr = flag.String("metrics-addr", "", "Optional address to serve Prometheus metrics on")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: blueprint-opt -input <nodes.json|plan.svg> [-output results.json]")
		os.Exit(2)
	}

	cfg := pipeline.DefaultConfig()
	if *configPath != "" {
		loaded, err := pipeline.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	registry := metrics.NewRegistry()

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, registry, logger)
	}

	nodes, err := loadNodes(*inputPath, cfg)
	if err != nil {
		logger.Error("failed to load input", logging.Path(*inputPath), logging.Error(err))
		os.Exit(1)
	}
	logger.Info("loaded fixture candidates", logging.Path(*inputPath), logging.NodeCount(len(nodes)))

	p, err := pipeline.New(cfg, logger, registry)
	if err != nil {
		logger.Error("failed to build pipeline", logging.Error(err))
		os.Exit(1)
	}

	profile := veil.ParseLayerProfile(*profileName)
	report, err := p.Run(nodes, profile)
	if err != nil {
		logger.Error("pipeline run failed", logging.Error(err))
		os.Exit(1)
	}

	doc := pipeline.BuildExport(report, profile.String())
	if err := pipeline.WriteResults(*outputPath, doc, *compress); err != nil {
		logger.Error("failed to write results", logging.Path(*outputPath), logging.Error(err))
		os.Exit(1)
	}

	logger.Info("results written",
		logging.Path(*outputPath),
		logging.Int("sectors", len(report.Results)),
		logging.Int("failed_sectors", len(report.Failures)),
		logging.DroppedNodes(report.Partition.DroppedNodes))
}

// loadNodes reads fixture candidates from either a pre-extracted JSON
// node list or an SVG blueprint export classified against the symbol
// library.
func loadNodes(path string, cfg pipeline.Config) ([]fixture.Node, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		shapes, err := extract.ParseSVG(path)
		if err != nil {
			return nil, err
		}
		return extract.IdentifyFixtures(shapes, cfg.Symbols), nil
	case ".json":
		return extract.LoadNodes(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}
}

// serveMetrics exposes the Prometheus registry over HTTP
func serveMetrics(addr string, registry *metrics.Registry, logger logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry.GetPrometheusRegistry(), promhttp.HandlerOpts{}))

	logger.Info("serving metrics", logging.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", logging.Error(err))
	}
}
