// Package pipeline wires configured processing stages into ordered chains.
package pipeline

import (
	"fmt"
	"sync/atomic"

	"logmill/src/internal/config"
	"logmill/src/internal/core"
	"logmill/src/internal/process"
	"logmill/src/internal/sink"
	"logmill/src/internal/version"

	"github.com/lixenwraith/log"
)

// Stage is one per-record transform: it receives the routing tag, the
// ingest timestamp and the record, and returns the record with its possibly
// updated timestamp. Stages in this module always emit; the flag exists for
// contract symmetry with the invoking shipper.
type Stage interface {
	Process(tag string, ts float64, record *core.Value) (emit bool, out float64, result *core.Value)
	Name() string
}

// NewStage constructs a stage by configured type name.
func NewStage(typ string, options map[string]any, logger *log.Logger) (Stage, error) {
	// Default to the canonicalization stage if no type specified
	switch typ {
	case "", "process":
		return process.NewProcessor(options, logger)
	case "graylog":
		return sink.NewGraylogAdapter(options, logger)
	case "loki":
		return sink.NewLokiAdapter(options, logger)
	default:
		return nil, fmt.Errorf("unknown stage type: %s", typ)
	}
}

// Chain applies an ordered sequence of stages to each record.
type Chain struct {
	name   string
	stages []Stage
	logger *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
}

// NewChain creates a chain from a pipeline configuration.
func NewChain(cfg *config.PipelineConfig, logger *log.Logger) (*Chain, error) {
	chain := &Chain{
		name:   cfg.Name,
		stages: make([]Stage, 0, len(cfg.Stages)),
		logger: logger,
	}

	for i, sc := range cfg.Stages {
		stage, err := NewStage(sc.Type, sc.Options, logger)
		if err != nil {
			return nil, fmt.Errorf("stage[%d]: %w", i, err)
		}
		chain.stages = append(chain.stages, stage)
	}

	logger.Info("msg", "Pipeline chain created",
		"component", "pipeline",
		"pipeline", cfg.Name,
		"stage_count", len(chain.stages))
	return chain, nil
}

// Name returns the chain's configured name.
func (c *Chain) Name() string {
	return c.name
}

// Apply runs record through every stage in order. Chains never drop
// records: emit is always true.
func (c *Chain) Apply(tag string, ts float64, record *core.Value) (bool, float64, *core.Value) {
	c.totalProcessed.Add(1)

	for _, stage := range c.stages {
		_, ts, record = stage.Process(tag, ts, record)
	}
	return true, ts, record
}

// GetStats returns aggregated statistics for the chain.
func (c *Chain) GetStats() map[string]any {
	stageNames := make([]string, len(c.stages))
	for i, stage := range c.stages {
		stageNames[i] = stage.Name()
	}

	return map[string]any{
		"pipeline":        c.name,
		"version":         version.Short(),
		"stage_count":     len(c.stages),
		"stages":          stageNames,
		"total_processed": c.totalProcessed.Load(),
	}
}
