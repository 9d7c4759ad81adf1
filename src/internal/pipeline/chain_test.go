package pipeline

import (
	"testing"

	"logmill/src/internal/config"
	"logmill/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestNewStage(t *testing.T) {
	logger := newTestLogger()

	testCases := []struct {
		name        string
		stageType   string
		expected    string
		expectError bool
	}{
		{
			name:      "Processor",
			stageType: "process",
			expected:  "process",
		},
		{
			name:      "DefaultToProcessor",
			stageType: "",
			expected:  "process",
		},
		{
			name:      "Graylog",
			stageType: "graylog",
			expected:  "graylog",
		},
		{
			name:      "Loki",
			stageType: "loki",
			expected:  "loki",
		},
		{
			name:        "Unknown",
			stageType:   "kafka",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stage, err := NewStage(tc.stageType, nil, logger)
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, stage)
			} else {
				require.NoError(t, err)
				require.NotNil(t, stage)
				assert.Equal(t, tc.expected, stage.Name())
			}
		})
	}
}

func TestNewChain(t *testing.T) {
	logger := newTestLogger()

	t.Run("Success", func(t *testing.T) {
		cfg := &config.PipelineConfig{
			Name: "graylog-out",
			Stages: []config.StageConfig{
				{Type: "process"},
				{Type: "graylog"},
			},
		}
		chain, err := NewChain(cfg, logger)
		require.NoError(t, err)
		assert.Equal(t, "graylog-out", chain.Name())

		stats := chain.GetStats()
		assert.Equal(t, 2, stats["stage_count"])
		assert.Equal(t, []string{"process", "graylog"}, stats["stages"])
	})

	t.Run("BadStage", func(t *testing.T) {
		cfg := &config.PipelineConfig{
			Name:   "broken",
			Stages: []config.StageConfig{{Type: "kafka"}},
		}
		_, err := NewChain(cfg, logger)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "stage[0]")
	})
}

func TestChainApply(t *testing.T) {
	logger := newTestLogger()
	cfg := &config.PipelineConfig{
		Name: "graylog-out",
		Stages: []config.StageConfig{
			{Type: "process"},
			{Type: "graylog"},
		},
	}
	chain, err := NewChain(cfg, logger)
	require.NoError(t, err)

	record, ok := core.DecodeJSON(`{"log":"hello","timestamp":"2023-11-14T22:13:20Z"}`)
	require.True(t, ok)

	emit, ts, out := chain.Apply("svc.test", 1600000000, record)
	require.True(t, emit)
	assert.InDelta(t, 1700000000.0, ts, 1e-9)

	// Canonicalized by the processor, then shaped by the graylog adapter.
	msg, _ := out.Obj().Get("message")
	require.NotNil(t, msg)
	assert.Equal(t, "hello", msg.Text())
	sm, _ := out.Obj().Get("short_message")
	require.NotNil(t, sm)
	assert.Equal(t, "hello", sm.Text())
	src, _ := out.Obj().Get("source")
	require.NotNil(t, src)
	assert.Equal(t, "svc.test", src.Text())

	assert.Equal(t, uint64(1), chain.GetStats()["total_processed"])
}
