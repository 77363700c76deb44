package tilewave

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tilewave/distribution"
	"github.com/hupe1980/tilewave/world"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogger_Messages(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf).WithArea(3, 4).WithRegion(2)

	l.LogSelectCollapseArea(0, 0, 4, 4, 16, time.Millisecond, nil)
	l.LogCollapse(8, 8, 8, nil)
	l.LogContradiction(5, 6, nil)
	l.LogGenerate(context.Background(), 4, 64, time.Second, nil)

	out := buf.String()
	assert.Contains(t, out, `"msg":"collapse area selected"`)
	assert.Contains(t, out, `"msg":"collapse completed"`)
	assert.Contains(t, out, `"msg":"contradiction"`)
	assert.Contains(t, out, `"msg":"generate completed"`)
	assert.Contains(t, out, `"area_x":3`)
	assert.Contains(t, out, `"region":2`)
}

func TestLogger_Errors(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.LogSelectCollapseArea(0, 0, 4, 4, 0, 0, ErrResourceExhausted)
	l.LogCollapse(8, 2, 6, ErrContradiction)
	l.LogGenerate(context.Background(), 1, 0, 0, context.Canceled)

	out := buf.String()
	assert.Contains(t, out, `"msg":"select collapse area failed"`)
	assert.Contains(t, out, `"msg":"collapse aborted"`)
	assert.Contains(t, out, `"msg":"generate failed"`)
	assert.Contains(t, out, "resource exhausted")
}

func TestLogger_Solver(t *testing.T) {
	ts := axialTileset(t)
	w := world.New(ts, 8)

	var buf bytes.Buffer
	sp := newSolver(t, w, distribution.NewSingleArea(weightedDistribution(t, ts)), WithLogger(newBufferLogger(&buf)))
	require.NoError(t, sp.SelectCollapseArea(0, 0, 2, 2))
	collapseAll(t, sp)

	out := buf.String()
	assert.Contains(t, out, `"msg":"superposition created"`)
	assert.Contains(t, out, `"simd"`)
	assert.Contains(t, out, `"kernels":"unroll`)
	assert.Contains(t, out, `"pending":4`)
	assert.Contains(t, out, `"remaining":0`)
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	l.LogCollapse(1, 1, 0, nil)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
