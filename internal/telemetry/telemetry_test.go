package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCount(t *testing.T) {
	m := NewMetrics()
	m.Frame()
	m.Frame()
	m.Substep(7)
	m.Substep(3)
	m.Death()
	m.Level(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.frames))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.substeps))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.candidates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deaths))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.level))
	assert.Zero(t, testutil.ToFloat64(m.wraps))

	n, err := testutil.GatherAndCount(m.Registry())
	require.NoError(t, err)
	assert.Equal(t, 9, n)
}

func TestMetricsSeparateSessions(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.Advance()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.advances))
	assert.Zero(t, testutil.ToFloat64(b.advances))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Frame()
	m.Substep(1)
	m.Rebuild()
	m.Wrap()
	m.ScreenMove()
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.Wrap()
	path := filepath.Join(t.TempDir(), "session.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "platformer_wraps_total 1")
}

func TestTraceWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTraceWriter(&buf)
	require.NoError(t, tw.Write(FrameRecord{Frame: 1, X: 15, Action: "none"}))
	require.NoError(t, tw.Write(FrameRecord{Frame: 2, X: 16, Action: "kill"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "frame,level,"))

	var back []FrameRecord
	require.NoError(t, gocsv.UnmarshalString(buf.String(), &back))
	require.Len(t, back, 2)
	assert.Equal(t, "kill", back[1].Action)
	assert.Equal(t, 16.0, back[1].X)
}

func TestCreateTrace(t *testing.T) {
	tw, err := CreateTrace("")
	require.NoError(t, err)
	assert.Nil(t, tw)
	assert.NoError(t, tw.Write(FrameRecord{}))
	assert.NoError(t, tw.Close())

	path := filepath.Join(t.TempDir(), "trace.csv")
	tw, err = CreateTrace(path)
	require.NoError(t, err)
	require.NoError(t, tw.Write(FrameRecord{Frame: 1}))
	require.NoError(t, tw.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frame,")
}
