package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rener2104/dramctrl/internal/signal"
)

func TestLoadTraceSplitsByOp(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "trace-*.csv")
	require.NoError(t, err)

	_, err = f.WriteString("# comment\n0x1000,R\n2000,W\n0x3000,P\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	u, err := loadTrace(f.Name())
	require.NoError(t, err)

	require.Len(t, u.read, 1)
	require.Equal(t, uint64(0x1000), u.read[0].PhysicalAddress)

	require.Len(t, u.write, 1)
	require.Equal(t, uint64(0x2000), u.write[0].PhysicalAddress)

	require.Len(t, u.prefetch, 1)
	require.Equal(t, uint64(0x3000), u.prefetch[0].PhysicalAddress)
}

func TestLoadTraceRejectsUnknownOp(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "trace-*.csv")
	require.NoError(t, err)

	_, err = f.WriteString("0x1000,X\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = loadTrace(f.Name())
	require.Error(t, err)
}

func TestDequeueAndDone(t *testing.T) {
	u := &traceUpstream{sink: &countingSink{}}
	u.read = append(u.read, signal.RequestBuilder{}.WithPhysicalAddress(1).Build())

	require.False(t, u.Done())

	u.DequeueRead(1)

	require.True(t, u.Done())
}
