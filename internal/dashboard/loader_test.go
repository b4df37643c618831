package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/energy"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/models"
)

type fakeSource struct {
	summary  models.Summary
	machines []models.Machine
	logs     []models.AILog
	compare  models.EnergyComparison

	summaryErr  error
	machinesErr error
	logsErr     error
	compareErr  error
	panicLogs   bool

	calls atomic.Int32
}

func (f *fakeSource) Summary(ctx context.Context) (models.Summary, error) {
	f.calls.Add(1)
	return f.summary, f.summaryErr
}

func (f *fakeSource) Machines(ctx context.Context) ([]models.Machine, error) {
	f.calls.Add(1)
	return f.machines, f.machinesErr
}

func (f *fakeSource) AILogs(ctx context.Context) ([]models.AILog, error) {
	f.calls.Add(1)
	if f.panicLogs {
		panic("decoder exploded")
	}
	return f.logs, f.logsErr
}

func (f *fakeSource) EnergyCompare(ctx context.Context) (models.EnergyComparison, error) {
	f.calls.Add(1)
	return f.compare, f.compareErr
}

func ptr[T any](v T) *T { return &v }

func fixedLoader(src Source) *Loader {
	l := NewLoader(src)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	l.newID = func() string { return "acq-1" }
	return l
}

func fullSource() *fakeSource {
	return &fakeSource{
		summary: models.Summary{
			TotalPowerKW:       ptr(12.5),
			ActiveMachines:     ptr(3),
			TotalMachines:      ptr(5),
			AverageTemperature: ptr(22.4),
		},
		machines: []models.Machine{{ID: 1, Name: "AC-1"}, {ID: 2, Name: "Fan-2"}},
		logs:     makeLogs(3),
		compare: models.EnergyComparison{
			ManualPeriodKWh: ptr(100.0),
			AIPeriodKWh:     ptr(80.0),
			SavingsPercent:  ptr(19.6),
		},
	}
}

func makeLogs(n int) []models.AILog {
	logs := make([]models.AILog, n)
	for i := range logs {
		logs[i] = models.AILog{MachineName: fmt.Sprintf("m-%02d", i), ActionType: "TURN ON"}
	}
	return logs
}

func TestLoadBuildsSnapshot(t *testing.T) {
	src := fullSource()
	snap, err := fixedLoader(src).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(4), src.calls.Load())
	assert.Equal(t, "acq-1", snap.ID)
	assert.Equal(t, Summary{TotalPowerKW: 12.5, ActiveMachines: 3, TotalMachines: 5, AverageTemperature: 22.4}, snap.Summary)
	assert.Len(t, snap.Machines, 2)
	assert.Len(t, snap.Logs, 3)

	assert.Equal(t, 100.0, snap.Comparison.ManualKWh)
	assert.Equal(t, 80.0, snap.Comparison.AIKWh)
	assert.Equal(t, 19.6, snap.Comparison.ReportedSavingsPercent)
	assert.Equal(t, 20, snap.Comparison.Improvement.Percent)
	assert.Equal(t, energy.Improved, snap.Comparison.Improvement.Classification)
}

func TestLoadDefaultsMissingFields(t *testing.T) {
	src := &fakeSource{
		summary: models.Summary{TotalPowerKW: ptr(4.0)},
	}
	snap, err := fixedLoader(src).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0.0, snap.Summary.AverageTemperature)
	assert.Equal(t, 0, snap.Summary.TotalMachines)
	assert.NotNil(t, snap.Machines)
	assert.Empty(t, snap.Machines)
	assert.NotNil(t, snap.Logs)
	assert.Empty(t, snap.Logs)
	assert.Equal(t, 0, snap.Comparison.Improvement.Percent)
	assert.Equal(t, energy.NoChange, snap.Comparison.Improvement.Classification)
	assert.True(t, snap.Comparison.Improvement.NoBaseline)
}

func TestLoadTruncatesLogsInOrder(t *testing.T) {
	src := fullSource()
	src.logs = makeLogs(20)

	snap, err := fixedLoader(src).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Logs, MaxLogs)
	for i, l := range snap.Logs {
		assert.Equal(t, fmt.Sprintf("m-%02d", i), l.MachineName)
	}
}

func TestLoadDoesNotAliasSourceSlices(t *testing.T) {
	src := fullSource()
	snap, err := fixedLoader(src).Load(context.Background())
	require.NoError(t, err)

	src.machines[0].Name = "mutated"
	src.logs[0].MachineName = "mutated"
	assert.Equal(t, "AC-1", snap.Machines[0].Name)
	assert.Equal(t, "m-00", snap.Logs[0].MachineName)
}

func TestLoadFailsWhenAnyReadFails(t *testing.T) {
	boom := errors.New("connection refused")
	src := fullSource()
	src.machinesErr = boom
	src.compareErr = errors.New("502 Bad Gateway")

	snap, err := fixedLoader(src).Load(context.Background())
	assert.Nil(t, snap)
	require.Error(t, err)

	var acqErr *AcquisitionError
	require.ErrorAs(t, err, &acqErr)
	assert.Equal(t, "acq-1", acqErr.ID)
	assert.Equal(t, []string{ResourceMachines, ResourceEnergyCompare}, acqErr.Resources())
	assert.ErrorIs(t, err, boom)
	// every read still ran to completion
	assert.Equal(t, int32(4), src.calls.Load())
}

func TestLoadRecoversPanickingRead(t *testing.T) {
	src := fullSource()
	src.panicLogs = true

	var snap *Snapshot
	var err error
	require.NotPanics(t, func() {
		snap, err = fixedLoader(src).Load(context.Background())
	})
	assert.Nil(t, snap)
	var acqErr *AcquisitionError
	require.ErrorAs(t, err, &acqErr)
	assert.Equal(t, []string{ResourceAILogs}, acqErr.Resources())
	assert.Contains(t, err.Error(), "decoder exploded")
}
