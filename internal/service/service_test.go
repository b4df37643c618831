package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/dashboard"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/energy"
)

func snapshot(manual, ai float64) *dashboard.Snapshot {
	return &dashboard.Snapshot{
		ID:         "acq-1",
		AcquiredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Summary:    dashboard.Summary{TotalPowerKW: 12.5, ActiveMachines: 3, TotalMachines: 5},
		Comparison: dashboard.Comparison{
			ManualKWh:              manual,
			AIKWh:                  ai,
			ReportedSavingsPercent: 19.6,
			Improvement:            energy.Improvement(manual, ai),
		},
	}
}

type recordingSink struct {
	name  string
	err   error
	seen  []*dashboard.Snapshot
	ctxOK bool
}

func (r *recordingSink) Name() string { return r.name }
func (r *recordingSink) Handle(ctx context.Context, s *dashboard.Snapshot) error {
	_, r.ctxOK = ctx.Deadline()
	r.seen = append(r.seen, s)
	return r.err
}

func TestDispatchContinuesPastFailingSink(t *testing.T) {
	failing := &recordingSink{name: "broken", err: errors.New("down")}
	ok := &recordingSink{name: "ok"}
	svcs := New(time.Second, failing, ok)

	svcs.Dispatch(context.Background(), snapshot(100, 80))

	assert.Len(t, failing.seen, 1)
	assert.Len(t, ok.seen, 1)
	assert.True(t, ok.ctxOK)
	assert.Equal(t, []string{"broken", "ok"}, svcs.Enabled())
}

func TestDispatchWithoutTimeout(t *testing.T) {
	sink := &recordingSink{name: "s"}
	New(0, sink).Dispatch(context.Background(), snapshot(100, 80))
	assert.False(t, sink.ctxOK)
}

type fakeRepo struct{ rec *domain.SnapshotRecord }

func (f *fakeRepo) Insert(_ context.Context, rec *domain.SnapshotRecord) error {
	f.rec = rec
	return nil
}

func TestArchiveSink(t *testing.T) {
	repo := &fakeRepo{}
	require.NoError(t, NewArchiveSink(repo).Handle(context.Background(), snapshot(100, 80)))

	assert.Equal(t, "acq-1", repo.rec.AcquisitionID)
	assert.Equal(t, 20, repo.rec.ImprovementPercent)
	assert.Equal(t, "improved", repo.rec.Classification)
	assert.Equal(t, 19.6, repo.rec.ReportedSavings)
	assert.Equal(t, 5, repo.rec.TotalMachines)
}

type fakePublisher struct{ payload []byte }

func (f *fakePublisher) Publish(_ context.Context, payload []byte) error {
	f.payload = payload
	return nil
}

func TestPublishSinkEncodesSnapshot(t *testing.T) {
	pub := &fakePublisher{}
	require.NoError(t, NewPublishSink(pub).Handle(context.Background(), snapshot(100, 80)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(pub.payload, &decoded))
	assert.Equal(t, "acq-1", decoded["id"])
	improvement := decoded["compare"].(map[string]any)["improvement"].(map[string]any)
	assert.Equal(t, "improved", improvement["classification"])
	assert.Equal(t, 20.0, improvement["percent"])
}

type fakeUploader struct{ key string }

func (f *fakeUploader) UploadSnapshot(_ context.Context, key string, _ []byte) error {
	f.key = key
	return nil
}

func TestExportSinkUsesDatedKey(t *testing.T) {
	up := &fakeUploader{}
	require.NoError(t, NewExportSink(up).Handle(context.Background(), snapshot(100, 80)))
	assert.Equal(t, "snapshots/2024/05/01/acq-1.json", up.key)
}

type fakeAlerter struct{ calls int }

func (f *fakeAlerter) SendRegressionAlert(context.Context, float64, float64, int, time.Time) error {
	f.calls++
	return nil
}

func TestRegressionSinkOnlyAlertsOnDecrease(t *testing.T) {
	alerts := &fakeAlerter{}
	sink := NewRegressionSink(alerts)

	require.NoError(t, sink.Handle(context.Background(), snapshot(100, 80)))
	require.NoError(t, sink.Handle(context.Background(), snapshot(0, 80)))
	assert.Equal(t, 0, alerts.calls)

	require.NoError(t, sink.Handle(context.Background(), snapshot(80, 100)))
	assert.Equal(t, 1, alerts.calls)
}
