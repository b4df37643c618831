package service

import (
	"context"
	"time"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/cloud"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/dashboard"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/energy"
)

type snapshotInserter interface {
	Insert(ctx context.Context, rec *domain.SnapshotRecord) error
}

// ArchiveSink records each snapshot's headline figures.
type ArchiveSink struct {
	repo snapshotInserter
}

func NewArchiveSink(repo snapshotInserter) *ArchiveSink { return &ArchiveSink{repo: repo} }

func (a *ArchiveSink) Name() string { return "archive" }

func (a *ArchiveSink) Handle(ctx context.Context, s *dashboard.Snapshot) error {
	return a.repo.Insert(ctx, Record(s))
}

// Record flattens a snapshot into its archive row.
func Record(s *dashboard.Snapshot) *domain.SnapshotRecord {
	return &domain.SnapshotRecord{
		AcquisitionID:      s.ID,
		AcquiredAt:         s.AcquiredAt,
		ManualKWh:          s.Comparison.ManualKWh,
		AIKWh:              s.Comparison.AIKWh,
		ImprovementPercent: s.Comparison.Improvement.Percent,
		Classification:     s.Comparison.Improvement.Classification.String(),
		ReportedSavings:    s.Comparison.ReportedSavingsPercent,
		TotalPowerKW:       s.Summary.TotalPowerKW,
		ActiveMachines:     s.Summary.ActiveMachines,
		TotalMachines:      s.Summary.TotalMachines,
	}
}

type payloadPublisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// PublishSink pushes the encoded snapshot to a message broker.
type PublishSink struct {
	pub payloadPublisher
}

func NewPublishSink(pub payloadPublisher) *PublishSink { return &PublishSink{pub: pub} }

func (p *PublishSink) Name() string { return "mqtt" }

func (p *PublishSink) Handle(ctx context.Context, s *dashboard.Snapshot) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	return p.pub.Publish(ctx, b)
}

type snapshotUploader interface {
	UploadSnapshot(ctx context.Context, key string, data []byte) error
}

// ExportSink writes the encoded snapshot to object storage.
type ExportSink struct {
	up snapshotUploader
}

func NewExportSink(up snapshotUploader) *ExportSink { return &ExportSink{up: up} }

func (e *ExportSink) Name() string { return "s3" }

func (e *ExportSink) Handle(ctx context.Context, s *dashboard.Snapshot) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	return e.up.UploadSnapshot(ctx, cloud.SnapshotKey(s.AcquiredAt, s.ID), b)
}

type regressionAlerter interface {
	SendRegressionAlert(ctx context.Context, manualKWh, aiKWh float64, percent int, at time.Time) error
}

// RegressionSink alerts only when the AI period used more energy than the
// manual one.
type RegressionSink struct {
	alerts regressionAlerter
}

func NewRegressionSink(alerts regressionAlerter) *RegressionSink {
	return &RegressionSink{alerts: alerts}
}

func (r *RegressionSink) Name() string { return "sns" }

func (r *RegressionSink) Handle(ctx context.Context, s *dashboard.Snapshot) error {
	c := s.Comparison
	if c.Improvement.Classification != energy.Decreased {
		return nil
	}
	return r.alerts.SendRegressionAlert(ctx, c.ManualKWh, c.AIKWh, c.Improvement.Percent, s.AcquiredAt)
}
