package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/models"
)

const (
	ResourceSummary       = "summary"
	ResourceMachines      = "machines"
	ResourceAILogs        = "ai-logs"
	ResourceEnergyCompare = "energy-compare"
)

// Source provides the four reads the dashboard is built from.
type Source interface {
	Summary(ctx context.Context) (models.Summary, error)
	Machines(ctx context.Context) ([]models.Machine, error)
	AILogs(ctx context.Context) ([]models.AILog, error)
	EnergyCompare(ctx context.Context) (models.EnergyComparison, error)
}

type Loader struct {
	src   Source
	now   func() time.Time
	newID func() string
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src, now: time.Now, newID: uuid.NewString}
}

// Load runs the four reads concurrently and waits until every one has settled.
// A single failed read fails the whole acquisition; no partial snapshot is
// returned.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	id := l.newID()

	var (
		r        raw
		failures [4]error
		g        errgroup.Group
	)

	// Each read owns its slot in r and failures, so no locking is needed.
	g.Go(func() error {
		return acquire(&failures[0], func() (err error) {
			r.summary, err = l.src.Summary(ctx)
			return err
		})
	})
	g.Go(func() error {
		return acquire(&failures[1], func() (err error) {
			r.machines, err = l.src.Machines(ctx)
			return err
		})
	})
	g.Go(func() error {
		return acquire(&failures[2], func() (err error) {
			r.logs, err = l.src.AILogs(ctx)
			return err
		})
	})
	g.Go(func() error {
		return acquire(&failures[3], func() (err error) {
			r.compare, err = l.src.EnergyCompare(ctx)
			return err
		})
	})
	_ = g.Wait()

	names := [4]string{ResourceSummary, ResourceMachines, ResourceAILogs, ResourceEnergyCompare}
	var acqErr *AcquisitionError
	for i, err := range failures {
		if err == nil {
			continue
		}
		if acqErr == nil {
			acqErr = &AcquisitionError{ID: id}
		}
		acqErr.Failures = append(acqErr.Failures, ResourceError{Resource: names[i], Err: err})
	}
	if acqErr != nil {
		return nil, acqErr
	}

	return normalize(id, l.now(), r), nil
}

// acquire stores the outcome of fn in slot, converting a panic into an error.
func acquire(slot *error, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
		*slot = err
	}()
	return fn()
}
