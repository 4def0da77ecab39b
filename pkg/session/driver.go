package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrDeclined ends a run early without treating it as a failure: the
// subject chose not to participate.
var ErrDeclined = errors.New("session: subject declined to participate")

// Stage is one step of a scripted workflow.
type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

// Apologizer speaks the failure apology when a stage errors out.
type Apologizer interface {
	Say(text string) error
}

// Driver runs an ordered sequence of stages. Any unrecoverable stage error
// stops the run: it is logged, the apology is spoken to the subject, and the
// error is returned to the caller.
type Driver struct {
	stages  []Stage
	pause   time.Duration
	apology string
	speaker Apologizer
	logger  *slog.Logger

	// OnStage, when set, is notified as each stage begins.
	OnStage func(name string)
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithPause sets the delay between stages (the breathing room the robot
// leaves between topics). Default is 1 second.
func WithPause(d time.Duration) DriverOption {
	return func(dr *Driver) { dr.pause = d }
}

// WithApology sets the sentence spoken when a stage fails.
func WithApology(speaker Apologizer, text string) DriverOption {
	return func(dr *Driver) {
		dr.speaker = speaker
		dr.apology = text
	}
}

// WithDriverLogger sets the logger.
func WithDriverLogger(l *slog.Logger) DriverOption {
	return func(dr *Driver) { dr.logger = l }
}

// NewDriver creates a driver over the given stages.
func NewDriver(stages []Stage, opts ...DriverOption) *Driver {
	d := &Driver{
		stages: stages,
		pause:  time.Second,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "session.driver")
	return d
}

// Run executes the stages in order. A declined run returns nil; any other
// stage error is returned wrapped with the stage name.
func (d *Driver) Run(ctx context.Context) error {
	for i, stage := range d.stages {
		if d.OnStage != nil {
			d.OnStage(stage.Name)
		}
		d.logger.Info("stage started", "stage", stage.Name)

		start := time.Now()
		if err := stage.Run(ctx); err != nil {
			if errors.Is(err, ErrDeclined) {
				d.logger.Info("subject declined, ending run", "stage", stage.Name)
				return nil
			}
			d.logger.Error("stage failed", "stage", stage.Name, "error", err)
			d.apologize()
			return fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		d.logger.Info("stage finished", "stage", stage.Name, "duration", time.Since(start))

		if i < len(d.stages)-1 && d.pause > 0 {
			select {
			case <-time.After(d.pause):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// apologize tells the subject something went wrong, best effort.
func (d *Driver) apologize() {
	if d.speaker == nil || d.apology == "" {
		return
	}
	if err := d.speaker.Say(d.apology); err != nil {
		d.logger.Warn("failed to speak apology", "error", err)
	}
}
