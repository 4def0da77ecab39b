package gesture

import (
	"context"
	"log/slog"
	"time"

	"github.com/physiobotics/go-nao/pkg/nao"
)

// standSpeed is the relative speed for returning to the Stand posture.
const standSpeed = 0.8

// Player executes gestures on the robot. Joint command failures are logged
// and skipped rather than aborting the gesture: a missed wave should never
// break the conversation.
type Player struct {
	joints  nao.JointController
	posture nao.PostureController
	logger  *slog.Logger
}

// NewPlayer creates a gesture player.
func NewPlayer(joints nao.JointController, posture nao.PostureController, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		joints:  joints,
		posture: posture,
		logger:  logger.With("component", "gesture.player"),
	}
}

// Play runs the gesture to completion. Only context cancellation is
// returned as an error.
func (p *Player) Play(ctx context.Context, g Gesture) error {
	p.logger.Debug("playing gesture", "gesture", g.Name, "duration", g.Duration())

	for _, step := range g.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.joints.SetAngle(step.Joint, step.Angle, step.Speed); err != nil {
			p.logger.Warn("joint command failed", "gesture", g.Name, "joint", step.Joint, "error", err)
		}
		if step.Wait > 0 {
			select {
			case <-time.After(step.Wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if g.FinalPosture != "" {
		if err := p.posture.GoToPosture(g.FinalPosture, standSpeed); err != nil {
			p.logger.Warn("posture reset failed", "gesture", g.Name, "error", err)
		}
	}
	return nil
}

// Stand returns the robot to the neutral standing posture.
func (p *Player) Stand() error {
	return p.posture.GoToPosture("Stand", standSpeed)
}
