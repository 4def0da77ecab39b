package session

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type apologySpeaker struct {
	said []string
}

func (s *apologySpeaker) Say(text string) error {
	s.said = append(s.said, text)
	return nil
}

func TestDriverRunsStagesInOrder(t *testing.T) {
	var order []string
	stage := func(name string) Stage {
		return Stage{Name: name, Run: func(ctx context.Context) error {
			order = append(order, name)
			return nil
		}}
	}

	d := NewDriver(
		[]Stage{stage("greet"), stage("questions"), stage("conclude")},
		WithPause(0),
	)

	var announced []string
	d.OnStage = func(name string) { announced = append(announced, name) }

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.Join(order, ","); got != "greet,questions,conclude" {
		t.Errorf("stage order = %s", got)
	}
	if got := strings.Join(announced, ","); got != "greet,questions,conclude" {
		t.Errorf("OnStage order = %s", got)
	}
}

func TestDriverStopsOnFailure(t *testing.T) {
	boom := errors.New("motor fault")
	var ran []string

	speaker := &apologySpeaker{}
	d := NewDriver([]Stage{
		{Name: "first", Run: func(ctx context.Context) error {
			ran = append(ran, "first")
			return nil
		}},
		{Name: "second", Run: func(ctx context.Context) error {
			return boom
		}},
		{Name: "third", Run: func(ctx context.Context) error {
			ran = append(ran, "third")
			return nil
		}},
	}, WithPause(0), WithApology(speaker, "Something went wrong."))

	err := d.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want wrapped motor fault", err)
	}
	if !strings.Contains(err.Error(), "stage second") {
		t.Errorf("error does not name the stage: %v", err)
	}
	if len(ran) != 1 {
		t.Errorf("stages run after failure: %v", ran)
	}
	if len(speaker.said) != 1 || speaker.said[0] != "Something went wrong." {
		t.Errorf("apology = %v", speaker.said)
	}
}

func TestDriverDeclinedIsNotFailure(t *testing.T) {
	speaker := &apologySpeaker{}
	var concluded bool

	d := NewDriver([]Stage{
		{Name: "consent", Run: func(ctx context.Context) error {
			return ErrDeclined
		}},
		{Name: "questions", Run: func(ctx context.Context) error {
			concluded = true
			return nil
		}},
	}, WithPause(0), WithApology(speaker, "Something went wrong."))

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run after decline: %v", err)
	}
	if concluded {
		t.Error("stages ran after decline")
	}
	if len(speaker.said) != 0 {
		t.Errorf("apology spoken for a decline: %v", speaker.said)
	}
}

func TestDriverHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	d := NewDriver([]Stage{
		{Name: "first", Run: func(context.Context) error {
			cancel()
			return nil
		}},
		{Name: "second", Run: func(context.Context) error {
			t.Error("second stage ran after cancel")
			return nil
		}},
	})

	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
}
