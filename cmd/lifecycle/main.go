// Command lifecycle is an interactive tour of the bundled lifecycles. Pick
// one, fire actions at it until it reaches a terminal stage, and get the
// action journal plus a Mermaid diagram of the path taken.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/manifoldco/promptui"
	"github.com/stateline-labs/stateline/cli"
	"github.com/stateline-labs/stateline/document"
	"github.com/stateline-labs/stateline/journal"
	"github.com/stateline-labs/stateline/lifecycle"
	"github.com/stateline-labs/stateline/lifecycle/visualizer"
	"github.com/stateline-labs/stateline/order"
	"github.com/stateline-labs/stateline/subscription"
	"github.com/stateline-labs/stateline/telemetry"
)

const quitChoice = "[quit]"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := telemetry.LoadConfigFromEnv("dev")
	if err != nil {
		return err
	}

	if err := telemetry.Initialize(ctx, cfg); err != nil {
		return err
	}

	defer func() {
		if err := telemetry.Shutdown(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	fmt.Print(cli.Banner("stateline lifecycle demo", cli.DefaultWidth))
	fmt.Println()

	entity, err := pickEntity()
	if err != nil {
		return err
	}

	recorder := journal.NewRecorder()
	entity.AddHook(recorder.Hook())

	if err := drive(ctx, entity); err != nil {
		return err
	}

	return report(entity, recorder)
}

// pickEntity asks which lifecycle to explore and creates a fresh entity.
func pickEntity() (*lifecycle.Entity, error) {
	choice, err := cli.SelectOne("Lifecycle", "order", "document", "subscription")
	if err != nil {
		return nil, err
	}

	switch choice {
	case "order":
		o, err := order.New(4999)
		if err != nil {
			return nil, err
		}

		return o.Entity(), nil
	case "document":
		title, err := cli.PromptString("Document title")
		if err != nil {
			return nil, err
		}

		d, err := document.New(title)
		if err != nil {
			return nil, err
		}

		return d.Entity(), nil
	default:
		s, err := subscription.New("monthly")
		if err != nil {
			return nil, err
		}

		return s.Entity(), nil
	}
}

// drive fires user-chosen actions at the entity until it reaches a terminal
// stage or the user quits. Every action in the closed set stays on the menu:
// acknowledgments and rejections are part of the tour.
func drive(ctx context.Context, entity *lifecycle.Entity) error {
	def := entity.Definition()

	for !entity.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Printf("\n%s is %s\n", def.Name, entity.Status())

		choices := make([]string, 0, len(def.Actions())+1)
		for _, action := range def.Actions() {
			choices = append(choices, string(action))
		}

		choices = append(choices, quitChoice)

		choice, err := cli.SelectOne("Action", choices...)
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}

			return err
		}

		if choice == quitChoice {
			return nil
		}

		var data map[string]any

		reason, err := cli.PromptStringEmptyOk("Reason (optional)")
		if err != nil {
			return err
		}

		if reason != "" {
			data = map[string]any{"reason": reason}
		}

		out, err := entity.Apply(ctx, lifecycle.Action(choice), data)
		if err != nil {
			return err
		}

		fmt.Printf("  %s: %s\n", out.Effect, out.Message)
	}

	fmt.Printf("\n%s reached terminal stage %s\n", def.Name, entity.Status())

	return nil
}

// report prints the journal and a diagram highlighting the path taken.
func report(entity *lifecycle.Entity, recorder *journal.Recorder) error {
	if recorder.Len() > 0 {
		fmt.Println("\nJournal:")

		if err := recorder.WriteNDJSON(os.Stdout); err != nil {
			return err
		}
	}

	path := []lifecycle.Tag{entity.Definition().Initial}
	for _, change := range entity.History() {
		if change.Effect == lifecycle.Transitioned {
			path = append(path, change.To)
		}
	}

	diagram, err := visualizer.GenerateMermaidWithOptions(entity.Definition(),
		visualizer.DefaultOptions().WithHighlightPath(path))
	if err != nil {
		return err
	}

	fmt.Println("\nDiagram:")
	fmt.Println(diagram)

	return nil
}
