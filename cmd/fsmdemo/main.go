// Command fsmdemo runs a hierarchical traffic-light automaton until it is
// interrupted or completes the requested number of cycles.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/comalice/fsmx"
	"github.com/comalice/fsmx/watchdog"
)

type event int

const (
	evNone event = iota
	evTimer
	evShutdown
)

var (
	configPath string
	cycles     int
	interval   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "fsmdemo",
	Short: "Traffic-light demo for the fsmx engine",
	Long: `fsmdemo drives a three-colour traffic light built on the fsmx machine.

The light cycles red -> green -> yellow on a timer. All three colours share a
"powered" parent state that handles the shutdown event, so SIGINT lands the
machine on its stop state from anywhere in the hierarchy.

Configuration is read from the FSM_* environment variables, or from a YAML
file when --config is given.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.Flags().IntVarP(&cycles, "cycles", "n", 12, "Timer events to deliver before shutting down")
	rootCmd.Flags().DurationVarP(&interval, "interval", "i", time.Second, "Delay between timer events")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	wdt := watchdog.NewTimer(func() {
		log.Error("watchdog expired, pump starved")
		os.Exit(1)
	})

	opts := append(cfg.Options(),
		fsmx.WithLogger(log),
		fsmx.WithWatchdog(wdt),
	)
	defer wdt.Disable()

	b := fsmx.NewBuilder[event, fsmx.Signal](opts...)

	b.State("powered").On(evShutdown, "off")
	light(b, "red", "green", log)
	light(b, "green", "yellow", log)
	light(b, "yellow", "red", log)
	b.State("red").Start()
	b.State("off").Stop()
	b.State("broken").Error()

	m, err := b.Build()
	if err != nil {
		return fmt.Errorf("build traffic light: %w", err)
	}

	r := fsmx.NewRunner(m, fsmx.DefaultTick)
	if err := r.Start(context.Background()); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sent := 0
loop:
	for {
		select {
		case <-ticker.C:
			if !m.Raise(evTimer, fsmx.NewSignal()) {
				break loop
			}
			sent++
			if sent >= cycles {
				log.Info("cycle budget spent, shutting down", "cycles", sent)
				m.Raise(evShutdown, fsmx.NewSignal())
				break loop
			}
		case <-sig:
			log.Info("interrupted, shutting down")
			m.Raise(evShutdown, fsmx.NewSignal())
			break loop
		}
	}

	r.Wait()
	log.Info("light is off", "status", m.Status())
	return nil
}

// light wires one colour: a child of "powered" that advances to the next
// colour on the timer event.
func light(b *fsmx.Builder[event, fsmx.Signal], name, next string, log *slog.Logger) {
	b.State(name).
		Parent("powered").
		On(evTimer, next).
		Action(func(fsmx.Signal) error {
			log.Info("light changed", "colour", name)
			return nil
		})
}

func loadConfig() (fsmx.Config, error) {
	if configPath != "" {
		return fsmx.LoadConfigFile(configPath)
	}
	return fsmx.LoadConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
