// Command breedsnp simulates Mendelian inheritance of SNP genotypes over
// several generations and keeps a history of the runs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamimmurad/breedsnp"
)

type app struct {
	configPath string
	verbose    bool

	log    *logrus.Logger
	config *breedsnp.ToolConfig
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{log: newLogger(os.Stderr)}
	if err := a.rootCommand().ExecuteContext(ctx); err != nil {
		a.log.WithError(err).Error("breedsnp failed")
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "breedsnp",
		Short:             "Simulate allele frequency drift over generations of random mating",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "tool config (.toml, .yaml or .ini)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(
		a.simulateCommand(),
		a.sweepCommand(),
		a.historyCommand(),
		a.exportCommand(),
		a.pruneCommand(),
	)
	return root
}

// setup loads the tool config, then applies environment overrides. Command
// flags are applied by each command on top.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}

	a.config = breedsnp.DefaultToolConfig()
	if a.configPath != "" {
		config, err := breedsnp.LoadToolConfig(a.configPath)
		if err != nil {
			return err
		}
		a.config = config
	}
	if err := a.config.ParseEnv(); err != nil {
		return err
	}
	a.log.WithField("config", a.configPath).Debugf("tool config: %+v", *a.config.Simulation)
	return nil
}

func (a *app) openPersistence() (*breedsnp.Persistence, error) {
	persist, err := breedsnp.NewPersistence(a.config.Persistence)
	if err != nil {
		return nil, fmt.Errorf("failed to create or initialize persistence: %w", err)
	}
	return persist, nil
}

// newLogger writes text to a terminal and JSON lines anywhere else.
func newLogger(out *os.File) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}
