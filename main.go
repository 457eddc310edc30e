package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tamagotchi/internal/config"
	"tamagotchi/internal/pet"
	"tamagotchi/internal/ui"
)

// Flags shared by every command
type globalFlags struct {
	dataDir string
	storage string
	envFile string
}

// app is what a command needs once configuration is loaded.
type app struct {
	cfg     config.Config
	store   pet.Store
	closer  io.Closer
	logFile *os.File
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vpet",
		Short: "A virtual pet that grows by learning",
		Long: `vpet is a terminal virtual pet.

Feed it knowledge, play with it and keep its room clean. It ages in real
time, evolves along a path shaped by its personality, and can chat with
you through Claude or OpenAI.

Run without a command to open the interactive view.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default ~/.config/vpet)")
	rootCmd.PersistentFlags().StringVar(&flags.storage, "storage", "", "storage backend: file or sqlite")
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "load settings from this .env file")

	rootCmd.AddCommand(runCmd(a))
	rootCmd.AddCommand(statusCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(adoptCmd(a))
	rootCmd.AddCommand(actCmd(a))
	rootCmd.AddCommand(chaseCmd(a))
	rootCmd.AddCommand(learnCmd(a))
	rootCmd.AddCommand(chatCmd(a))
	rootCmd.AddCommand(remindCmd(a))
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(visitCmd(a))
	rootCmd.AddCommand(aiCmd(a))

	return rootCmd
}

func (a *app) open(flags globalFlags) error {
	var files []string
	if flags.envFile != "" {
		files = append(files, flags.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if flags.storage != "" {
		cfg.Storage = flags.storage
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	f, err := tea.LogToFile(cfg.LogPath(), "vpet")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	store, closer, err := config.OpenStore(cfg)
	if err != nil {
		f.Close()
		return err
	}

	a.cfg = cfg
	a.store = store
	a.closer = closer
	a.logFile = f
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.closer != nil {
		errs = append(errs, a.closer.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

// companion loads the pet, catches it up and applies any AI settings from the environment.
func (a *app) companion(ctx context.Context, sched pet.Scheduler) (*pet.Companion, error) {
	doc, err := pet.LoadOrAdopt(ctx, a.store, pet.NewRand(time.Now().UnixNano()))
	if err != nil {
		return nil, fmt.Errorf("loading pet: %w", err)
	}
	doc.AI = a.cfg.ApplyAI(doc.AI)
	return pet.NewCompanion(doc, sched), nil
}

func (a *app) save(ctx context.Context, c *pet.Companion) error {
	if err := a.store.Save(ctx, c.Document()); err != nil {
		return fmt.Errorf("saving pet: %w", err)
	}
	return nil
}

// withPet runs fn against the saved pet and saves the result.
func (a *app) withPet(ctx context.Context, fn func(*pet.Companion) error) error {
	c, err := a.companion(ctx, nil)
	if err != nil {
		return err
	}
	defer c.Close()
	if err := fn(c); err != nil {
		return err
	}
	return a.save(ctx, c)
}

func (a *app) runTUI(ctx context.Context) error {
	sched := pet.NewTimerScheduler()
	c, err := a.companion(ctx, sched)
	if err != nil {
		return err
	}

	m := ui.NewModel(c, a.store, sched, pet.NewRand(time.Now().UnixNano()))
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if fm, ok := final.(ui.Model); ok {
		c = fm.Pet
	}
	defer c.Close()
	return a.save(ctx, c)
}
