package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tamagotchi/internal/ai"
	"tamagotchi/internal/chase"
	"tamagotchi/internal/pet"
	"tamagotchi/internal/ui"
	"tamagotchi/internal/webpage"
)

// runCmd opens the interactive view, same as running with no command
func runCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the interactive view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

// statusCmd prints the status card
func statusCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show how your pet is doing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPet(cmd.Context(), func(c *pet.Companion) error {
				s := c.Snapshot()
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), s)
				}
				fmt.Fprint(cmd.OutOrStdout(), ui.RenderStatusCard(s))
				fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", pet.GetStatusWithLabel(s))
				return a.printLastSaved(cmd)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full state as JSON")
	return cmd
}

// savedAter is implemented by stores that can report their last write.
type savedAter interface {
	UpdatedAt(ctx context.Context) (time.Time, error)
}

func (a *app) printLastSaved(cmd *cobra.Command) error {
	u, ok := a.store.(savedAter)
	if !ok {
		return nil
	}
	at, err := u.UpdatedAt(cmd.Context())
	switch {
	case errors.Is(err, pet.ErrNoSavedPet):
		fmt.Fprintln(cmd.OutOrStdout(), "Last saved: never")
	case err != nil:
		return fmt.Errorf("reading save time: %w", err)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Last saved: %s\n", at.Local().Format(time.DateTime))
	}
	return nil
}

// statsCmd opens the full-screen stats view
func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Open the full-screen stats view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPet(cmd.Context(), func(c *pet.Companion) error {
				return ui.DisplayStats(c.Snapshot())
			})
		},
	}
}

// adoptCmd names a newborn pet
func adoptCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "adopt [name]",
		Short: "Adopt a new pet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := pet.DefaultPetName
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				name = strings.TrimSpace(args[0])
			}

			aiCfg := pet.AIConfig{Provider: pet.ProviderNone}
			saved, err := a.store.Load(ctx)
			switch {
			case errors.Is(err, pet.ErrNoSavedPet):
			case err != nil:
				return err
			default:
				if saved.State.IsAlive && !force {
					return fmt.Errorf("%s is still alive; use --force to replace them", saved.State.Name)
				}
				aiCfg = saved.AI
			}

			s := pet.Adopt(name, pet.NewRand(time.Now().UnixNano()), pet.TimeNow())
			if err := a.store.Save(ctx, pet.Document{State: s, AI: aiCfg, SavedAt: pet.TimeNow()}); err != nil {
				return fmt.Errorf("saving pet: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🐣 Welcome, %s!\n", s.Name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace a living pet")
	return cmd
}

// actCmd runs an owner action
func actCmd(a *app) *cobra.Command {
	names := make([]string, 0, len(pet.Actions))
	for name := range pet.Actions {
		names = append(names, name)
	}
	return &cobra.Command{
		Use:       "act <action>",
		Short:     "Care for your pet: feed, play, clean, sleep, wake, medicine, train, clean-environment",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPet(cmd.Context(), func(c *pet.Companion) error {
				ok, err := c.Act(args[0])
				if err != nil {
					return err
				}
				s := c.Snapshot()
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s didn't want to %s right now.\n", s.Name, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", pet.GetStatusWithLabel(s))
				return nil
			})
		},
	}
}

// chaseCmd plays with the pet full screen; a catch counts as a play session
func chaseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "chase [butterfly|ball|mouse]",
		Short:     "Let your pet chase something",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"butterfly", "ball", "mouse"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			target, err := chase.LookupTarget(name)
			if err != nil {
				return err
			}
			return a.withPet(cmd.Context(), func(c *pet.Companion) error {
				s := c.Snapshot()
				if !s.IsAlive || s.Sleeping() {
					return fmt.Errorf("%s can't play right now", s.Name)
				}
				caught, err := chase.Run(s, target)
				if err != nil {
					return err
				}
				if !caught {
					fmt.Fprintf(cmd.OutOrStdout(), "The %s got away!\n", target.Name)
					return nil
				}
				if !c.Do(pet.Play) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s caught the %s but is too tired to keep playing.\n", s.Name, target.Name)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "🎉 %s caught the %s!\n", s.Name, target.Name)
				return nil
			})
		},
	}
}

// learnCmd feeds knowledge typed in, read from a file, or fetched from a page
func learnCmd(a *app) *cobra.Command {
	var title, content, category, file, url string
	var tags []string
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Feed your pet some knowledge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var page *pet.Page
			var in pet.KnowledgeInput
			var err error
			switch {
			case url != "":
				f := webpage.NewFetcher(a.cfg.HTTPTimeout)
				f.MaxBytes = a.cfg.FetchMaxSize
				p, err := f.Fetch(ctx, url)
				if err != nil {
					return err
				}
				page = &p
			case file != "":
				in, err = pet.KnowledgeFromFile(file)
			default:
				in, err = pet.NewManualKnowledge(title, content, category, tags)
			}
			if err != nil {
				return err
			}

			return a.withPet(ctx, func(c *pet.Companion) error {
				var ok bool
				if page != nil {
					ok = c.LearnPage(*page)
				} else {
					ok = c.Learn(in)
				}
				s := c.Snapshot()
				if !ok {
					return fmt.Errorf("%s could not learn that", s.Name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "📚 %s learned %q (%d things known)\n", s.Name, s.Knowledge[0].Title, len(s.Knowledge))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "title of the knowledge")
	cmd.Flags().StringVar(&content, "content", "", "the knowledge itself")
	cmd.Flags().StringVar(&category, "category", "", "optional category")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags (repeatable)")
	cmd.Flags().StringVar(&file, "file", "", "learn from a text file")
	cmd.Flags().StringVar(&url, "url", "", "learn from a web page")
	cmd.MarkFlagsMutuallyExclusive("file", "url", "content")
	return cmd
}

// chatCmd sends one message to the pet
func chatCmd(a *app) *cobra.Command {
	var apply bool
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Talk to your pet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := ai.NewClient(a.cfg.AIOptions())
			return a.withPet(ctx, func(c *pet.Companion) error {
				reply, err := client.Talk(ctx, c, strings.Join(args, " "))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s %s: %s\n", pet.MoodEmoji(c.Snapshot().Mood), c.Snapshot().Name, reply.Text)
				if sug := reply.Suggestion; sug != nil {
					fmt.Fprintf(out, "💡 %s: %s\n", sug.Title, sug.Message)
					if apply && sug.HasAction() {
						if _, err := c.Act(sug.Action); err != nil {
							return err
						}
						fmt.Fprintf(out, "Done: %s\n", sug.Action)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "carry out the action the pet suggests")
	return cmd
}

// remindCmd manages reminders
func remindCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage reminders",
	}

	var typ, message, at string
	var in time.Duration
	var every int
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Schedule a reminder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when := pet.TimeNow().Add(in)
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("parsing --at: %w", err)
				}
				when = t
			}
			return a.withPet(cmd.Context(), func(c *pet.Companion) error {
				r, err := c.AddReminder(pet.ReminderInput{
					Type:              pet.ReminderType(typ),
					Title:             strings.Join(args, " "),
					Message:           message,
					ScheduledFor:      when,
					RecurringInterval: every,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "⏰ %s %q at %s\n", r.ID, r.Title, r.ScheduledFor.Local().Format(time.Kitchen))
				return nil
			})
		},
	}
	add.Flags().StringVar(&typ, "type", string(pet.ReminderCustom), "task, care or custom")
	add.Flags().StringVar(&message, "message", "", "reminder message")
	add.Flags().DurationVar(&in, "in", 0, "fire after this long")
	add.Flags().StringVar(&at, "at", "", "fire at this RFC 3339 time")
	add.Flags().IntVar(&every, "every", 0, "repeat every N minutes")

	list := &cobra.Command{
		Use:   "list",
		Short: "List pending reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPet(cmd.Context(), func(c *pet.Companion) error {
				pending := pet.PendingReminders(c.Snapshot())
				if len(pending) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No pending reminders.")
					return nil
				}
				for _, r := range pending {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s %s  %s\n", r.ID, r.Type, r.ScheduledFor.Local().Format(time.RFC3339), r.Title)
				}
				return nil
			})
		},
	}

	resolve := func(use, short string, fn func(*pet.Companion, string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withPet(cmd.Context(), func(c *pet.Companion) error {
					return fn(c, args[0])
				})
			},
		}
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Deliver reminders that are due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPet(cmd.Context(), func(c *pet.Companion) error {
				for _, r := range c.CheckReminders() {
					fmt.Fprintf(cmd.OutOrStdout(), "🔔 %s: %s\n", r.Title, r.Message)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, check,
		resolve("complete", "Mark a reminder done", (*pet.Companion).CompleteReminder),
		resolve("dismiss", "Dismiss a reminder", (*pet.Companion).DismissReminder),
	)
	return cmd
}

// exportCmd writes conversations, knowledge or a visitor card as JSON
func exportCmd(a *app) *cobra.Command {
	var output, message string
	var noKnowledge bool
	cmd := &cobra.Command{
		Use:       "export <conversations|knowledge|card>",
		Short:     "Export data as JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"conversations", "knowledge", "card"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPet(cmd.Context(), func(c *pet.Companion) error {
				s := c.Snapshot()
				now := pet.TimeNow()
				var payload any
				switch args[0] {
				case "conversations":
					payload = pet.ExportConversations(s, now)
				case "knowledge":
					payload = pet.ExportKnowledge(s, now)
				case "card":
					payload = pet.ExportVisitorCard(s, message, !noKnowledge, now)
				default:
					return fmt.Errorf("unknown export %q", args[0])
				}

				out := cmd.OutOrStdout()
				if output != "" && output != "-" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("creating %s: %w", output, err)
					}
					defer f.Close()
					out = f
				}
				return writeJSON(out, payload)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&message, "message", "", "greeting on the visitor card")
	cmd.Flags().BoolVar(&noKnowledge, "no-knowledge", false, "leave knowledge gifts off the visitor card")
	return cmd
}

// visitCmd imports a friend's visitor card
func visitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "visit <card.json|->",
		Short: "Receive a visit from a friend's pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading visitor card: %w", err)
			}
			card, err := pet.ParseVisitorCard(data)
			if err != nil {
				return err
			}
			return a.withPet(cmd.Context(), func(c *pet.Companion) error {
				if !c.Visit(card) {
					return fmt.Errorf("%s can't receive visitors right now", c.Snapshot().Name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "👋 %s came to visit and brought %d gifts\n", card.Name, len(card.KnowledgeGifts))
				return nil
			})
		},
	}
}

// aiCmd selects the chat provider
func aiCmd(a *app) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "ai <none|claude|openai>",
		Short: "Choose the AI provider for chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pet.ParseAIProvider(args[0])
			if err != nil {
				return err
			}
			return a.withPet(cmd.Context(), func(c *pet.Companion) error {
				c.SetAIProvider(p, key)
				fmt.Fprintf(cmd.OutOrStdout(), "AI provider set to %s\n", p)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "API key for the provider")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
