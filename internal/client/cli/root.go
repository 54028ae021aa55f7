package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
)

// RootCommand builds the command tree bound to a.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vitals",
		Short:         "VitalKeeper: daily health journal with streaks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.progress.Startup(cmd.Context())
			return err
		},
	}

	root.AddCommand(
		a.statusCmd(),
		a.historyCmd(),
		a.journalCmd(),
		a.completeCmd("challenge", a.activities.CompleteChallenge),
		a.completeCmd("task", a.activities.CompleteTask),
		a.logCmd(),
		a.summaryCmd(),
		a.nameCmd(),
		a.resetCmd(),
		a.syncCmd(),
		a.leaderboardCmd(),
		a.exportCmd(),
	)
	return root
}

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.progress.Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, themeFor(out).status(st))
			return nil
		},
	}
}

func (a *App) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Journal entries per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counts, err := a.activities.History(cmd.Context())
			if err != nil {
				return err
			}
			days := make([]string, 0, len(counts))
			for d := range counts {
				days = append(days, d)
			}
			sort.Strings(days)

			out := cmd.OutOrStdout()
			for _, d := range days {
				fmt.Fprintf(out, "%s  %d\n", d, counts[d])
			}
			return nil
		},
	}
}

func (a *App) journalCmd() *cobra.Command {
	journal := &cobra.Command{
		Use:   "journal",
		Short: "Write and read journal entries",
	}

	var title, body string
	var mood int
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a journal entry (counts toward the streak)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.activities.AddJournalEntry(cmd.Context(), title, body, mood)
			if err != nil {
				return err
			}
			a.printRecorded(cmd, p)
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "entry title")
	add.Flags().StringVar(&body, "body", "", "entry text")
	add.Flags().IntVar(&mood, "mood", 0, "optional mood 1..5")
	_ = add.MarkFlagRequired("title")

	var day string
	list := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				items []models.Activity
				err   error
			)
			if day == "" {
				items, err = a.activities.ListJournal(cmd.Context())
			} else {
				items, err = a.activities.ListDay(cmd.Context(), day)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, it := range items {
				if it.Kind != models.KindJournal {
					continue
				}
				e, err := models.Decode[models.JournalEntry](it)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s  %s\n", it.Day, e.Title)
				if e.Body != "" {
					fmt.Fprintf(out, "    %s\n", e.Body)
				}
			}
			return nil
		},
	}
	list.Flags().StringVar(&day, "day", "", "only this day (YYYY-MM-DD)")

	journal.AddCommand(add, list)
	return journal
}

type completeFunc func(ctx context.Context, id string, reward models.Reward) (models.Profile, error)

func (a *App) completeCmd(kind string, complete completeFunc) *cobra.Command {
	parent := &cobra.Command{
		Use:   kind,
		Short: "Complete a " + kind,
	}

	var xp, coins int
	done := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a " + kind + " as completed (counts toward the streak)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := complete(cmd.Context(), args[0], models.Reward{XP: xp, Coins: coins})
			if err != nil {
				return err
			}
			a.printRecorded(cmd, p)
			return nil
		},
	}
	done.Flags().IntVar(&xp, "xp", 0, "experience reward")
	done.Flags().IntVar(&coins, "coins", 0, "coin reward")

	parent.AddCommand(done)
	return parent
}

func (a *App) printRecorded(cmd *cobra.Command, p models.Profile) {
	out := cmd.OutOrStdout()
	t := themeFor(out)
	fmt.Fprintf(out, "%s streak %d, level %d, %d XP, %d coins\n",
		t.good.Render("recorded."), p.Streak, p.Level(), p.XP, p.Coins)
}

func (a *App) logCmd() *cobra.Command {
	logs := &cobra.Command{
		Use:   "log",
		Short: "Record mood, sleep, water or exercise",
	}

	var note string
	mood := &cobra.Command{
		Use:   "mood <1..5>",
		Short: "Log a mood score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("mood score: %w", err)
			}
			return a.logged(cmd)(a.activities.LogMood(cmd.Context(), score, note))
		},
	}
	mood.Flags().StringVar(&note, "note", "", "optional note")

	sleep := &cobra.Command{
		Use:   "sleep <hours>",
		Short: "Log hours slept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("sleep hours: %w", err)
			}
			return a.logged(cmd)(a.activities.LogSleep(cmd.Context(), hours))
		},
	}

	water := &cobra.Command{
		Use:   "water <glasses>",
		Short: "Log glasses of water",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			glasses, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("glasses: %w", err)
			}
			return a.logged(cmd)(a.activities.LogWater(cmd.Context(), glasses))
		},
	}

	var kind string
	exercise := &cobra.Command{
		Use:   "exercise <minutes>",
		Short: "Log exercise minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("minutes: %w", err)
			}
			return a.logged(cmd)(a.activities.LogExercise(cmd.Context(), minutes, kind))
		},
	}
	exercise.Flags().StringVar(&kind, "kind", "", "kind of exercise")

	logs.AddCommand(mood, sleep, water, exercise)
	return logs
}

func (a *App) logged(cmd *cobra.Command) func(*models.Activity, error) error {
	return func(act *models.Activity, err error) error {
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logged %s for %s\n", act.Kind, act.Day)
		return nil
	}
}

func (a *App) summaryCmd() *cobra.Command {
	var day string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Totals of one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.activities.DailySummary(cmd.Context(), day)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			t := themeFor(out)
			fmt.Fprintln(out, t.title.Render(s.Day))
			fmt.Fprintf(out, "journal:   %d\n", s.JournalEntries)
			fmt.Fprintf(out, "completed: %d\n", s.Completions)
			fmt.Fprintf(out, "water:     %d glasses\n", s.WaterGlasses)
			fmt.Fprintf(out, "sleep:     %.1f h\n", s.SleepHours)
			fmt.Fprintf(out, "exercise:  %d min\n", s.ExerciseMinutes)
			if s.MoodSamples > 0 {
				fmt.Fprintf(out, "mood:      %.1f (%d)\n", s.MoodAverage, s.MoodSamples)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "day (YYYY-MM-DD), today by default")
	return cmd
}

func (a *App) nameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name <display name>",
		Short: "Set the name shown on the leaderboard",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.progress.SetDisplayName(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "display name set to %q\n", p.DisplayName)
			return nil
		},
	}
}

func (a *App) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start over with a fresh profile (logs are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("%w: reset erases streak, XP and coins, pass --yes to confirm", common.ErrInvalidArgument)
			}
			if _, err := a.progress.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "progress reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
