package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/road-rush/internal/platform/tui"
	"github.com/vovakirdan/road-rush/internal/storage"
)

var (
	flagRunsPlain  bool
	flagRunsPlayer string
	flagRunsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse the run journal",
	Long: `Show recorded runs with their score, level, duration and the mix of
spawn patterns (single/cluster/diagonal/wall) each run saw.

Examples:
  roadrush runs                  # Interactive table (tab switches to per-level totals)
  roadrush runs --plain          # Print to stdout
  roadrush runs --player alice   # Only alice's runs`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print the journal instead of opening the browser")
	runsCmd.Flags().StringVar(&flagRunsPlayer, "player", "", "Only show runs of this player")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to print with --plain")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	if !flagRunsPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunJournal(store, flagRunsPlayer, width, height)
	}

	return printRuns(store)
}

func printRuns(store *storage.Store) error {
	var runs []storage.Run
	var err error
	if flagRunsPlayer != "" {
		runs, err = store.PlayerRuns(flagRunsPlayer, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		return err
	}

	fmt.Println("Road Rush - run journal")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'roadrush play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-6s  %6s  %3s  %6s  %6s  %4s  %s\n",
		"Date", "Player", "Preset", "Score", "Lvl", "Time", "Passed", "Hits", "S/C/D/W")
	fmt.Printf("  %-16s  %-10s  %-6s  %6s  %3s  %6s  %6s  %4s  %s\n",
		"----", "------", "------", "-----", "---", "----", "------", "----", "-------")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-10s  %-6s  %6d  %3d  %6s  %6d  %4d  %d/%d/%d/%d\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(r.Player, 10), r.Preset, r.Score, r.Level,
			tui.FormatDuration(r.Duration), r.Passed, r.Collisions,
			r.SpawnsSingle, r.SpawnsCluster, r.SpawnsDiagonal, r.SpawnsWall,
		)
	}

	levels, err := store.LevelMix()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Spawn patterns by level reached:")
	fmt.Printf("  %5s  %5s  %9s  %7s  %7s  %8s  %5s\n", "Level", "Runs", "Avg score", "Single", "Cluster", "Diagonal", "Wall")
	for _, l := range levels {
		fmt.Printf("  %5d  %5d  %9.0f  %7d  %7d  %8d  %5d\n",
			l.Level, l.Runs, l.AvgScore, l.SpawnsSingle, l.SpawnsCluster, l.SpawnsDiagonal, l.SpawnsWall)
	}

	sum, err := store.Summary()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("%d runs, avg score %.0f, avg level %.1f, %s played\n",
		sum.Runs, sum.AvgScore, sum.AvgLevel, sum.TotalDuration.Round(1e9))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
