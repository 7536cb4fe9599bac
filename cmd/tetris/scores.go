package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/storage/sqlite"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best scores, highest first. Ties go to the higher level,
then to the earlier game.

Examples:
  tetris scores
  tetris scores --limit 25
  tetris scores --player ada
  tetris scores --redis redis://localhost:6379
  tetris scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("cannot open score store: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	if flagClear {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("cannot clear scores: %w", err)
		}
		fmt.Println("All scores deleted.")
		return nil
	}

	entries, err := store.Top(ctx, flagLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to set the first high score!")
		return nil
	}

	now := time.Now()
	fmt.Printf("  %-4s  %-8s  %11s  %5s  %5s  %s\n", "Rank", "Player", "Score", "Level", "Lines", "Played")
	fmt.Printf("  %-4s  %-8s  %11s  %5s  %5s  %s\n", "----", "------", "-----", "-----", "-----", "------")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-8s  %11s  %5d  %5d  %s\n",
			i+1, e.Player, humanize.Comma(int64(e.Score)), e.Level, e.Lines,
			humanize.RelTime(e.CreatedAt, now, "ago", "from now"))
	}
	fmt.Println()

	player := storage.NormalizePlayer(playerName())
	rank, err := store.Rank(ctx, player)
	if err != nil {
		return fmt.Errorf("cannot compute rank: %w", err)
	}
	if rank > 0 {
		fmt.Printf("%s is ranked %s.\n", player, humanize.Ordinal(rank))
	} else {
		fmt.Printf("%s has no ranked games yet.\n", player)
	}

	if db, ok := store.(*sqlite.Store); ok {
		stats, err := db.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("Games played: %s\n", humanize.Comma(int64(stats.Games)))
		fmt.Printf("Average score: %s\n", humanize.CommafWithDigits(stats.AvgScore, 1))
		fmt.Printf("Lines cleared: %s\n", humanize.Comma(int64(stats.TotalLines)))
		if !stats.LastPlayed.IsZero() {
			fmt.Printf("Last game: %s\n", humanize.Time(stats.LastPlayed))
		}
	}
	return nil
}
