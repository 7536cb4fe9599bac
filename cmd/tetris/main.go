// tetris plays the falling-block puzzle in the terminal.
//
// Usage:
//
//	tetris list              - List the difficulty modes
//	tetris play [mode]       - Play one game
//	tetris menu              - Start the menu to pick modes and view scores
//	tetris serve             - Start SSH server for remote play
//	tetris scores            - Show the leaderboard
//	tetris config            - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.tetris/scores.db)
//	--redis <url>        - Keep scores in Redis instead of SQLite
//	--no-save            - Keep scores in memory only
//	--config <path>      - Game configuration YAML
//	--difficulty <name>  - easy, normal, hard or fixed
//	--player <name>      - Name recorded with scores (default: $USER)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/storage/memory"
	redisstore "github.com/vovakirdan/tui-tetris/internal/storage/redis"
	"github.com/vovakirdan/tui-tetris/internal/storage/sqlite"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagRedisURL    string
	flagRedisPrefix string
	flagNoSave      bool
	flagConfig      string
	flagDifficulty  string
	flagPlayer      string
	flagLogLevel    string
	flagLogFile     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - the falling-block puzzle in your terminal",
	Long: `Tetris in your terminal. Clear full rows to score; every ten lines the
level rises and pieces fall faster.

Available commands:
  list     - Show the difficulty modes
  play     - Play a game directly
  menu     - Interactive menu with mode picker and leaderboard
  serve    - Start SSH server for remote play
  scores   - View the leaderboard
  config   - Print the effective configuration

Examples:
  tetris play
  tetris play --difficulty hard
  tetris menu --player ada
  tetris serve --ssh :2222 --redis redis://localhost:6379
  tetris scores --limit 20`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")
	pf.StringVar(&flagRedisURL, "redis", "", "Redis URL; stores scores in Redis instead of the database")
	pf.StringVar(&flagRedisPrefix, "redis-prefix", redisstore.DefaultConfig().KeyPrefix, "Key prefix for the Redis leaderboard")
	pf.BoolVar(&flagNoSave, "no-save", false, "Keep scores in memory for this run only")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name recorded with scores")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write game logs to this file (serve logs to stderr)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a logger at the --log-level level writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "tetris",
	}), nil
}

// tuiLogger returns the logger for full-screen commands. The terminal belongs
// to the UI, so logs go to --log-file or nowhere.
func tuiLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		logger, err := newLogger(io.Discard)
		return logger, func() {}, err
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// openStore opens the score backend selected by the flags: memory with
// --no-save, Redis with --redis, otherwise the SQLite database at --db.
func openStore() (storage.ScoreStore, error) {
	switch {
	case flagNoSave:
		return memory.New(memory.WithCapacity(storage.DefaultLimit)), nil
	case flagRedisURL != "":
		cfg := redisstore.DefaultConfig()
		cfg.URL = flagRedisURL
		cfg.KeyPrefix = flagRedisPrefix
		store, err := redisstore.New(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := sqlite.Open(flagDBPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

// loadGameConfig loads and validates the game configuration and picks the
// mode matching --difficulty.
func loadGameConfig() (config.TetrisConfig, string, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return config.TetrisConfig{}, "", err
	}
	if err := cfg.Validate(); err != nil {
		return config.TetrisConfig{}, "", err
	}
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return config.TetrisConfig{}, "", err
	}
	for _, p := range config.Presets {
		c := cfg
		config.ApplyTetrisPreset(&c, p)
		if err := c.Validate(); err != nil {
			return config.TetrisConfig{}, "", fmt.Errorf("%s preset: %w", p, err)
		}
	}
	modeID, err := registry.ForDifficulty(preset)
	if err != nil {
		return config.TetrisConfig{}, "", err
	}
	return cfg, modeID, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// playerName returns the name scores are saved under.
func playerName() string {
	if flagPlayer == "" {
		return storage.DefaultPlayer
	}
	return flagPlayer
}
