package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/skirmishgame/skirmish/internal/config"
	"github.com/skirmishgame/skirmish/internal/level"
	"github.com/skirmishgame/skirmish/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            Skirmish  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m     headless simulation core runner       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mgame:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	fmt.Printf("  %-20s \033[32m%d\033[0m\n", label, count)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func run() error {
	// 1. Load config
	cfgPath := "config/skirmish.toml"
	if p := os.Getenv("SKIRMISH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Game.Name)

	// 3. Load the level
	printSection("level")

	levelPath := cfg.Game.Level
	if len(os.Args) > 1 {
		levelPath = os.Args[1]
	}
	data, err := level.Load(levelPath)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	printStat("tiles", data.Level.Width*data.Level.Height)
	printStat("objects", len(data.Objects))
	if data.Script != "" {
		printOK("level script: " + data.Script)
	}

	// 4. Build the session
	session, err := sim.New(cfg, data, rand.Int63(), log)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	defer session.Close()
	printOK("session ready")
	fmt.Println()

	// 5. Fixed-tick loop until completion, game over or a signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(float64(time.Second) * cfg.Sim.DT()))
	defer ticker.Stop()

	log.Info("simulation started",
		zap.String("level", data.Level.Name),
		zap.Int("tick_rate", cfg.Sim.TickRate))

	for {
		select {
		case <-sig:
			log.Info("shutdown requested")
			return nil
		case <-ticker.C:
			sum := session.Tick(sim.Intents{})
			for _, snd := range sum.Sounds {
				log.Debug("sound", zap.String("name", snd.Name))
			}
			if sum.PlayerDied {
				log.Info("player died", zap.Int("lives", sum.Lives))
			}
			if sum.LevelComplete {
				log.Info("level complete",
					zap.String("trigger", sum.CompletedBy),
					zap.Int("kills", sum.Kills),
					zap.Float64("time", session.Time()))
				return nil
			}
			if sum.GameOver {
				log.Info("game over",
					zap.Int("kills", sum.Kills),
					zap.Float64("time", session.Time()))
				return nil
			}
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
