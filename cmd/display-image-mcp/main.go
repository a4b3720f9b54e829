package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ironsheep/display-image-tools/internal/config"
	"github.com/ironsheep/display-image-tools/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("display-image-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("display-image-mcp - MCP server for display image preparation")
			fmt.Println()
			fmt.Println("Usage: display-image-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_MCP_LOG_LEVEL=debug    Override the configured log level")
			fmt.Println("  IMAGE_MCP_CONFIG=<path>      Load an additional config file")
			fmt.Println()
			fmt.Println("Config files (later wins):")
			fmt.Println("  $XDG_CONFIG_HOME/display-image-tools/config.toml")
			fmt.Println("  ./config.toml")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Log to stderr (stdout is for MCP protocol)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load config")
	}

	levelName := cfg.Log.Level
	if env := os.Getenv("IMAGE_MCP_LOG_LEVEL"); env != "" {
		levelName = env
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		logger.Warn().Str("level", levelName).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	logger.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Str("browser", cfg.Screenshot.Browser).
		Msg("display image MCP server starting")

	server.Version = Version
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}
	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
