package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagPersonaFile string
	flagLogFormat   string
	flagLogLevel    string
	flagParallel    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   AppName,
	Short: "Answer questions in the voice of a persona",
	Long: `gopersona answers questions as a configured persona.

Each question is wrapped in the persona's prompt prefix, optionally with
chain-of-thought instructions, and sent to OpenAI and Gemini. When both
answer, a judge model picks the better response.

API keys are read from OPENAI_API_KEY and GEMINI_API_KEY (or a .env file).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPersonaFile, "persona-file", "", "YAML or TOML file with extra personas (overrides PERSONA_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: json or text (overrides LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&flagParallel, "parallel", false, "ask backends concurrently")

	rootCmd.AddCommand(askCmd, personasCmd, discordCmd, mcpCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(ExitFailure)
	}
}
