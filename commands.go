package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dmetrikx/goPersonaChatter/internal/ai"
	"github.com/Dmetrikx/goPersonaChatter/internal/bot"
	"github.com/Dmetrikx/goPersonaChatter/internal/cot"
	"github.com/Dmetrikx/goPersonaChatter/internal/mcpserver"
	"github.com/Dmetrikx/goPersonaChatter/internal/persona"
	"github.com/Dmetrikx/goPersonaChatter/internal/responder"
)

var (
	askPersona    string
	askNoCoT      bool
	askNoCompare  bool
	askSteps      bool
	askTranscript bool
	askVerbose    bool
	askTimeout    time.Duration

	personasRender bool
)

// askCmd answers a single question
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question as a persona",
	Long: `Answers a question in the voice of a persona.

Example:
  gopersona ask --persona amitabh "How do I deal with failure?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// personasCmd lists registered personas
var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List registered personas",
	RunE:  runPersonas,
}

// discordCmd runs the Discord bot
var discordCmd = &cobra.Command{
	Use:   "discord",
	Short: "Run the Discord bot (requires DISCORD_TOKEN)",
	RunE:  runDiscord,
}

// mcpCmd serves the persona tools over MCP stdio
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve ask_persona and list_personas as MCP tools over stdio",
	RunE:  runMCP,
}

func init() {
	askCmd.Flags().StringVarP(&askPersona, "persona", "p", persona.AmitabhID, "persona id")
	askCmd.Flags().BoolVar(&askNoCoT, "no-cot", false, "skip chain-of-thought prompting")
	askCmd.Flags().BoolVar(&askNoCompare, "no-compare", false, "ask only the primary backend")
	askCmd.Flags().BoolVar(&askSteps, "steps", false, "use step-by-step JSON reasoning")
	askCmd.Flags().BoolVar(&askTranscript, "transcript", false, "use Thought:/Response: reasoning")
	askCmd.MarkFlagsMutuallyExclusive("steps", "transcript")
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "print every candidate and the judge's choice")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", DefaultTimeout, "overall request timeout")

	personasCmd.Flags().BoolVar(&personasRender, "render", false, "print each persona's full prompt prefix")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
	defer cancel()

	a, err := newApp(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}

	opts := responder.Options{
		UseCoT:        !askNoCoT,
		CompareModels: !askNoCompare,
	}
	switch {
	case askSteps:
		opts.Formatter = cot.StepFormatter{}
	case askTranscript:
		opts.Formatter = cot.TranscriptFormatter{}
	}

	outcome := a.system.Respond(ctx, askPersona, strings.Join(args, " "), opts)

	out := cmd.OutOrStdout()
	if askVerbose {
		fmt.Fprintf(out, "request %s, persona %s\n\n", outcome.RequestID, outcome.Persona)
		for i, c := range outcome.Candidates {
			marker := " "
			if i == outcome.Chosen {
				marker = "*"
			}
			fmt.Fprintf(out, "%s [%s] %s\n%s\n\n", marker, ai.DisplayName(c.Backend), c.Result.Model, c.Result.Text)
		}
		if askTranscript && len(outcome.Candidates) > 0 {
			for _, thought := range cot.Thoughts(outcome.Candidates[outcome.Chosen].Result.Text) {
				fmt.Fprintf(out, "thought: %s\n", thought)
			}
		}
		fmt.Fprintln(out, "---")
	}
	fmt.Fprintln(out, outcome.Text)

	return nil
}

func runPersonas(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry := persona.NewRegistry()
	persona.RegisterBuiltins(registry)
	if cfg.PersonaFile != "" {
		if _, err := persona.RegisterFile(registry, cfg.PersonaFile); err != nil {
			return fmt.Errorf("error loading personas: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	for _, id := range registry.IDs() {
		p, _ := registry.Lookup(id)
		fmt.Fprintf(out, "%-12s %s\n", id, p.Summary())
		if personasRender {
			fmt.Fprintln(out, p.RenderPrefix())
		}
	}

	return nil
}

func runDiscord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateDiscord(); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}

	b, err := bot.NewBot(cfg, a.system, a.registry, a.logger)
	if err != nil {
		return err
	}

	if err := b.Start(ctx); err != nil {
		return err
	}

	// Wait for interrupt signal to gracefully shutdown
	a.logger.InfoContext(ctx, "bot is now running, press CTRL-C to exit")
	<-ctx.Done()

	a.logger.InfoContext(context.Background(), "shutting down bot")
	return b.Close(context.Background())
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdout carries the protocol
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}

	srv := mcpserver.NewServer(a.system, a.registry, a.logger)
	a.logger.InfoContext(ctx, "serving MCP over stdio")

	return mcpserver.Serve(ctx, srv, os.Stdin, os.Stdout)
}
