// voicedesk is a console driver for the demo agents. It stands in for the
// external voice framework during development: type what the caller would
// say, read what the agent would speak.
//
// Usage:
//
//	voicedesk coffee                 # keyword-driven coffee order
//	voicedesk wellness               # wellness check-in (field=value lines)
//	voicedesk leads                  # lead capture (field=value lines)
//	voicedesk fraud                  # fraud review call
//	voicedesk cases                  # list every fraud case and its status
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/falconlabs/voicedesk"
	"github.com/falconlabs/voicedesk/agents/fraud"
	"github.com/falconlabs/voicedesk/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "coffee", "wellness", "leads", "fraud":
		runAgent(os.Args[1], os.Args[2:])
	case "cases":
		runCases(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`voicedesk - console driver for the voice demo agents

Commands:
  coffee     order a coffee (free text, keyword extraction)
  wellness   daily check-in (field=value pairs, e.g. "mood=good; energy=low")
  leads      capture a sales lead (field=value pairs, e.g. "name=Sam; company=Acme")
  fraud      fraud review call (name, then security answer, then yes/no)
  cases      list all fraud cases

Flags:
  -config    config file path (default voicedesk.yaml)
  -debug     verbose logging`)
}

func parseFlags(args []string) (config.Config, *zap.Logger) {
	fs := flag.NewFlagSet("voicedesk", flag.ExitOnError)
	configPath := fs.String("config", "voicedesk.yaml", "config file path")
	debug := fs.Bool("debug", false, "verbose logging")
	_ = fs.Parse(args)

	logger := buildLogger(*debug)

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	return cfg, logger
}

func buildLogger(debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

func runAgent(kind string, args []string) {
	cfg, logger := parseFlags(args)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	dataDir := cfg.Storage.DataDir

	var turn func(line string) (string, error)
	switch kind {
	case "coffee":
		a := voicedesk.NewCoffeeAgent(dataDir, logger)
		fmt.Println(cfg.Company.Greeting)
		turn = func(line string) (string, error) { return a.Hear(ctx, line) }
	case "wellness":
		a := voicedesk.NewWellnessAgent(dataDir, logger)
		fmt.Println("Time for your check-in. How are you feeling today?")
		turn = func(line string) (string, error) {
			f := pairs(line)
			return a.UpdateCheckIn(ctx, f["mood"], f["energy"], f["sleep"], f["objectives"])
		}
	case "leads":
		a := voicedesk.NewLeadAgent(dataDir, logger)
		fmt.Println("Hi! I'd love to learn a bit about you. Could I get your name?")
		turn = func(line string) (string, error) {
			f := pairs(line)
			return a.UpdateLead(ctx, f["name"], f["company"], f["email"], f["interest"], f["notes"])
		}
	case "fraud":
		a, err := voicedesk.NewFraudAgent(cfg.Storage.CaseDB, logger)
		if err != nil {
			logger.Fatal("open case store", zap.Error(err))
		}
		fmt.Println(a.Greet())
		turn = func(line string) (string, error) { return fraudTurn(ctx, a, line) }
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "bye" || line == "quit" {
			break
		}
		reply, err := turn(line)
		if err != nil {
			logger.Error("turn failed", zap.Error(err))
			continue
		}
		fmt.Println(reply)
	}
}

// fraudTurn routes console input by conversation phase: name first, then the
// security answer, then the yes/no decision.
func fraudTurn(ctx context.Context, a *fraud.Agent, line string) (string, error) {
	switch a.Phase() {
	case fraud.PhaseGreeting, fraud.PhaseUsernameCollection:
		return a.Lookup(ctx, line)
	case fraud.PhaseVerification:
		return a.Verify(ctx, line)
	case fraud.PhaseInvestigation:
		answer := strings.ToLower(line)
		authorized := strings.HasPrefix(answer, "y") || strings.Contains(answer, "yes")
		return a.Resolve(ctx, authorized)
	default:
		return "This call is finished. Start a new session for another case.", nil
	}
}

func pairs(line string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(line, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

func runCases(args []string) {
	cfg, logger := parseFlags(args)
	defer func() { _ = logger.Sync() }()

	cases, err := voicedesk.OpenCaseStore(cfg.Storage.CaseDB, logger)
	if err != nil {
		logger.Fatal("open case store", zap.Error(err))
	}

	all, err := cases.AllCases(context.Background())
	if err != nil {
		logger.Fatal("list cases", zap.Error(err))
	}
	if len(all) == 0 {
		fmt.Println("no fraud cases found")
		return
	}

	fmt.Printf("FRAUD CASES - total %d\n", len(all))
	for _, c := range all {
		verified := "no"
		if c.Verified {
			verified = "yes"
		}
		fmt.Printf("\nCase #%d: %s\n", c.ID, c.UserName)
		fmt.Printf("  Card: XXXX-%s\n", c.CardEnding)
		fmt.Printf("  Transaction: %s\n", c.TransactionName)
		fmt.Printf("  Amount: ₹%.2f\n", c.TransactionAmount)
		fmt.Printf("  Status: %s\n", strings.ToUpper(strings.ReplaceAll(c.Status, "_", " ")))
		fmt.Printf("  Verified: %s\n", verified)
		if c.Outcome != "" {
			fmt.Printf("  Outcome: %s\n", c.Outcome)
		}
		fmt.Printf("  Last Updated: %s\n", c.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}
