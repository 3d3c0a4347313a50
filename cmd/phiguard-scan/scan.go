package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mindwell-health/phiguard"
)

func scanCommand(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	envFile := fs.String("env", "", "Load environment variables from this dotenv file first")
	patternsPath := fs.String("patterns", "", "Patterns YAML file registered on top of the built-ins")
	posture := fs.String("posture", "", "Detection posture: standard or strict")
	mode := fs.String("mode", "", "Redaction mode: full, partial or hash")
	jsonInput := fs.Bool("json", false, "Treat each input as a JSON document instead of plain text")
	auditDB := fs.String("audit-db", "", "SQLite database path for persisting audit events")
	summary := fs.Bool("summary", false, "Print a per-category summary to stderr")

	fs.Parse(args)

	san, mem, cleanup, err := buildSanitizer(*envFile, *patternsPath, *posture, *mode, *auditDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	for _, path := range inputs {
		data, err := readInput(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
			os.Exit(1)
		}
		out, err := sanitizeDocument(san, data, *jsonInput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sanitize %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Print(out)
	}

	if *summary {
		printSummary(mem)
	}
}

// buildSanitizer assembles a Sanitizer from environment configuration plus
// command-line overrides. It returns the in-memory audit sink used for
// summaries and a cleanup func for any persistent sink.
func buildSanitizer(envFile, patternsPath, posture, mode, auditDB string) (*phiguard.Sanitizer, *phiguard.MemorySink, func(), error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, nil, nil, err
	}

	cfg, err := phiguard.LoadConfigFromEnvironment()
	if err != nil {
		return nil, nil, nil, err
	}
	if mode != "" {
		cfg.Mode = phiguard.ParseRedactionMode(mode)
	}

	if posture == "" {
		posture = os.Getenv(phiguard.EnvPosture)
	}
	catalog := phiguard.DefaultCatalog(phiguard.ParsePosture(posture))

	if patternsPath == "" {
		patternsPath = os.Getenv(phiguard.EnvPatternsFile)
	}
	if patternsPath != "" {
		if err := phiguard.LoadPatternsFile(catalog, patternsPath); err != nil {
			return nil, nil, nil, err
		}
	}

	mem := phiguard.NewMemorySink()
	var sink phiguard.AuditSink = mem
	cleanup := func() {}
	if auditDB != "" {
		db, err := phiguard.NewSQLiteSink(auditDB)
		if err != nil {
			return nil, nil, nil, err
		}
		sink = teeSink{mem, db}
		cleanup = func() { db.Close() }
	}

	san, err := phiguard.New(cfg, catalog, phiguard.WithAuditSink(sink))
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return san, mem, cleanup, nil
}

// teeSink fans one audit event out to several sinks.
type teeSink []phiguard.AuditSink

func (t teeSink) Record(event phiguard.AuditEvent) error {
	for _, sink := range t {
		if err := sink.Record(event); err != nil {
			return err
		}
	}
	return nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func sanitizeDocument(san *phiguard.Sanitizer, data string, asJSON bool) (string, error) {
	if !asJSON {
		return san.SanitizeText(data), nil
	}

	var doc any
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	clean := san.Sanitize(doc)
	out, err := json.MarshalIndent(clean, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

func printSummary(mem *phiguard.MemorySink) {
	counts := mem.CountByCategory()
	if len(counts) == 0 {
		fmt.Fprintln(os.Stderr, "No PHI found.")
		return
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	fmt.Fprintln(os.Stderr, "Findings by category:")
	total := 0
	for _, c := range categories {
		fmt.Fprintf(os.Stderr, "  %-16s %d\n", c, counts[c])
		total += counts[c]
	}
	fmt.Fprintf(os.Stderr, "  %-16s %d\n", "TOTAL", total)
}
