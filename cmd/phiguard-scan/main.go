package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "scan":
		scanCommand(os.Args[2:])
	case "check":
		checkCommand(os.Args[2:])
	case "init":
		initCommand(os.Args[2:])
	case "version":
		versionCommand()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options] [file ...]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  scan      Redact PHI from files or stdin and write the result to stdout\n")
	fmt.Fprintf(os.Stderr, "  check     Report PHI findings without rewriting anything (exit 1 if found)\n")
	fmt.Fprintf(os.Stderr, "  init      Write a starter patterns file\n")
	fmt.Fprintf(os.Stderr, "  version   Show version information\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for help on a specific command.\n", os.Args[0])
}

// loadEnvFile loads environment variables from a dotenv file, if given,
// before the configuration is read.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func versionCommand() {
	fmt.Println("phiguard-scan version 1.0.0")
	fmt.Println("PHI detection and redaction for text, JSON and logs")
	fmt.Println("")
	fmt.Println("Redaction modes: full, partial, hash")
	fmt.Println("Postures: standard, strict")
	fmt.Println("Pattern kinds: regex, exact, fuzzy")
}
