package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mindwell-health/phiguard"
)

// checkCommand reports findings without rewriting anything. It prints the
// category and position of each finding, never the matched value, so its
// output is safe to attach to a CI log.
func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	envFile := fs.String("env", "", "Load environment variables from this dotenv file first")
	patternsPath := fs.String("patterns", "", "Patterns YAML file registered on top of the built-ins")
	posture := fs.String("posture", "", "Detection posture: standard or strict")
	verbose := fs.Bool("v", false, "Report files with no findings too")

	fs.Parse(args)

	if err := loadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
		os.Exit(1)
	}

	cfg, err := phiguard.LoadConfigFromEnvironment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
		os.Exit(1)
	}

	postureValue := *posture
	if postureValue == "" {
		postureValue = os.Getenv(phiguard.EnvPosture)
	}
	catalog := phiguard.DefaultCatalog(phiguard.ParsePosture(postureValue))

	patterns := *patternsPath
	if patterns == "" {
		patterns = os.Getenv(phiguard.EnvPatternsFile)
	}
	if patterns != "" {
		if err := phiguard.LoadPatternsFile(catalog, patterns); err != nil {
			fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
			os.Exit(1)
		}
	}

	detector := phiguard.NewDetector(cfg, catalog)

	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	found := 0
	for _, path := range inputs {
		data, err := readInput(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
			os.Exit(1)
		}

		matches := detector.DetectPHI(data)
		if len(matches) == 0 {
			if *verbose {
				fmt.Printf("%s: clean\n", path)
			}
			continue
		}
		found += len(matches)
		for _, m := range matches {
			fmt.Printf("%s:%d: %s\n", path, m.Line, m.PatternName)
		}
	}

	if found > 0 {
		fmt.Fprintf(os.Stderr, "\n%d finding(s).\n", found)
		os.Exit(1)
	}
}
