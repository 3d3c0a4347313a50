package main

import (
	"flag"
	"fmt"
	"os"
)

const starterPatterns = `# phiguard patterns file.
# Entries here are registered on top of the built-in catalog; names must not
# collide with built-ins (SSN, SSN_DIGITS, EMAIL, PHONE, NAME, DOB, MRN,
# CREDIT_CARD) or each other.
version: "1"
patterns:
  - name: INSURANCE_ID
    kind: regex
    expression: '\bINS-\d{8}\b'
    priority: 70
    high_confidence: true

  # exact: literal text, matched on word boundaries
  - name: FACILITY
    kind: exact
    expression: "Lakeside Clinic"
    priority: 50

  # fuzzy: tolerates small misspellings of the target word
  - name: DRUG_NAME
    kind: fuzzy
    expression: "sertraline"
    priority: 45
    context_words: [prescribed, dose, medication]
`

func initCommand(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	output := fs.String("o", "phiguard-patterns.yaml", "Output path for the patterns file")
	force := fs.Bool("force", false, "Overwrite an existing patterns file")

	fs.Parse(args)

	if !*force {
		if _, err := os.Stat(*output); err == nil {
			fmt.Fprintf(os.Stderr, "Patterns file %s already exists. Use -force to overwrite.\n", *output)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(*output, []byte(starterPatterns), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write patterns file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Patterns file created at %s\n", *output)
}
