package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/croften/redcap-logic/redcap/eval"
)

func main() {
	var interactive bool
	var help bool
	var logicStr string

	flag.BoolVar(&interactive, "i", false, "interactive mode")
	flag.BoolVar(&help, "h", false, "show help")
	flag.StringVar(&logicStr, "logic", "", "translate and evaluate a single logic expression against the demo table")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A branching-logic translator and evaluator for study response values.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # Run demo expressions\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i                               # Interactive mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -logic \"[num_pushups] >= 90\"     # Evaluate a single expression\n", os.Args[0])
	}
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	ds := demoDataset()
	cache := eval.NewTranslationCache(0, 0)

	if logicStr != "" {
		evaluate(ds, cache, logicStr)
	} else if interactive {
		runInteractive(ds, cache)
	} else {
		runDemo(ds, cache)
	}
}

// demoDataset builds a small in-memory study table. Every value is a raw
// string, as the source platform stores them.
func demoDataset() *eval.Dataset {
	ds := eval.NewDataset()

	columns := []struct {
		name string
		raws []string
	}{
		{"record_id", []string{"001", "002", "003", "004", "005", "006", "007", "008"}},
		{"num_pushups", []string{"95", "12", "44", "", "90", "18", "61", "103"}},
		{"frailty_score", []string{"1", "2", "3", "", "1", "2", "4", "1"}},
		{"status", []string{"Healthy", "Sick", "", "Recovered", "Healthy", "NA-2", "Sick", "Healthy"}},
		{"bmi", []string{"21.4", "33.0", "27.9", "", "19.8", "30.1", "25", "22.2"}},
	}
	for _, col := range columns {
		if err := ds.AddColumn(col.name, col.raws); err != nil {
			log.Fatalf("Failed to build demo dataset: %v", err)
		}
	}
	return ds
}

func runDemo(ds *eval.Dataset, cache *eval.TranslationCache) {
	fmt.Println("=== Branching-Logic Demo ===")
	fmt.Println("\nDemo table:")
	fmt.Println(eval.NewTableFormatter().FormatDataset(ds))

	expressions := []string{
		`[num_pushups] >= 90`,
		`[num_pushups] >= 90 AND [frailty_score] = '1'`,
		`[frailty_score] = '' OR [num_pushups] = ''`,
		`!([status] = 'Healthy' AND [bmi] < 25)`,
		`[num_pushups] < 20 OR [num_pushups] >= 90 AND [frailty_score] = 1`,
	}

	for _, expr := range expressions {
		fmt.Printf("\nLogic: %s\n", expr)
		evaluate(ds, cache, expr)
	}
}

func runInteractive(ds *eval.Dataset, cache *eval.TranslationCache) {
	fmt.Println("=== Branching-Logic Interactive Mode ===")
	fmt.Println("Commands:")
	fmt.Println("  .help     - Show help")
	fmt.Println("  .table    - Show the demo table")
	fmt.Println("  .fields   - List field names")
	fmt.Println("  .exit     - Exit")
	fmt.Println("  [field] >= 5 ... - Evaluate an expression")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("logic> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case ".exit", ".quit":
			return
		case ".help":
			fmt.Println("Enter a branching-logic expression, e.g. [num_pushups] >= 90 AND [frailty_score] = '1'")
			continue
		case ".table":
			fmt.Println(eval.NewTableFormatter().FormatDataset(ds))
			continue
		case ".fields":
			fmt.Println(strings.Join(ds.Fields(), ", "))
			continue
		}

		evaluate(ds, cache, line)
	}
}

func evaluate(ds *eval.Dataset, cache *eval.TranslationCache, logicStr string) {
	errColor := color.New(color.FgRed)
	okColor := color.New(color.FgGreen)

	pred, err := cache.Translate(logicStr)
	if err != nil {
		errColor.Fprintf(os.Stderr, "Translation error: %v\n", err)
		return
	}

	mask, err := pred.Eval(ds)
	if err != nil {
		errColor.Fprintf(os.Stderr, "Evaluation error: %v\n", err)
		return
	}

	okColor.Printf("Compiled: %s (fields: %s)\n", pred, strings.Join(pred.Fields(), ", "))
	fmt.Println(eval.NewTableFormatter().FormatMask(ds, mask, "match"))
}
