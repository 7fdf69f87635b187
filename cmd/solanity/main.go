// Command solanity searches for Solana Ed25519 keypairs whose base58
// public key matches a prefix/suffix pattern.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/solanityhq/solanity/internal/ui"
	"github.com/solanityhq/solanity/pkg/pattern"
	"github.com/solanityhq/solanity/pkg/vanity"
)

const (
	version    = "1.0"
	updateRate = 33 * time.Millisecond
)

func main() {
	beginsWith := flag.String("prefix", "", "required base58 prefix")
	endsWith := flag.String("suffix", "", "required base58 suffix")
	caseSensitive := flag.Bool("case-sensitive", false, "match case exactly instead of either case per letter")
	findKeys := flag.Uint("count", 1, "number of matching keypairs to find")
	numThreads := flag.Int("workers", 0, "worker count (0 = number of CPUs)")
	outputDir := flag.String("out", ".", "directory to write found keypairs into")
	sigVerify := flag.Bool("sig-verify", true, "sign+verify each candidate before accepting it")
	flag.Parse()

	ui.ClearScreen()
	ui.PrintWelcomeBanner(version)

	interactive := *beginsWith == "" && *endsWith == ""

	for {
		params := ui.SearchParams{
			BeginsWith:    *beginsWith,
			EndsWith:      *endsWith,
			CaseSensitive: *caseSensitive,
			FindKeys:      uint32(*findKeys),
			NumThreads:    *numThreads,
			OutputDir:     *outputDir,
			SigVerify:     *sigVerify,
		}
		if interactive {
			params = ui.PromptForSearchParams()
		}
		if params.BeginsWith == "" && params.EndsWith == "" {
			fmt.Printf("\n    %s✗ Must specify a prefix or suffix!%s\n", ui.ColorRed, ui.ColorReset)
			if !interactive {
				os.Exit(1)
			}
			continue
		}
		if params.NumThreads <= 0 {
			params.NumThreads = defaultWorkers()
		}

		if !runSearch(params) {
			return
		}
		if !interactive {
			return
		}
		fmt.Println()
	}
}

// runSearch drives one complete search: it returns false when the user
// wants to exit the application entirely.
func runSearch(params ui.SearchParams) bool {
	gen, err := vanity.CreateGenerator(vanity.Config{
		KeyPath:       params.OutputDir,
		BeginsWith:    params.BeginsWith,
		EndsWith:      params.EndsWith,
		CaseSensitive: params.CaseSensitive,
		FindKeys:      params.FindKeys,
		NumThreads:    params.NumThreads,
		SigVerify:     params.SigVerify,
	})
	if err != nil {
		fmt.Printf("\n    %s✗ Error: %v%s\n", ui.ColorRed, err, ui.ColorReset)
		return promptContinue()
	}

	sub, matchErr := compileMatcherForDisplay(params)
	if matchErr == nil {
		ui.PrintSearchInfo(params.BeginsWith, params.EndsWith, sub)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(updateRate)
	defer ticker.Stop()

	start := time.Now()
	frame := 0
	found := 0
	expected := uint64(0)
	if sub != nil {
		expected = sub.ExpectedAttempts()
	}

	for {
		select {
		case <-sigChan:
			ui.ClearLine()
			gen.BreakOut()
			fmt.Printf("\n    %s⚠ Cancelled%s │ %s attempts │ %s\n",
				ui.ColorYellow+ui.ColorBold, ui.ColorReset,
				ui.FormatNumber(gen.NumSearched()),
				ui.FormatDuration(time.Since(start)))
			return promptContinue()

		case <-ticker.C:
			ui.PrintProgress(gen.NumSearched(), expected, time.Since(start), frame)
			frame++

		case result, ok := <-gen.Results():
			if !ok {
				return true
			}
			ui.ClearLine()
			outputFile := params.OutputDir + "/" + result.Base58PublicKey + ".json"
			ui.PrintSuccess(result.Base58PublicKey, time.Since(start), result.AttemptsBySearch, outputFile, result.PersistError)
			found++
			if uint32(found) >= params.FindKeys {
				gen.BreakOut()
				return promptContinue()
			}
		}
	}
}

func promptContinue() bool {
	return ui.AskToContinue() != ui.ActionQuit
}

func compileMatcherForDisplay(params ui.SearchParams) (*pattern.Subsequence, error) {
	switch {
	case params.BeginsWith != "" && params.EndsWith != "":
		return pattern.CombinePrefixSuffix(params.BeginsWith, params.EndsWith, params.CaseSensitive)
	case params.BeginsWith != "":
		return pattern.Compile(params.BeginsWith, pattern.Prefix, params.CaseSensitive)
	default:
		return pattern.Compile(params.EndsWith, pattern.Suffix, params.CaseSensitive)
	}
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}
