package ui

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/solanityhq/solanity/pkg/base58"
)

// SearchParams collects everything a search needs, gathered interactively
// when the caller didn't supply flags.
type SearchParams struct {
	BeginsWith    string
	EndsWith      string
	CaseSensitive bool
	FindKeys      uint32
	NumThreads    int
	OutputDir     string
	SigVerify     bool
}

// PromptForSearchParams walks the user through the pattern and run
// configuration.
func PromptForSearchParams() SearchParams {
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("    %s🎯 TARGET PATTERN%s\n", ColorPurple+ColorBold, ColorReset)
	beginsWith, endsWith := getSolanaInput(reader)

	caseSensitive := promptYesNo(reader, "Case-sensitive match?", false)
	findKeys := promptUint(reader, "How many keys to find?", 1)
	numThreads := promptUint(reader, fmt.Sprintf("Workers (blank = %d cores)", runtime.NumCPU()), uint32(runtime.NumCPU()))
	outputDir := promptString(reader, "Output directory (blank = .)", ".")
	sigVerify := promptYesNo(reader, "Sign+verify each candidate before accepting?", true)

	return SearchParams{
		BeginsWith:    beginsWith,
		EndsWith:      endsWith,
		CaseSensitive: caseSensitive,
		FindKeys:      findKeys,
		NumThreads:    int(numThreads),
		OutputDir:     outputDir,
		SigVerify:     sigVerify,
	}
}

func getSolanaInput(reader *bufio.Reader) (string, string) {
	fmt.Printf("    %sPrefix%s (...): ", ColorCyan, ColorReset)
	prefixInput, _ := reader.ReadString('\n')
	prefix := strings.TrimSpace(prefixInput)

	if prefix != "" && !base58.IsValid(prefix) {
		invalidChars := base58.InvalidChars(prefix)
		fmt.Printf("    %s⚠ Invalid Base58 character(s): %s%s\n", ColorRed, string(invalidChars), ColorReset)
		fmt.Printf("    %s  (Not allowed: 0, O, I, l)%s\n", ColorDim, ColorReset)
		prefix = ""
	}

	fmt.Printf("    %sSuffix%s (...): ", ColorCyan, ColorReset)
	suffixInput, _ := reader.ReadString('\n')
	suffix := strings.TrimSpace(suffixInput)

	if suffix != "" && !base58.IsValid(suffix) {
		invalidChars := base58.InvalidChars(suffix)
		fmt.Printf("    %s⚠ Invalid Base58 character(s): %s%s\n", ColorRed, string(invalidChars), ColorReset)
		fmt.Printf("    %s  (Not allowed: 0, O, I, l)%s\n", ColorDim, ColorReset)
		suffix = ""
	}

	return prefix, suffix
}

func promptYesNo(reader *bufio.Reader, question string, def bool) bool {
	hint := "Y/n"
	if !def {
		hint = "y/N"
	}
	fmt.Printf("    %s%s%s (%s): ", ColorCyan, question, ColorReset, hint)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return def
	}
	return line == "y" || line == "yes"
}

func promptUint(reader *bufio.Reader, question string, def uint32) uint32 {
	fmt.Printf("    %s%s%s: ", ColorCyan, question, ColorReset)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	n, err := strconv.ParseUint(line, 10, 32)
	if err != nil {
		fmt.Printf("    %s⚠ Not a number, using %d%s\n", ColorRed, def, ColorReset)
		return def
	}
	return uint32(n)
}

func promptString(reader *bufio.Reader, question, def string) string {
	fmt.Printf("    %s%s%s: ", ColorCyan, question, ColorReset)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// ContinueAction represents what the user wants to do after a search
// finishes producing its requested keys.
type ContinueAction int

const (
	ActionContinue ContinueAction = iota // search again with a new pattern
	ActionQuit                           // exit the application
)

// AskToContinue prompts the user to search again or exit.
func AskToContinue() ContinueAction {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("\n    %s[Enter]%s Search again  │  %s[Q]%s Exit\n",
		ColorGreen, ColorReset, ColorRed, ColorReset)
	fmt.Printf("    %s→%s ", ColorCyan, ColorReset)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))

	switch input {
	case "q", "quit", "exit":
		return ActionQuit
	default:
		return ActionContinue
	}
}
