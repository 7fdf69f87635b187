// Package ui renders the interactive console: banner, progress bar, and
// the result card.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/solanityhq/solanity/pkg/pattern"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

// ClearScreen clears the terminal.
func ClearScreen() {
	fmt.Print("\033[H\033[2J")
}

// PrintWelcomeBanner shows the welcome screen.
func PrintWelcomeBanner(version string) {
	fmt.Println()
	fmt.Printf("%s%s", ColorCyan, ColorBold)
	fmt.Println("  ╔════════════════════════════════════════════════════════════════╗")
	fmt.Println("  ║   ███████╗ ██████╗ ██╗      █████╗ ███╗   ██╗██╗████████╗██╗   ██╗║")
	fmt.Println("  ║   ██╔════╝██╔═══██╗██║     ██╔══██╗████╗  ██║██║╚══██╔══╝╚██╗ ██╔╝║")
	fmt.Println("  ║   ███████╗██║   ██║██║     ███████║██╔██╗ ██║██║   ██║    ╚████╔╝ ║")
	fmt.Println("  ║   ╚════██║██║   ██║██║     ██╔══██║██║╚██╗██║██║   ██║     ╚██╔╝  ║")
	fmt.Println("  ║   ███████║╚██████╔╝███████╗██║  ██║██║ ╚████║██║   ██║      ██║   ║")
	fmt.Println("  ║   ╚══════╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝   ╚═╝      ╚═╝   ║")
	fmt.Println("  ╠════════════════════════════════════════════════════════════════╣")
	fmt.Printf("  ║%s   Solana Vanity Keypair Search %s• v%s%s                           ║\n", ColorYellow, ColorDim, version, ColorCyan+ColorBold)
	fmt.Println("  ╚════════════════════════════════════════════════════════════════╝")
	fmt.Print(ColorReset)
	fmt.Println()
}

// PrintSearchInfo displays the compiled pattern and its expected attempt
// count before a search starts.
func PrintSearchInfo(beginsWith, endsWith string, sub *pattern.Subsequence) {
	fmt.Printf("\n    %s🚀 SEARCHING%s", ColorGreen+ColorBold, ColorReset)
	if beginsWith != "" {
		fmt.Printf(" %s%s%s%s...%s", ColorBold, ColorCyan, beginsWith, ColorDim, ColorReset)
	}
	if endsWith != "" {
		fmt.Printf("%s...%s%s%s%s", ColorDim, ColorCyan, ColorBold, endsWith, ColorReset)
	}
	fmt.Printf(" %s(1/%s)%s\n\n", ColorDim, FormatNumber(sub.ExpectedAttempts()), ColorReset)
}

// PrintProgress shows an animated progress bar driven by the generator's
// searched counter against the expected attempts for the pattern.
func PrintProgress(searched uint64, expected uint64, elapsed time.Duration, frame int) {
	spinners := []string{"◐", "◓", "◑", "◒"}
	spinner := spinners[frame%len(spinners)]

	if expected == 0 {
		expected = 1
	}
	ratio := float64(searched) / float64(expected)
	progress := 1.0 - math.Pow(0.5, 2.0*ratio)

	barWidth := 40
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("▓", filled) + strings.Repeat("░", barWidth-filled)

	rate := float64(0)
	if elapsed > 0 {
		rate = float64(searched) / elapsed.Seconds()
	}
	speedStr := FormatHashRate(rate)

	fmt.Printf("\r    %s%s%s %s%s%s %s%s%s │ %s%s%s │ %s",
		ColorCyan, spinner, ColorReset,
		ColorDim, bar, ColorReset,
		ColorGreen+ColorBold, speedStr, ColorReset,
		ColorYellow, FormatNumber(searched), ColorReset,
		FormatDuration(elapsed))
}

// FormatHashRate formats an attempts-per-second rate.
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// PrintSuccess shows a single found keypair.
func PrintSuccess(base58PublicKey string, elapsed time.Duration, attempts uint64, outputFile string, ioFault error) {
	fmt.Printf("\n    %s%s╔══════════════════════════════════════════════════════════╗%s\n", ColorGreen, ColorBold, ColorReset)
	fmt.Printf("    %s%s║                ✨ KEYPAIR FOUND! ✨                       ║%s\n", ColorGreen, ColorBold, ColorReset)
	fmt.Printf("    %s%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorGreen, ColorBold, ColorReset)

	fmt.Printf("    %s◎ SOLANA ADDRESS%s\n", ColorCyan+ColorBold, ColorReset)
	fmt.Println()
	fmt.Printf("       %s%s%s%s\n", ColorGreen, ColorBold, base58PublicKey, ColorReset)
	fmt.Println()

	fmt.Printf("    %s⏱   %s%s   %s│   %s📊  %s%s%s\n\n",
		ColorCyan, ColorReset+ColorBold, FormatDuration(elapsed),
		ColorDim,
		ColorPurple, ColorReset+ColorBold, FormatNumber(attempts),
		ColorReset)

	if ioFault != nil {
		fmt.Printf("    %s⚠  COULD NOT WRITE KEY FILE: %v%s\n", ColorRed+ColorBold, ioFault, ColorReset)
	} else {
		fmt.Printf("    %s💾  saved to %s%s\n", ColorDim, outputFile, ColorReset)
	}
}

// ClearLine clears the current line.
func ClearLine() {
	fmt.Print("\r                                                                                              \r")
}

// WaitForExit waits for the user to press Enter before exiting.
func WaitForExit() {
	fmt.Printf("\n    %sPress Enter to exit...%s", ColorDim, ColorReset)
	var input string
	fmt.Scanln(&input)
}

// FormatNumber adds thousands separators to n.
func FormatNumber(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	s := fmt.Sprintf("%d", n)
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats d in a human-readable way.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
