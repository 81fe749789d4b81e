package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pdfpress",
	Short: "Merge, compress and inspect PDF documents",
	Long: `pdfpress merges PDF documents and squeezes the result under a size target
by progressively rewriting, scaling and trimming content.`,
	SilenceUsage: true,
}

func printInfo(msg string) {
	fmt.Println(msg)
}

func printSuccess(msg string) {
	fmt.Println("✓ " + msg)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// readInputs loads every path into memory, reporting the combined size.
func readInputs(paths []string) ([][]byte, int64, error) {
	buffers := make([][]byte, 0, len(paths))
	var total int64
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, err
		}
		buffers = append(buffers, b)
		total += int64(len(b))
	}
	return buffers, total, nil
}
