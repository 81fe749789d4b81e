package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdf_press/pdf"
)

var (
	compressOutput string
	compressTarget float64
)

var compressCmd = &cobra.Command{
	Use:   "compress <input.pdf> [more.pdf ...]",
	Short: "Merge documents and reduce the result to a size target",
	Long: `Merges the inputs in argument order and reattempts ever more aggressive
rewrites until the result fits under --target-mb. Hopeless targets come back
degraded or as a single placeholder page.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompress(args)
	},
}

func init() {
	compressCmd.Flags().StringVarP(&compressOutput, "output", "o", "compressed.pdf", "Output file")
	compressCmd.Flags().Float64VarP(&compressTarget, "target-mb", "t", 9, "Size target in megabytes")
	rootCmd.AddCommand(compressCmd)
}

func runCompress(paths []string) error {
	buffers, total, err := readInputs(paths)
	if err != nil {
		return err
	}
	printInfo(fmt.Sprintf("Compressing %d document(s) (%s) to %.1f MB…", len(buffers), humanSize(total), compressTarget))

	merged, err := pdf.Merge(buffers)
	if err != nil {
		return err
	}
	res, err := pdf.Reduce(merged, compressTarget*1024)
	if err != nil {
		return err
	}
	if err := os.WriteFile(compressOutput, res.Bytes, 0o644); err != nil {
		return err
	}

	origSize := int64(len(merged))
	finalSize := int64(len(res.Bytes))
	switch res.Outcome {
	case pdf.OutcomeDegraded:
		printInfo(fmt.Sprintf("target out of reach after %d attempts, kept the smallest rewrite", len(res.Trail)))
	case pdf.OutcomePlaceholder:
		printInfo(fmt.Sprintf("target out of reach after %d attempts, wrote a placeholder page", len(res.Trail)))
	}

	saved := origSize - finalSize
	if saved > 0 {
		pct := float64(saved) / float64(origSize) * 100
		printSuccess(fmt.Sprintf("%s → %s (saved %s, %.1f%%)", humanSize(origSize), humanSize(finalSize), humanSize(saved), pct))
	} else {
		printSuccess(fmt.Sprintf("%s → %s (already under target)", humanSize(origSize), humanSize(finalSize)))
	}
	return nil
}
