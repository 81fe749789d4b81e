package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdf_press/pdf"
)

var mergeOutput string

var mergeCmd = &cobra.Command{
	Use:   "merge <first.pdf> <second.pdf> [more.pdf ...]",
	Short: "Concatenate documents in argument order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMerge(args)
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.pdf", "Output file")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(paths []string) error {
	buffers, total, err := readInputs(paths)
	if err != nil {
		return err
	}
	printInfo(fmt.Sprintf("Merging %d document(s) (%s)…", len(buffers), humanSize(total)))

	out, err := pdf.Merge(buffers)
	if err != nil {
		return err
	}
	if err := os.WriteFile(mergeOutput, out, 0o644); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("wrote %s (%s)", mergeOutput, humanSize(int64(len(out)))))
	return nil
}
