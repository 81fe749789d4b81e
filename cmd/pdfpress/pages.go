package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdf_press/pdf"
)

var (
	removePagesSpec   string
	removePagesOutput string
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Page level operations",
}

var removePagesCmd = &cobra.Command{
	Use:   "remove <input.pdf>",
	Short: "Delete pages by number or range",
	Long: `Deletes the pages named by --pages, e.g. "2" or "1,3-5". Without -o, the
trimmed file replaces the original.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemovePages(args[0])
	},
}

func init() {
	removePagesCmd.Flags().StringVarP(&removePagesSpec, "pages", "p", "", "Pages to remove, e.g. \"2,5-7\"")
	removePagesCmd.Flags().StringVarP(&removePagesOutput, "output", "o", "", "Output file (default: in-place)")
	removePagesCmd.MarkFlagRequired("pages")
	pagesCmd.AddCommand(removePagesCmd)
	rootCmd.AddCommand(pagesCmd)
}

func runRemovePages(inFile string) error {
	b, err := os.ReadFile(inFile)
	if err != nil {
		return err
	}
	out, err := pdf.RemovePages(b, removePagesSpec)
	if err != nil {
		return err
	}

	outFile := removePagesOutput
	if outFile == "" {
		outFile = inFile // in-place
	}
	if err := os.WriteFile(outFile, out, 0o644); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("removed pages %s, wrote %s (%s)", removePagesSpec, outFile, humanSize(int64(len(out)))))
	return nil
}
