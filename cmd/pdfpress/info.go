package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdf_press/pdf"
)

var infoCmd = &cobra.Command{
	Use:   "info <input.pdf>",
	Short: "Print the structure of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(args[0])
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	info, err := pdf.Inspect(b)
	if err != nil {
		return err
	}

	fmt.Printf("Pages:     %d\n", info.Pages)
	fmt.Printf("Size:      %s\n", humanSize(int64(info.Size)))
	if info.Version != "" {
		fmt.Printf("Version:   PDF %s\n", info.Version)
	}
	if info.Width > 0 && info.Height > 0 {
		fmt.Printf("Page box:  %.0f x %.0f pt\n", info.Width, info.Height)
	}
	for _, field := range []struct {
		label, value string
	}{
		{"Title", info.Title},
		{"Author", info.Author},
		{"Subject", info.Subject},
		{"Keywords", info.Keywords},
		{"Producer", info.Producer},
		{"Creator", info.Creator},
	} {
		if field.value != "" {
			fmt.Printf("%-10s %s\n", field.label+":", field.value)
		}
	}
	if info.Annotated {
		fmt.Println("Annotated: yes")
	}
	return nil
}
