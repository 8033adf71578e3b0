package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "docpilot",
		Short:         "Parse, extract and analyze documents with the Upstage APIs",
		SilenceUsage: true,
	}

	root.AddCommand(serveCMD(), parseCMD(), extractCMD(), analyzeCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
