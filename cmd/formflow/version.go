package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/probationforms/formflow"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of formflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("formflow version %s\n", strings.TrimSpace(formflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
