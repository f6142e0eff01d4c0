package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "formflow",
	Short: "Formflow serves the Approved Premises application journey",
	Long:  `Formflow runs the form-journey engine behind the Approved Premises application, exposing page navigation, the tasklist and check-your-answers over a JSON API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
