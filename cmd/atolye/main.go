package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "atolye",
	Short: "Atolye — Robotics Team Learning Platform",
	Long:  "Atolye is a learning platform backend for robotics teams, providing team accounts, shared training materials, a contact inbox, and a course catalog.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: configs/atolye.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
