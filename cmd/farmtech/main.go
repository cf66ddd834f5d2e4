package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	applog "farmtech/internal/log"
)

var port string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "farmtech",
	Short: "FarmTech - agricultural equipment rental marketplace",
	Long: `FarmTech serves the equipment listing API and pages.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		applog.Sync()
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the rental assistant in the terminal",
	Long: `Starts an interactive conversation with the rental assistant.
Type a question and press enter; /quit ends the session.`,
	RunE: runChatCmd,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd, chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
