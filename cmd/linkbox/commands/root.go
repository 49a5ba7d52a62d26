package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"linkbox/internal/app"
)

var (
	configPath string
	logLevel   string
	inboxDir   string
	printLinks bool

	cfg app.Config
)

func Execute() error {
	root := &cobra.Command{
		Use:          "linkbox",
		Short:        "Deep-link key exchange and encrypted requests to a wallet",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				if def := app.DefaultConfigFile(); def != "" {
					if _, err := os.Stat(def); err == nil {
						path = def
					} else if !errors.Is(err, os.ErrNotExist) {
						return err
					}
				}
			}
			loaded, err := app.LoadConfig(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				loaded.Log.Level = logLevel
			}
			if cmd.Flags().Changed("inbox") {
				loaded.Inbox.Dir = inboxDir
			}
			if cmd.Flags().Changed("print") {
				loaded.Opener.Print = printLinks
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <user config dir>/linkbox/config.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: error, warn, info, debug, trace")
	root.PersistentFlags().StringVar(&inboxDir, "inbox", "", "inbound link inbox directory")
	root.PersistentFlags().BoolVar(&printLinks, "print", false, "print outbound links instead of opening them")

	root.AddCommand(runCmd(), openCmd(), decodeCmd(), keygenCmd())
	return root.Execute()
}
