package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"linkbox/internal/store"
)

// open <url>: invoked by the OS for links on the requester's scheme.
func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Deliver an inbound link to the running requester",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.TrimSpace(args[0])
			if raw == "" {
				return fmt.Errorf("empty link")
			}
			inbox, err := store.NewInbox(cfg.Inbox.Dir)
			if err != nil {
				return err
			}
			if _, err := inbox.Put(raw); err != nil {
				return err
			}
			return nil
		},
	}
}
