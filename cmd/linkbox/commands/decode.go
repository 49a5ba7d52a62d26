package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"linkbox/internal/domain"
	"linkbox/internal/protocol/codec"
)

var endpoint string

// decode <data|url>: pretty-print a link record.
func decodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <data|url>",
		Short: "Decode and pretty-print the data record of a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := args[0]
			if strings.Contains(data, "?") {
				u, err := url.Parse(data)
				if err != nil {
					return err
				}
				data = u.Query().Get(codec.ParamData)
				if data == "" {
					return fmt.Errorf("link has no %s parameter", codec.ParamData)
				}
			}

			var out []byte
			if endpoint != "" {
				msg, err := codec.Decode(domain.Endpoint(endpoint), data)
				if err != nil {
					return err
				}
				if out, err = json.MarshalIndent(msg, "", "  "); err != nil {
					return err
				}
			} else {
				raw, err := codec.DecodeRaw(data)
				if err != nil {
					return err
				}
				var buf bytes.Buffer
				if err := json.Indent(&buf, raw, "", "  "); err != nil {
					return err
				}
				out = buf.Bytes()
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "validate as a request for this endpoint (connect, disconnect, signAndSubmit)")
	return cmd
}
