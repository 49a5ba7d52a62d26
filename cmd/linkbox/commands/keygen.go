package commands

import (
	"crypto/rand"
	"fmt"

	"github.com/spf13/cobra"

	"linkbox/internal/crypto"
	"linkbox/internal/protocol/codec"
)

var peerKey string

// keygen: print a fresh ephemeral public key. The secret never leaves the
// process and is cleared before exit.
func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an ephemeral key pair and print its public half",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := crypto.GenerateKeyPair(rand.Reader)
			if err != nil {
				return err
			}
			defer kp.Clear()

			pub := kp.Public()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Public key:  %s\n", codec.EncodeHex(pub[:]))
			fmt.Fprintf(out, "Fingerprint: %s\n", kp.Fingerprint())

			if peerKey == "" {
				return nil
			}
			peer, err := codec.ParsePublicKeyHex(peerKey)
			if err != nil {
				return err
			}
			shared, err := kp.DeriveSharedKey(peer)
			if err != nil {
				return err
			}
			defer shared.Wipe()
			fmt.Fprintf(out, "Shared key fingerprint: %s\n", shared.Fingerprint())
			return nil
		},
	}
	cmd.Flags().StringVar(&peerKey, "peer-key", "", "peer public key (hex, optional 0x prefix)")
	return cmd
}
