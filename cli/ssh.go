package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alessio/shellescape"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"
)

var sshCmd = &cobra.Command{
	Use:   "ssh CLUSTER COMMAND [ARGS...]",
	Short: "Run a command on the cluster head over SSH",
	Args:  cobra.MinimumNArgs(2),

	RunE: func(cmd *cobra.Command, args []string) error {
		cluster := args[0]

		p, err := newProvider()
		if err != nil {
			return err
		}

		info, err := p.ClusterInfo(cmd.Context(), cluster)
		if err != nil {
			return err
		}
		if info.HeadInstanceID == "" {
			return fmt.Errorf("cluster '%s' has no reachable instance", cluster)
		}
		head := info.Instances[info.HeadInstanceID]

		signer, err := loadIdentity(lo.Must(cmd.Flags().GetString("identity")))
		if err != nil {
			return err
		}

		client, err := ssh.Dial("tcp", fmt.Sprintf("%s:%d", head.ExternalIP, head.SSHPort), &ssh.ClientConfig{
			User:            info.SSHUser,
			Timeout:         10 * time.Second,
			HostKeyCallback: ssh.InsecureIgnoreHostKey(),
			Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		})
		if err != nil {
			return fmt.Errorf("failed to connect to head instance %s: %w", info.HeadInstanceID, err)
		}
		defer client.Close()

		session, err := client.NewSession()
		if err != nil {
			return fmt.Errorf("failed to create SSH session: %w", err)
		}
		defer session.Close()

		session.Stdin = os.Stdin
		session.Stdout = os.Stdout
		session.Stderr = os.Stderr

		return session.Run(shellescape.QuoteCommand(args[1:]))
	},
}

func loadIdentity(path string) (ssh.Signer, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate home directory: %w", err)
		}
		path = filepath.Join(home, ".ssh", "id_ed25519")
	}

	key, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity file: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key '%s': %w", path, err)
	}
	return signer, nil
}

func init() {
	sshCmd.Flags().String("identity", "", "private key file (default ~/.ssh/id_ed25519)")
}
