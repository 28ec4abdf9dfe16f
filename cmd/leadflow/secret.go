package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"leadflow-engine/internal/secrets"
)

func newSecretCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage the alert mailbox password in the OS keychain",
	}

	account := func() (string, error) {
		a, err := g.load()
		if err != nil {
			return "", err
		}
		mb := a.cfg.Fetch.Mailbox
		if mb.IMAPHost == "" || mb.Username == "" {
			return "", errors.New("fetch.mailbox.imap_host and fetch.mailbox.username must be set")
		}
		return secrets.IMAPKeyringAccount(mb.Username, mb.IMAPHost), nil
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Store the IMAP password read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acct, err := account()
			if err != nil {
				return err
			}
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password: %w", err)
			}
			if err := secrets.SetIMAPPassword(acct, strings.TrimRight(line, "\r\n")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored password for %s\n", acct)
			return nil
		},
	}
	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored IMAP password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acct, err := account()
			if err != nil {
				return err
			}
			if err := secrets.DeleteIMAPPassword(acct); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted password for %s\n", acct)
			return nil
		},
	}
	cmd.AddCommand(set, del)
	return cmd
}
