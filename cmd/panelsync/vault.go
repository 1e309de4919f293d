package main

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/panelsync/internal/config"
	"github.com/jonathan/panelsync/internal/vault"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage encrypted panel credentials",
}

var vaultKeygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new master key",
	Long:  "Generate a fresh random master key and print it hex-encoded, ready for VAULT_KEY.",
	RunE:  runVaultKeygen,
}

var vaultEncryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a panel credential pair",
	Long:  "Encrypt a login identifier and secret with the master key and print the ciphertext for the target registry. The secret is read from stdin when --secret is omitted.",
	RunE:  runVaultEncrypt,
}

var (
	vaultIdentifier string
	vaultSecret     string
)

func init() {
	vaultEncryptCmd.Flags().StringVarP(&vaultIdentifier, "identifier", "i", "", "Login identifier (required)")
	vaultEncryptCmd.Flags().StringVarP(&vaultSecret, "secret", "s", "", "Login secret; omit to read from stdin")

	vaultEncryptCmd.MarkFlagRequired("identifier")

	vaultCmd.AddCommand(vaultKeygenCmd)
	vaultCmd.AddCommand(vaultEncryptCmd)
	rootCmd.AddCommand(vaultCmd)
}

func runVaultKeygen(cmd *cobra.Command, args []string) error {
	key := make([]byte, vault.KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	fmt.Fprintln(os.Stdout, hex.EncodeToString(key))
	return nil
}

func runVaultEncrypt(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if cfg.VaultKey == "" {
		return fmt.Errorf("VAULT_KEY is required (set it in the environment or .env)")
	}
	v, err := vault.NewFromHex(cfg.VaultKey)
	if err != nil {
		return fmt.Errorf("invalid vault key: %w", err)
	}

	secret := vaultSecret
	if secret == "" {
		fmt.Fprint(os.Stderr, "Secret: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
		secret = strings.TrimRight(line, "\r\n")
	}
	if secret == "" {
		return fmt.Errorf("secret must not be empty")
	}

	ciphertext, err := v.EncryptCredentials(vault.Credentials{
		Identifier: vaultIdentifier,
		Secret:     secret,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, ciphertext)
	return nil
}
