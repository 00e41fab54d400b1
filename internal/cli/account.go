// Package cli provides sync account commands.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framecast/framecast/internal/vault"
)

var (
	accountLoginURL   string
	accountLoginEmail string
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountLoginCmd)
	accountCmd.AddCommand(accountStatusCmd)
	accountCmd.AddCommand(accountLogoutCmd)

	accountLoginCmd.Flags().StringVar(&accountLoginURL, "url", "", "sync backend base URL (default from config)")
	accountLoginCmd.Flags().StringVar(&accountLoginEmail, "email", "", "account email")
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the sync account",
	Long:  "Store, inspect and remove the credential used for document sync.",
}

var accountLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a sync credential",
	Long:  "Store the API token for the sync backend, encrypted with a passphrase.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !IsInteractive() {
			return &PreflightError{
				Message: "login prompts for a token and passphrase",
				Hint:    "Run in an interactive terminal",
			}
		}

		baseURL := accountLoginURL
		if baseURL == "" {
			baseURL = GetConfig().SyncBaseURL
		}
		if baseURL == "" {
			return &PreflightError{
				Message: "no sync backend configured",
				Hint:    "Pass --url or set sync_base_url in the config file",
			}
		}

		token, err := promptSecret("Token: ")
		if err != nil {
			return err
		}
		if token == "" {
			return errors.New("token must not be empty")
		}

		passphrase, err := promptSecret("Vault passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := promptSecret("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != confirm {
			return errors.New("passphrases do not match")
		}

		cred := &vault.Credential{
			BaseURL:      baseURL,
			Token:        token,
			AccountEmail: accountLoginEmail,
		}
		if err := vault.Save(vault.DefaultVaultPath(), passphrase, cred); err != nil {
			return err
		}

		fmt.Printf("Credential stored for %s\n", baseURL)
		return nil
	},
}

var accountStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored sync account",
	RunE: func(cmd *cobra.Command, args []string) error {
		vaultPath := vault.DefaultVaultPath()
		if !vault.Exists(vaultPath) {
			fmt.Println("Not logged in.")
			return nil
		}

		cred, err := loadCredential(vaultPath)
		if err != nil {
			return err
		}

		fmt.Printf("Backend: %s\n", cred.BaseURL)
		if cred.AccountEmail != "" {
			fmt.Printf("Account: %s\n", cred.AccountEmail)
		}
		fmt.Printf("Stored:  %s\n", cred.CreatedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored sync credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := vault.Delete(vault.DefaultVaultPath()); err != nil {
			return err
		}
		fmt.Println("Credential removed.")
		return nil
	},
}

// loadCredential prompts for the vault passphrase and decrypts the
// stored credential.
func loadCredential(vaultPath string) (*vault.Credential, error) {
	if !vault.Exists(vaultPath) {
		return nil, &PreflightError{
			Message:  "no sync credential stored",
			NextStep: "framecast account login",
		}
	}
	if !IsInteractive() {
		return nil, &PreflightError{
			Message: "unlocking the vault prompts for a passphrase",
			Hint:    "Run in an interactive terminal",
		}
	}

	passphrase, err := promptSecret("Vault passphrase: ")
	if err != nil {
		return nil, err
	}

	cred, err := vault.Load(vaultPath, passphrase)
	if errors.Is(err, vault.ErrWrongPassphrase) {
		return nil, &PreflightError{Message: "wrong passphrase"}
	}
	return cred, err
}

func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	// Piped input, read a line instead.
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
