package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/punchclock/internal/cli"
	"github.com/julianstephens/punchclock/internal/keyring"
)

// KeyringSetCmd stores the BambooHR API key in the OS keyring
type KeyringSetCmd struct {
	APIKey string `arg:"" optional:"" help:"BambooHR API key to store. Prompted for when omitted."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	key := strings.TrimSpace(cmd.APIKey)
	if key == "" {
		var err error
		key, err = ctx.PromptSecret("BambooHR API key")
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
	}

	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, "✓ API key stored successfully in OS keyring")
	fmt.Fprintln(ctx.Out, "  BAMBOO_API_KEY no longer needs to be set")
	return nil
}

// KeyringGetCmd shows the stored API key, masked
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring. Use 'punchclock keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve API key from keyring: %w", err)
	}

	fmt.Fprintln(ctx.Out, "API key retrieved from keyring:")
	fmt.Fprintln(ctx.Out, keyring.Mask(key))
	return nil
}

// KeyringDeleteCmd removes the API key from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}

	fmt.Fprintln(ctx.Out, "✓ API key deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Fprintln(ctx.Out, "❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}

	fmt.Fprintln(ctx.Out, "✓ OS keyring is available")
	_, err := keyring.GetAPIKey()
	switch {
	case err == nil:
		fmt.Fprintln(ctx.Out, "✓ API key is stored in keyring")
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Fprintln(ctx.Out, "ℹ No API key stored in keyring")
	}
	return nil
}
