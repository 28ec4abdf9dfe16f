package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups the app's secrets in the OS keychain.
	KeyringService = "leadflow"

	// PasswordEnv is consulted when the keychain has nothing.
	PasswordEnv = "LEADFLOW_IMAP_PASSWORD"
)

var getenv = os.Getenv

func GetIMAPPassword(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		pw, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}
	if pw := getenv(PasswordEnv); strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	return "", errors.New("IMAP password not found (set it in keychain or via " + PasswordEnv + ")")
}

func SetIMAPPassword(keyringAccount string, password string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, password)
}

func DeleteIMAPPassword(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

func IMAPKeyringAccount(username, host string) string {
	return fmt.Sprintf("leadflow:imap:%s@%s", username, host)
}
