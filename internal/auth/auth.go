package auth

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/idilsaglam/healthlog/internal/store/jsonstore"
)

const (
	credFileName = "credentials.json"
	// EnvToken overrides any stored credentials.
	EnvToken = "HEALTHLOG_TOKEN"
)

type TokenInfo struct {
	Token     string     `json:"token"`
	Source    string     `json:"source"`     // "env" | "file"
	CreatedAt time.Time  `json:"created_at"` // when we saved to file
	ExpiresAt *time.Time `json:"expires_at"` // optional (JWT or server-provided)
}

func credsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".healthlog"), nil
}

func credFilePath() (string, error) {
	dir, err := credsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}

// GetToken returns the active token, or nil when not logged in.
func GetToken() (*TokenInfo, error) {
	// 1) env override
	env := strings.TrimSpace(os.Getenv(EnvToken))
	if env != "" {
		return &TokenInfo{Token: stripBearer(env), Source: "env"}, nil
	}

	// 2) file
	p, err := credFilePath()
	if err != nil {
		return nil, err
	}
	var ti TokenInfo
	found, err := jsonstore.Load(p, &ti)
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}
	if !found {
		return nil, nil // not logged in
	}
	ti.Token = stripBearer(ti.Token)
	return &ti, nil
}

// Bearer satisfies the API client's token source: empty when not logged in.
func Bearer() (string, error) {
	ti, err := GetToken()
	if err != nil || ti == nil {
		return "", err
	}
	return ti.Token, nil
}

func SetToken(token string, expires *time.Time) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	p, err := credFilePath()
	if err != nil {
		return err
	}
	ti := TokenInfo{
		Token:     token,
		Source:    "file",
		CreatedAt: time.Now(),
		ExpiresAt: expires,
	}
	// owner-only
	return jsonstore.Save(p, ti, 0o600)
}

func DeleteToken() error {
	p, err := credFilePath()
	if err != nil {
		return err
	}
	return jsonstore.Remove(p)
}

// JWTPayload decodes the claims segment of a JWT without verifying it.
// ok is false for opaque tokens.
func JWTPayload(token string) (payload string, ok bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", false
	}
	seg := parts[1]
	if dec, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(seg, "=")); err == nil {
		return string(dec), true
	}
	return "", false
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
