package security

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// secret reads JWT_SECRET on every call rather than caching it, so token
// signing always reflects the current environment.
func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// Account is a login principal configured through the environment. There is
// no user table: the station runs with a handful of shared accounts.
type Account struct {
	Username     string
	PasswordHash string
	Role         string
}

// AccountsFromEnv reads the ADMIN_/STAFF_/VOLUNTEER_ credential pairs.
// Accounts with an empty username or hash are skipped.
func AccountsFromEnv() []Account {
	accounts := []Account{}
	for _, candidate := range []Account{
		{Username: os.Getenv("ADMIN_USER"), PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"), Role: "admin"},
		{Username: os.Getenv("STAFF_USER"), PasswordHash: os.Getenv("STAFF_PASSWORD_HASH"), Role: "staff"},
		{Username: os.Getenv("VOLUNTEER_USER"), PasswordHash: os.Getenv("VOLUNTEER_PASSWORD_HASH"), Role: "volunteer"},
	} {
		if candidate.Username != "" && candidate.PasswordHash != "" {
			accounts = append(accounts, candidate)
		}
	}
	return accounts
}

func AuthenticateUser(username, password string, accounts []Account) (*Account, error) {
	for _, account := range accounts {
		if account.Username != username {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
			return nil, err
		}
		return &account, nil
	}
	return nil, fmt.Errorf("unknown user %s", username)
}

func GenerateJWT(username string, role string) (string, error) {
	if len(secret()) == 0 {
		return "", fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	claims := jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour * 120).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}
