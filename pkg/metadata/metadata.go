// Package metadata provides content hashing used to sign and verify emitted documents.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
)

// Verification errors.
var (
	ErrNoHashFound  = errors.New("no hash recorded")
	ErrHashMismatch = errors.New("hash mismatch")
)

// CalculateHash computes the hex SHA-256 hash of content.
func CalculateHash(content []byte) string {
	hash := sha256.Sum256(content)

	return hex.EncodeToString(hash[:])
}

// HashFile computes the hash of the file at path.
func HashFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return CalculateHash(content), nil
}

// Verify checks that content hashes to expected.
func Verify(content []byte, expected string) error {
	return compare(CalculateHash(content), expected)
}

// VerifyFile checks that the file at path hashes to expected.
func VerifyFile(path, expected string) error {
	calculated, err := HashFile(path)
	if err != nil {
		return err
	}

	return compare(calculated, expected)
}

func compare(calculated, expected string) error {
	if expected == "" {
		return ErrNoHashFound
	}

	if calculated != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, expected, calculated)
	}

	return nil
}
