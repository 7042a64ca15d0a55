package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// RoomCodeAlphabet - uppercase letters and digits without I, O, 0 and 1.
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	RoomCodeLength   = 6
)

// GenerateRoomCode - returns a random room code.
func GenerateRoomCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(RoomCodeAlphabet)))

	var code strings.Builder
	code.Grow(RoomCodeLength)

	for range RoomCodeLength {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		code.WriteByte(RoomCodeAlphabet[n.Int64()])
	}

	return code.String(), nil
}

// NormalizeRoomCode - trims and upper-cases a client supplied code.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func IsValidRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}

	for i := range len(code) {
		if strings.IndexByte(RoomCodeAlphabet, code[i]) < 0 {
			return false
		}
	}

	return true
}
