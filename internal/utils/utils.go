package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"os"
	"sync/atomic"
	"time"
)

// Counter for sequential uniqueness
var sequenceCounter uint64 = 0

// entropy collects timestamp, pid, counter and random bytes into one buffer
func entropy(randomLen int) []byte {
	buf := make([]byte, 0, 64+randomLen)

	timeBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(timeBytes, uint64(time.Now().UnixNano()))
	buf = append(buf, timeBytes...)

	pidBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(pidBytes, uint32(os.Getpid()))
	buf = append(buf, pidBytes...)

	counterBytes := make([]byte, 8)
	counter := atomic.AddUint64(&sequenceCounter, 1)
	binary.BigEndian.PutUint64(counterBytes, counter)
	buf = append(buf, counterBytes...)

	randomBytes := make([]byte, randomLen)
	if _, err := rand.Read(randomBytes); err != nil {
		// Fallback to something deterministic but still unique if rand fails
		h := sha256.New()
		h.Write(buf)
		h.Write([]byte(time.Now().String()))
		randomBytes = h.Sum(nil)[:randomLen]
	}
	buf = append(buf, randomBytes...)

	return buf
}

// GenerateID creates a cryptographically secure unique ID
func GenerateID() string {
	hash := sha256.Sum256(entropy(32))

	// URL-safe base64 without padding
	encoded := base64.URLEncoding.EncodeToString(hash[:])
	return encoded[:43]
}

// GenerateShortID creates a shorter ID (good for visible IDs but still secure)
func GenerateShortID() string {
	hash := sha256.Sum256(entropy(8))

	// Use just the first 16 bytes for a shorter ID
	encoded := base64.URLEncoding.EncodeToString(hash[:16])
	return encoded[:22]
}

// GeneratePrefixedID generates an ID with a readable prefix
func GeneratePrefixedID(prefix string) string {
	return prefix + "-" + GenerateShortID()
}

// GenerateUserID creates a user ID
func GenerateUserID() string {
	return GeneratePrefixedID("user")
}

// GenerateSessionID creates a session ID
func GenerateSessionID() string {
	return GeneratePrefixedID("session")
}

// GenerateFileID creates a file ID
func GenerateFileID() string {
	return GeneratePrefixedID("file")
}
