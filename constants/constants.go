package constants

import (
	"os"
	"strconv"
	"time"
)

const FormatVersion = "3.0-Beta"

// MIDI layout
const (
	TicksPerQuarter  = 480
	DefaultBPM       = 120
	LeftHandOctave   = 3
	RightHandOctave  = 4
	LeftHandChannel  = 0
	RightHandChannel = 1
	ReleaseVelocity  = 64
	DefaultVelocity  = 90
	FallbackMidiNote = 60
)

// Value ranges
const (
	MinTempo      = 1
	MaxTempo      = 300
	MinDifficulty = 0
	MaxDifficulty = 10
	MinDegree     = 1
	MaxDegree     = 7

	// hands whose chunk sums differ by more than this are misaligned
	AlignmentTolerance = 0.01
)

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// GetOutDir is where compiled files go. Empty means next to the input.
func GetOutDir() string {
	return getEnv("AMS_OUT_DIR", "")
}

func GetPort() string {
	return getEnv("PORT", "8080")
}

func GetEnvironment() string {
	return getEnv("ENVIRONMENT", "development")
}

func GetSentryDSN() string {
	return getEnv("SENTRY_DSN", "")
}

func GetAWSRegion() string {
	return getEnv("AWS_REGION", "us-east-1")
}

// GetS3Endpoint allows pointing uploads at a local S3 (minio, localstack).
func GetS3Endpoint() string {
	return getEnv("S3_ENDPOINT", "")
}

func GetWatchInterval() time.Duration {
	ms, err := strconv.Atoi(getEnv("AMS_WATCH_INTERVAL_MS", "250"))
	if err != nil || ms <= 0 {
		ms = 250
	}
	return time.Duration(ms) * time.Millisecond
}
