package utils

import "github.com/google/uuid"

// UUIDGenerator mints identifiers for queued operations and register device
// ids. It prefers UUIDv7 so ids sort by creation time, keeping the server's
// applied-operations journal roughly chronological; if v7 generation fails,
// random v4 is the fallback.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
