package testhelpers

import (
	"github.com/yeai-tech/catalog-api/internal/logger"
)

// NewTestLogger creates a logger suitable for testing (discards output).
func NewTestLogger() logger.Logger {
	return logger.NewNop()
}
