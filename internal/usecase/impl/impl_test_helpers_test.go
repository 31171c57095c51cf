package impl

import (
	"io"
	"log/slog"

	"caloricatcher/config"
	"caloricatcher/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(sessionExpiryHours int) *config.Config {
	cfg := &config.Config{}
	cfg.Auth = config.AuthConfig{
		BcryptCost:         4,
		SessionExpiryHours: sessionExpiryHours,
	}

	return cfg
}

// stubHasher avoids bcrypt's deliberate cost in service tests.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

var _ service.PasswordHasher = stubHasher{}
