package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Flyrell/wellnest/internal/prescription"
	"github.com/rs/zerolog"
)

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Config selects and configures a storage backend.
//
// Driver values:
//   - "json" (default): a single prescriptions.json file
//   - "sqlite": a SQLite database file
//
// An empty Path puts the backend's default file inside the data directory.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only
}

// Open initializes the configured store under dataDir.
func Open(cfg Config, dataDir string, log zerolog.Logger) (prescription.Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverJSON
	}

	path := strings.TrimSpace(cfg.Path)
	log = log.With().Str("component", "storage").Str("driver", driver).Logger()

	switch driver {
	case DriverJSON:
		if path == "" {
			path = filepath.Join(dataDir, "prescriptions.json")
		}
		return openJSON(path, log)
	case DriverSQLite, "sqlite3":
		if path == "" {
			path = filepath.Join(dataDir, "wellnest.db")
		}
		return openSQLite(path, cfg.BusyTimeout, log)
	default:
		return nil, fmt.Errorf("%w: %q (valid: json, sqlite)", ErrUnknownDriver, cfg.Driver)
	}
}
