package config

import (
	"fmt"
	"log"
	"strings"
)

const (
	// BackendMemory keeps products in an in-process map.
	BackendMemory = "memory"
	// BackendPostgres persists products in a PostgreSQL table.
	BackendPostgres = "postgres"
)

type StoreConfig struct {
	Backend string `koanf:"backend"`
}

// String returns a string representation of the store configuration.
func (c *StoreConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Store ---\n")
	b.WriteString(fmt.Sprintf("  backend: %s\n", c.Backend))
	return b.String()
}

func (c *StoreConfig) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendPostgres:
		return nil
	case "":
		log.Println("Using default value for store.backend")
		c.Backend = BackendMemory
		return nil
	default:
		return fmt.Errorf("unknown store backend: %q", c.Backend)
	}
}
