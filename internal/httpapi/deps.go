package httpapi

import (
	"database/sql"
	"sync/atomic"

	"pitchdeck-scraper/internal/config"
	"pitchdeck-scraper/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Runner *Runner
}
