package app

import (
	"fmt"

	"github.com/shandysiswandi/gofta/internal/fta"
)

func (a *App) initModules() error {
	if !a.config.GetBool("modules.fta.enabled") {
		return nil
	}

	module, err := fta.New(fta.Dependency{
		Config:    a.config,
		Router:    a.router,
		Goroutine: a.goroutine,
		Context:   a.ctx,
		DB:        a.db,
		UUID:      a.uuid,
		Snowflake: a.snowflake,
	})
	if err != nil {
		return fmt.Errorf("init module fta: %w", err)
	}

	a.fta = module
	a.addModule("FTA", module.Close)

	return nil
}
