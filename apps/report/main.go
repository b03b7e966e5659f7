package main

import (
	"go.uber.org/fx"

	"github.com/vevoretail/orderpulse/internal/config"
	"github.com/vevoretail/orderpulse/internal/observability"
	"github.com/vevoretail/orderpulse/internal/reportserver"
)

// The report app serves generated artifacts for browsing. No export logic
// runs here.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		reportserver.Module,
	)
	app.Run()
}
