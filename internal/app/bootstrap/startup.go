// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/elearnprepa/influencerhub/internal/app/resources"
	"github.com/elearnprepa/influencerhub/internal/app/store/oauthstate"
	"github.com/elearnprepa/influencerhub/internal/app/system/timeouts"
	"github.com/elearnprepa/influencerhub/internal/app/system/workers"
)

// stateCleanup lives for the whole process; started here, stopped in
// Shutdown.
var stateCleanup *workers.StateCleanup

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(appCfg.TimeoutPing, appCfg.TimeoutShort, appCfg.TimeoutMedium)

	resources.LoadSharedTemplates()

	stateCleanup = workers.NewStateCleanup(oauthstate.New(deps.Pool), logger, appCfg.StateCleanupInterval)
	stateCleanup.Start()

	return nil
}
