// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	authgooglefeature "github.com/elearnprepa/influencerhub/internal/app/features/authgoogle"
	dashboardfeature "github.com/elearnprepa/influencerhub/internal/app/features/dashboard"
	errorsfeature "github.com/elearnprepa/influencerhub/internal/app/features/errors"
	healthfeature "github.com/elearnprepa/influencerhub/internal/app/features/health"
	homefeature "github.com/elearnprepa/influencerhub/internal/app/features/home"
	loginfeature "github.com/elearnprepa/influencerhub/internal/app/features/login"
	logoutfeature "github.com/elearnprepa/influencerhub/internal/app/features/logout"
	influencerstore "github.com/elearnprepa/influencerhub/internal/app/store/influencers"
	"github.com/elearnprepa/influencerhub/internal/app/store/oauthstate"
	"github.com/elearnprepa/influencerhub/internal/app/store/promousage"
	"github.com/elearnprepa/influencerhub/internal/app/system/auth"
	"github.com/elearnprepa/influencerhub/internal/app/system/authcheck"
	"github.com/elearnprepa/influencerhub/internal/app/system/guard"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app. WAFFLE calls it after configuration, DB connection, schema setup,
// and the Startup hook have completed.
//
// Middleware order matters here: the session middleware resolves the
// visitor's partner status first, then the guard enforces access on every
// route, and CSRF wraps the lot so every rendered form can embed a token.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fresh partner check on every request: revoking an influencer row
	// locks the account out on their next page load.
	influencers := influencerstore.New(deps.Pool)
	checker := authcheck.New(influencers)
	sessionMgr.SetPartnerChecker(checker)

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errorsHandler := errorsfeature.NewHandler()

	stateStore := oauthstate.New(deps.Pool)
	usage := promousage.New(deps.Pool)

	csrfProtect := csrf.Protect(
		[]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
	)

	r := chi.NewRouter()

	r.Use(csrfProtect)
	r.Use(sessionMgr.LoadSessionUser)
	r.Use(guard.Middleware(errorsHandler, logger))

	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Pool, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Authentication
	loginHandler := loginfeature.NewHandler(logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Mount("/signup", loginfeature.Routes(loginHandler))

	googleHandler := authgooglefeature.NewHandler(
		sessionMgr, stateStore, checker,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
		logger,
	)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
	r.Mount("/api/auth/callback", authgooglefeature.CallbackRoutes(googleHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Partner dashboard
	dashboardHandler := dashboardfeature.NewHandler(influencers, usage, errorsHandler, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

	// Root redirect and not-found fallback
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler, errorsHandler))

	return r, nil
}
