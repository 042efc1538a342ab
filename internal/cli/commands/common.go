package commands

import (
	"fmt"

	"github.com/modelverse-dev/modelverse/internal/cli/auth"
	"github.com/modelverse-dev/modelverse/internal/cli/client"
	"github.com/modelverse-dev/modelverse/internal/cli/config"
	"github.com/modelverse-dev/modelverse/internal/cli/credstore"
	"github.com/modelverse-dev/modelverse/internal/cli/nav"
	"github.com/modelverse-dev/modelverse/internal/cli/pipeline"
	"github.com/modelverse-dev/modelverse/internal/cli/serverselect"
	"github.com/modelverse-dev/modelverse/internal/cli/session"
	"github.com/modelverse-dev/modelverse/internal/logger"
)

// app bundles the wired client core for one command invocation: credential
// store, hydrated session, gateway, router and the pipeline-backed API
// client. Constructed at bootstrap and injected downward; nothing in the
// core is a package-level singleton.
type app struct {
	server  *config.Server
	store   credstore.Store
	session *session.Context
	gateway *auth.Gateway
	router  *nav.Router
	api     *client.Client
}

// newApp loads the project config, resolves the active server and wires
// the core against it.
func newApp(serverAlias string) (*app, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'modelverse init' to create a configuration file", err)
	}

	server, err := serverselect.ResolveServer(cfg, serverAlias)
	if err != nil {
		return nil, err
	}
	if server.URL == "" {
		return nil, fmt.Errorf("server URL is empty. Please edit %s and add a valid URL", config.ConfigFileName)
	}

	log := logger.GetLogger()

	store := credstore.NewKeyring(server.URL, log)
	sess := session.NewContext()
	sess.Subscribe(func(s session.State) {
		log.Debug().Bool("authenticated", s.Authenticated).Msg("Session state changed")
	})
	sess.Hydrate(store)

	gateway := auth.New(server.URL, store, sess, log)
	router := nav.NewRouter(sess, log)
	transport := pipeline.NewTransport(nil, store, gateway, router, log)

	return &app{
		server:  server,
		store:   store,
		session: sess,
		gateway: gateway,
		router:  router,
		api:     client.New(server.URL, pipeline.NewHTTPClient(transport)),
	}, nil
}

// requireAuth fails fast with a friendly message when no credential is
// stored, before any network round trip.
func (a *app) requireAuth() error {
	if !a.session.Current().Authenticated {
		return fmt.Errorf("not authenticated. Please run 'modelverse login' first")
	}
	return nil
}
