package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/audiobook-mcp/internal/config"
	"github.com/listenupapp/audiobook-mcp/internal/logger"
	"github.com/listenupapp/audiobook-mcp/internal/session"
	"github.com/listenupapp/audiobook-mcp/internal/tools"
	"github.com/listenupapp/audiobook-mcp/internal/validation"
)

// ProvideSession provides the single reading session shared by all transports.
func ProvideSession(i do.Injector) (*session.Session, error) {
	handle := do.MustInvoke[*CatalogHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return session.New(handle.Library, log.Logger), nil
}

// ProvideDispatcher provides the tool dispatcher.
func ProvideDispatcher(i do.Injector) (*tools.Dispatcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	handle := do.MustInvoke[*CatalogHandle](i)
	sess := do.MustInvoke[*session.Session](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return tools.New(sess, handle.Library, v, log.Logger, tools.Options{
		Strict: cfg.Tools.StrictSchema,
	})
}
