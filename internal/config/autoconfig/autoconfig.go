// autoconfig provides a way to create various instances from the [config.Config] like
// [notes.FileStore], [identity.IdentityResolver], [zap.Logger].
//
// For example, to instantiate [notes.FileStore], you can write:
//
//	builder.Invoke(func(store *notes.FileStore) error {
//	    ...
//	})
//
// Treat it as a dependency injection mechanism. Command-line flags are
// applied by decorating [config.Loader] or [config.Config].
package autoconfig

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/scribble-notes/scribble/internal/config"
	"github.com/scribble-notes/scribble/internal/log"
	"github.com/scribble-notes/scribble/internal/notes"
	"github.com/scribble-notes/scribble/pkg/document/identity"
)

const configName = "scribble"

type Builder struct {
	container *dig.Container
}

func NewBuilder() *Builder {
	c := dig.New()

	mustProvide(c.Provide(getLoader))
	mustProvide(c.Provide(getConfig))
	mustProvide(c.Provide(getLogger))
	mustProvide(c.Provide(getIdentityResolver))
	mustProvide(c.Provide(getStore))

	return &Builder{container: c}
}

func mustProvide(err error) {
	if err != nil {
		panic("failed to provide: " + err.Error())
	}
}

// Decorate replaces an instance before it is handed to any function.
// Each type can be decorated once.
func (b *Builder) Decorate(decorator interface{}, opts ...dig.DecorateOption) error {
	return dig.RootCause(b.container.Decorate(decorator, opts...))
}

// Invoke is used to invoke the function with the given dependencies.
// Instances are created once per builder.
func (b *Builder) Invoke(function interface{}, opts ...dig.InvokeOption) error {
	return dig.RootCause(b.container.Invoke(function, opts...))
}

// NewLoader returns a loader of the scribble.yaml file in dir.
func NewLoader(dir string) *config.Loader {
	return config.NewLoader(
		configName,
		"yaml",
		os.DirFS(dir),
		config.WithLogger(log.Get().Named("config")),
	)
}

func getLoader() *config.Loader {
	return NewLoader(config.DefaultConfigDir())
}

func getConfig(loader *config.Loader) (*config.Config, error) {
	cfg, err := loader.Load()
	return cfg, errors.Wrap(err, "failed to load configuration")
}

// getLogger installs the process logger when logging is enabled.
func getLogger(c *config.Config) (*zap.Logger, error) {
	if c.Log.Enabled {
		if err := log.Set(c.Log.Path, c.Log.Verbose); err != nil {
			return nil, err
		}
	}
	return log.Get(), nil
}

func getIdentityResolver(c *config.Config) *identity.IdentityResolver {
	return identity.NewResolver(identity.ParseLifecycleIdentity(c.Identity))
}

func getStore(c *config.Config, logger *zap.Logger) (*notes.FileStore, error) {
	return notes.NewFileStore(
		c.Notes.Dir,
		notes.WithInclude(c.Notes.Include...),
		notes.WithExclude(c.Notes.Exclude...),
		notes.WithLogger(logger.Named("notes")),
	)
}
