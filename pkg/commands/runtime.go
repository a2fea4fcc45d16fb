package commands

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"tableflip.dev/unsent/pkg/app"
	"tableflip.dev/unsent/pkg/archive"
	"tableflip.dev/unsent/pkg/config"
	"tableflip.dev/unsent/pkg/logging"
	"tableflip.dev/unsent/pkg/source"
	"tableflip.dev/unsent/pkg/store"
)

// runtime is what every command needs: settings, a logger and the store.
type runtime struct {
	cfg  config.Config
	log  zerolog.Logger
	disk *store.Disk
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logging.New(os.Stderr, level)

	disk, err := store.Open(cfg.Path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", disk.BasePath()).Str("source", cfg.Source).Msg("runtime ready")
	return &runtime{cfg: cfg, log: log, disk: disk}, nil
}

// options returns session options loading the archive from the configured
// source within the configured timeout.
func (r *runtime) options() app.Options {
	loader := source.Loader{
		Fetcher: source.Open(r.cfg.Source, &http.Client{Timeout: r.cfg.Timeout}),
		Prose:   r.cfg.Prose,
		Poems:   r.cfg.Poems,
	}
	timeout := r.cfg.Timeout
	log := r.log
	return app.Options{
		Loader: app.LoaderFunc(func(ctx context.Context) (*archive.Collection, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return loader.Load(ctx)
		}),
		KV:     r.disk,
		Logger: &log,
	}
}
