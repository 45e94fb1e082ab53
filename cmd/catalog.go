package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/naija-prop/intel-cli/internal/catalog"
	"github.com/naija-prop/intel-cli/internal/db"
	"github.com/naija-prop/intel-cli/internal/query"
)

// openSource builds the configured catalog backend. The returned closer
// releases any underlying connection and is safe to call once.
func openSource(ctx context.Context) (catalog.Source, func(), error) {
	switch cfg.Catalog.Driver {
	case "file":
		return catalog.NewFileSource(cfg.Catalog.Path), func() {}, nil

	case "sqlite":
		source, err := catalog.NewSQLite(cfg.Catalog.Path)
		if err != nil {
			return nil, nil, err
		}
		return source, func() { _ = source.Close() }, nil

	case "postgres":
		pool, err := db.Connect(ctx, cfg.Catalog.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewPostgres(pool), pool.Close, nil

	default:
		return nil, nil, eris.Errorf("unknown catalog driver %q", cfg.Catalog.Driver)
	}
}

// openFacade loads the catalog and wraps it in the query facade. Most
// commands only need this read path.
func openFacade(ctx context.Context) (*query.Facade, *catalog.Handle, func(), error) {
	source, closer, err := openSource(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	handle, err := catalog.NewHandle(ctx, source)
	if err != nil {
		closer()
		return nil, nil, nil, err
	}

	return query.New(handle), handle, closer, nil
}
