package app

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/viant/vecplot/engine"
	"github.com/viant/vecplot/internal/config"
	"github.com/viant/vecplot/loader"
	"github.com/viant/vecplot/space"
	"github.com/viant/vecplot/store"
	"github.com/viant/vecplot/token"
	"github.com/viant/vecplot/vecerr"
)

// OpenStore opens the dataset catalogue. Callers close the returned db.
func OpenStore(ctx context.Context, c config.StoreConfig) (*store.SQLiteStore, *sql.DB, error) {
	db, err := engine.Open(c.DSN)
	if err != nil {
		return nil, nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "app: open store", vecerr.Field("dsn", c.DSN))
	}
	st, err := store.NewSQLiteStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return st, db, nil
}

func loadDataset(ctx context.Context, c config.StoreConfig) ([]token.Raw, error) {
	st, db, err := OpenStore(ctx, c)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return st.Load(ctx, c.Dataset)
}

// Import parses the file at path and saves it as a dataset called name.
// The tokens are built into a space first so only valid tables are stored.
func Import(ctx context.Context, st *store.SQLiteStore, path, name string, opts loader.Options) (store.Dataset, error) {
	raws, err := loader.ReadFile(path, opts)
	if err != nil {
		return store.Dataset{}, err
	}
	if _, err := space.Build(raws); err != nil {
		return store.Dataset{}, err
	}
	ds, err := st.Save(ctx, name, raws)
	if err != nil {
		return store.Dataset{}, err
	}
	slog.Info("imported dataset", "id", ds.ID, "name", ds.Name, "tokens", ds.Size, "dim", ds.Dim)
	return ds, nil
}

// Nearest ranks the tokens of a stored dataset against the stored vector
// of name, returning a strict top-k computed in SQL.
func Nearest(ctx context.Context, st *store.SQLiteStore, ref, name string, k int) ([]store.Match, error) {
	query, err := st.Embedding(ctx, ref, name)
	if err != nil {
		return nil, err
	}
	return st.Nearest(ctx, ref, query, k)
}
