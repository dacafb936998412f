package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/viant/vecplot/token"
	"github.com/viant/vecplot/vecerr"
	"github.com/viant/vecplot/vector"
)

// Dataset describes one imported token table.
type Dataset struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Dim       int       `json:"dim" yaml:"dim"`
	Size      int       `json:"size" yaml:"size"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Match is a single SQL-side similarity hit.
type Match struct {
	Index int     `json:"index" yaml:"index"`
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// SQLiteStore persists token tables in a SQLite database opened with
// engine.Open, which registers the vec_cosine function used by Nearest.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore ensures the schema exists and returns a store over db.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, vecerr.New(vecerr.CodeStoreDatabaseFailure, "store: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: creating schema")
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Save stores raws as a new dataset under a generated id.
func (s *SQLiteStore) Save(ctx context.Context, name string, raws []token.Raw) (Dataset, error) {
	if len(raws) == 0 {
		return Dataset{}, vecerr.New(vecerr.CodeInvalidArgument, "store: no tokens to save", vecerr.FieldName(name))
	}
	ds := Dataset{
		ID:        uuid.NewString(),
		Name:      name,
		Dim:       len(raws[0].Vector),
		Size:      len(raws),
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Dataset{}, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: begin")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO datasets(id, name, dim, size, created_at) VALUES(?, ?, ?, ?, ?)`,
		ds.ID, ds.Name, ds.Dim, ds.Size, ds.CreatedAt.Unix()); err != nil {
		return Dataset{}, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: insert dataset", vecerr.FieldName(name))
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tokens(dataset_id, rank, name, embedding) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return Dataset{}, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: prepare insert")
	}
	defer stmt.Close()

	for rank, r := range raws {
		emb, err := vector.EncodeEmbedding(r.Vector)
		if err != nil {
			return Dataset{}, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: encode embedding", vecerr.FieldName(r.Name))
		}
		if emb == nil {
			emb = []byte{}
		}
		if _, err := stmt.ExecContext(ctx, ds.ID, rank, r.Name, emb); err != nil {
			return Dataset{}, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: insert token", vecerr.FieldName(r.Name))
		}
	}

	if err := tx.Commit(); err != nil {
		return Dataset{}, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: commit")
	}
	return ds, nil
}

// Dataset returns the dataset with the given id, or the most recent dataset
// with that name.
func (s *SQLiteStore) Dataset(ctx context.Context, ref string) (Dataset, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, name, dim, size, created_at FROM datasets
WHERE id = ? OR name = ?
ORDER BY id = ? DESC, created_at DESC, rowid DESC
LIMIT 1`, ref, ref, ref)
	ds, err := scanDataset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Dataset{}, vecerr.New(vecerr.CodeStoreNotFound, "store: dataset not found", vecerr.Field("dataset", ref))
	}
	if err != nil {
		return Dataset{}, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: read dataset", vecerr.Field("dataset", ref))
	}
	return ds, nil
}

// Datasets lists all datasets, oldest first.
func (s *SQLiteStore) Datasets(ctx context.Context) ([]Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, dim, size, created_at FROM datasets ORDER BY created_at, rowid`)
	if err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: list datasets")
	}
	defer rows.Close()

	var out []Dataset
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: scan dataset")
		}
		out = append(out, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: list datasets")
	}
	return out, nil
}

// Load returns the tokens of a dataset in rank order.
func (s *SQLiteStore) Load(ctx context.Context, ref string) ([]token.Raw, error) {
	ds, err := s.Dataset(ctx, ref)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT name, embedding FROM tokens WHERE dataset_id = ? ORDER BY rank`, ds.ID)
	if err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: load tokens", vecerr.Field("dataset", ds.ID))
	}
	defer rows.Close()

	out := make([]token.Raw, 0, ds.Size)
	for rows.Next() {
		var (
			name string
			emb  []byte
		)
		if err := rows.Scan(&name, &emb); err != nil {
			return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: scan token")
		}
		vec, err := vector.DecodeEmbeddingDim(emb, ds.Dim)
		if err != nil {
			return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: decode embedding", vecerr.FieldName(name))
		}
		out = append(out, token.Raw{Name: name, Vector: vec})
	}
	if err := rows.Err(); err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: load tokens")
	}
	return out, nil
}

// Embedding returns the stored vector of name in a dataset. When a name
// repeats, the lowest rank wins.
func (s *SQLiteStore) Embedding(ctx context.Context, ref, name string) ([]float32, error) {
	ds, err := s.Dataset(ctx, ref)
	if err != nil {
		return nil, err
	}
	var emb []byte
	err = s.db.QueryRowContext(ctx,
		`SELECT embedding FROM tokens WHERE dataset_id = ? AND name = ? ORDER BY rank LIMIT 1`,
		ds.ID, name).Scan(&emb)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, vecerr.New(vecerr.CodeNotFound, "store: token not in dataset", vecerr.FieldName(name), vecerr.Field("dataset", ref))
	}
	if err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: read embedding", vecerr.FieldName(name))
	}
	vec, err := vector.DecodeEmbeddingDim(emb, ds.Dim)
	if err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: decode embedding", vecerr.FieldName(name))
	}
	return vec, nil
}

// Remove deletes a dataset and its tokens.
func (s *SQLiteStore) Remove(ctx context.Context, ref string) error {
	ds, err := s.Dataset(ctx, ref)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: begin")
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM tokens WHERE dataset_id = ?`, ds.ID); err != nil {
		return vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: delete tokens")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, ds.ID); err != nil {
		return vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: delete dataset")
	}
	if err := tx.Commit(); err != nil {
		return vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: commit")
	}
	return nil
}

// Nearest returns the k tokens of a dataset most similar to query, ranked
// in SQL with vec_cosine. Unlike neighbor.Finder this is a strict top-k.
func (s *SQLiteStore) Nearest(ctx context.Context, ref string, query []float32, k int) ([]Match, error) {
	if k <= 0 {
		return nil, nil
	}
	ds, err := s.Dataset(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(query) != ds.Dim {
		return nil, vecerr.New(vecerr.CodeDimensionMismatch, "store: query dim mismatch",
			vecerr.FieldDim(ds.Dim), vecerr.Field("got", len(query)))
	}
	q, err := vector.EncodeEmbedding(query)
	if err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: encode query")
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT rank, name, vec_cosine(embedding, ?) AS score
FROM tokens
WHERE dataset_id = ?
ORDER BY score DESC, rank
LIMIT ?`, q, ds.ID, k)
	if err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: nearest query")
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Index, &m.Name, &m.Score); err != nil {
			return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: scan match")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, vecerr.Wrap(err, vecerr.CodeStoreDatabaseFailure, "store: nearest query")
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDataset(row scanner) (Dataset, error) {
	var (
		ds      Dataset
		created int64
	)
	if err := row.Scan(&ds.ID, &ds.Name, &ds.Dim, &ds.Size, &created); err != nil {
		return Dataset{}, err
	}
	ds.CreatedAt = time.Unix(created, 0).UTC()
	return ds, nil
}
