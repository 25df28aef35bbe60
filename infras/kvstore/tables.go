package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"folio/infras/otel"
	"folio/shared/constant"
)

// Row is one record of a table as it is serialized in the store.
type Row = map[string]any

// Tables keeps every table as a single JSON array. Each write rewrites the whole table, so
// read-modify-write cycles must hold the table lock. Across processes the last write wins.
type Tables struct {
	store Store
	ns    Namespace
	otel  otel.Otel
	locks sync.Map
}

func NewTables(store Store, ns Namespace, otel otel.Otel) *Tables {
	return &Tables{
		store: store,
		ns:    ns,
		otel:  otel,
	}
}

// Lock serializes writers of table within this process and returns the unlock func.
func (t *Tables) Lock(table string) func() {
	value, _ := t.locks.LoadOrStore(table, &sync.Mutex{})
	mu, _ := value.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}

// Read returns the rows of table in insertion order. A missing table is empty.
func (t *Tables) Read(ctx context.Context, table string) (rows []Row, err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelKVScopeName, constant.OtelKVScopeName+".Read")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute("table", table)

	raw, err := t.store.Get(ctx, t.ns.Table(table))
	if errors.Is(err, ErrNotFound) {
		return []Row{}, nil
	}

	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: table %s: %w", ErrCorrupt, table, err)
	}

	if rows == nil {
		rows = []Row{}
	}

	return rows, nil
}

func (t *Tables) Write(ctx context.Context, table string, rows []Row) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelKVScopeName, constant.OtelKVScopeName+".Write")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{"table": table, "rows": len(rows)})

	if rows == nil {
		rows = []Row{}
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("kvstore: encode table %s: %w", table, err)
	}

	return t.store.Set(ctx, t.ns.Table(table), raw, 0)
}

func (t *Tables) Store() Store {
	return t.store
}

func (t *Tables) Namespace() Namespace {
	return t.ns
}
