package entropy

import (
	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/table"
)

// DenseListHolder maps each entity index to a row in a contiguous
// single-column table.Table, with a free-row list recording removed
// rows. It tracks that free list itself rather than calling
// table.Table.DeleteEntries, whose row compaction would move live rows
// out from under the index map; tombstoned rows are instead reused
// (and re-zeroed) by the next Add, so an add reuses a freed row when
// one exists and appends a table entry otherwise.
type DenseListHolder[T any] struct {
	index    map[uint32]int
	freeRows *List[int]
	schema   table.Schema
	tbl      table.Table
	acc      table.Accessor[T]
}

// NewDenseListHolder builds a DenseListHolder backed by its own
// single-column table.Table.
func NewDenseListHolder[T any]() *DenseListHolder[T] {
	schema := table.Factory.NewSchema()
	iden := table.FactoryNewElementType[T]()
	schema.Register(iden)
	entryIdx := table.Factory.NewEntryIndex()
	tbl, err := table.NewTableBuilder().
		WithSchema(schema).
		WithEntryIndex(entryIdx).
		WithElementTypes(iden).
		WithEvents(Config.tableEvents).
		Build()
	if err != nil {
		panic(bark.AddTrace(err))
	}
	return &DenseListHolder[T]{
		index:    make(map[uint32]int),
		freeRows: NewList[int](0),
		schema:   schema,
		tbl:      tbl,
		acc:      table.FactoryNewAccessor[T](iden),
	}
}

func (h *DenseListHolder[T]) Add(id EntityId) *T {
	idx := id.Index()
	if row, ok := h.index[idx]; ok {
		return h.acc.Get(row, h.tbl)
	}
	var row int
	if h.freeRows.Len() > 0 {
		row = h.freeRows.PopBack()
		var zero T
		*h.acc.Get(row, h.tbl) = zero
	} else {
		entries, err := h.tbl.NewEntries(1)
		if err != nil {
			panic(bark.AddTrace(err))
		}
		row = entries[0].Index()
	}
	h.index[idx] = row
	return h.acc.Get(row, h.tbl)
}

func (h *DenseListHolder[T]) Get(id EntityId) *T {
	row, ok := h.index[id.Index()]
	if !ok {
		return nil
	}
	return h.acc.Get(row, h.tbl)
}

func (h *DenseListHolder[T]) Has(id EntityId) bool {
	_, ok := h.index[id.Index()]
	return ok
}

func (h *DenseListHolder[T]) Remove(id EntityId) bool {
	idx := id.Index()
	row, ok := h.index[idx]
	if !ok {
		return false
	}
	delete(h.index, idx)
	h.freeRows.PushBack(row)
	return true
}

// Refresh is a no-op: rows are already reused (and re-zeroed) via
// freeRows on Add.
func (h *DenseListHolder[T]) Refresh() {}
