package entropy

import "fmt"

// EntityId packs an index (low bits) and a generation (high bits) into
// a single integer. Equality and ordering are by index only; the
// generation is a liveness tag, not part of identity, much like
// github.com/TheBitDrifter/table's EntryID/Recycled pairing.
//
// A zero EntityId (index 0, generation 0) is reserved to mean "none";
// EntityManager never issues it, by permanently retiring index 0 at
// construction.
type EntityId uint32

// ZeroEntity is the reserved "none" identifier.
const ZeroEntity EntityId = 0

// idGeometry derives the index/generation bit split and masks from
// Config. Config's bit-width knobs are meant to be set once at process
// start; idGeometry is recomputed from the live Config on every call,
// which is cheap and keeps every EntityId method, and every
// EntityManager built later, reading the same split.
type idGeometry struct {
	indexBits uint
	genBits   uint
	indexMask uint32
	genMask   uint32
	maxIndex  uint32
	maxGen    uint32
	tempGen   uint32 // reserved sentinel generation: TEMP_ENTITY_GEN
}

func currentIDGeometry() idGeometry {
	indexBits := Config.indexBits
	if indexBits == 0 || indexBits >= 32 {
		indexBits = defaultIndexBits
	}
	genBits := 32 - indexBits
	indexMask := uint32(1)<<indexBits - 1
	genMask := ^indexMask
	maxGen := uint32(1)<<genBits - 1
	return idGeometry{
		indexBits: indexBits,
		genBits:   genBits,
		indexMask: indexMask,
		genMask:   genMask,
		maxIndex:  indexMask,
		maxGen:    maxGen,
		tempGen:   maxGen, // top generation value is reserved for temp ids
	}
}

// makeEntityID packs index and generation, failing with
// EntityOverflowError if either exceeds the configured bit width.
func makeEntityID(index, generation uint32) (EntityId, error) {
	g := currentIDGeometry()
	if index > g.maxIndex || generation > g.maxGen {
		return ZeroEntity, EntityOverflowError{Index: index, Generation: generation}
	}
	return EntityId(generation<<g.indexBits | index), nil
}

// Index returns the index part of id.
func (id EntityId) Index() uint32 {
	return uint32(id) & currentIDGeometry().indexMask
}

// Generation returns the generation part of id.
func (id EntityId) Generation() uint32 {
	g := currentIDGeometry()
	return (uint32(id) & g.genMask) >> g.indexBits
}

// IsTemp reports whether id carries the reserved TEMP_ENTITY_GEN
// sentinel generation, i.e. it was minted by ChangeSet.CreateEntity and
// has not yet been resolved by a refresh.
func (id EntityId) IsTemp() bool {
	g := currentIDGeometry()
	return id.Generation() == g.tempGen
}

// Packed returns the raw packed integer value of id.
func (id EntityId) Packed() uint32 {
	return uint32(id)
}

// Equal compares two ids by index only.
func (id EntityId) Equal(other EntityId) bool {
	return id.Index() == other.Index()
}

// Less orders two ids by index only, so SortedList[EntityId] dedupes
// and merges purely on identity.
func (id EntityId) Less(other EntityId) bool {
	return id.Index() < other.Index()
}

// String renders "index.generation".
func (id EntityId) String() string {
	return fmt.Sprintf("%d.%d", id.Index(), id.Generation())
}

func entityIDLess(a, b EntityId) bool {
	return a.Less(b)
}
