package entropy

import (
	"github.com/TheBitDrifter/table"
	"github.com/entropy-ecs/entropy/bptree"
)

// Config holds global, process-wide tuning knobs for the runtime: the
// entity id bit split, the free-list quarantine length, the component
// and group mask widths, and the B+-tree cache-line geometry. Set them
// before any Universe is created; a Universe snapshots Config at
// construction time.
var Config config = config{
	indexBits:      defaultIndexBits,
	minFree:        defaultMinFree,
	maxComponents:  defaultMaxComponents,
	maxGroups:      defaultMaxGroups,
	cacheLineBytes: defaultCacheLineBytes,
}

const (
	defaultIndexBits      = 24
	defaultMinFree        = 8
	defaultMaxComponents  = 64
	defaultMaxGroups      = 63
	defaultCacheLineBytes = 64
)

type config struct {
	indexBits      uint
	minFree        int
	maxComponents  int
	maxGroups      int
	cacheLineBytes int
	bptreeManualN  int
	bptreeManualM  int
	tableEvents    table.TableEvents
}

// SetIndexBits configures how many low bits of a packed EntityId are
// used for the index part; the remaining bits are the generation.
func (c *config) SetIndexBits(bits uint) {
	c.indexBits = bits
}

// SetMinFree configures ENT_MIN_FREE: the minimum number of pending
// free indices before an index may be recycled.
func (c *config) SetMinFree(n int) {
	c.minFree = n
}

// SetMaxComponents configures the width of the component-presence
// bitmask (MAX_COMPONENTS).
func (c *config) SetMaxComponents(n int) {
	c.maxComponents = n
}

// SetMaxGroups configures the width of the group-membership bitmask,
// minus the reserved bit 0 (MAX_GROUPS).
func (c *config) SetMaxGroups(n int) {
	c.maxGroups = n
}

// SetCacheLineBytes configures the assumed CPU cache-line size used to
// derive the B+-tree's node/leaf branching factors.
func (c *config) SetCacheLineBytes(n int) {
	c.cacheLineBytes = n
}

// SetTableEvents configures the table event callbacks used by holders
// that are backed by github.com/TheBitDrifter/table (the DenseList
// holder).
func (c *config) SetTableEvents(te table.TableEvents) {
	c.tableEvents = te
}

// SetBPTreeBranching overrides the derived node (N) and leaf (M)
// branching factors for any BPTreeHolder created afterward. Pass 0
// for either to fall back to the
// CacheLineBytes-derived value.
func (c *config) SetBPTreeBranching(n, m int) {
	c.bptreeManualN = n
	c.bptreeManualM = m
}

// bptreeConfig builds a bptree.Config snapshot from the current global
// Config, for use by BPTreeHolder's constructor.
func bptreeConfig() bptree.Config {
	return bptree.Config{
		CacheLineBytes: Config.cacheLineBytes,
		ManualN:        Config.bptreeManualN,
		ManualM:        Config.bptreeManualM,
	}
}
