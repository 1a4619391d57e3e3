/*
Package entropy provides an in-process Entity-Component-System (ECS) runtime
with columnar per-component storage, bitset-indexed group caches, and
deferred multi-goroutine mutation through thread-local change sets.

Core Concepts:

  - Entity: a unique generational identifier that represents an object.
  - Component: a plain data record attached to an entity by type.
  - Holder: the storage instance for a single component type.
  - Group: the cached, sorted set of entities matching a (require, reject)
    filter.
  - ChangeSet: a goroutine-local, replayable log of deferred mutations.
  - Refresh: the single-writer phase that applies committed change sets and
    reconciles group caches.

Basic Usage:

	// Create a universe
	u := entropy.Factory.NewUniverse()

	// Register components, each with a storage holder
	position, _ := entropy.RegisterComponentOn(u, entropy.NewHashedMapHolder[Position]())
	velocity, _ := entropy.RegisterComponentOn(u, entropy.NewDenseListHolder[Velocity]())

	// Create an entity and attach data immediately
	id, _ := u.CreateEntity()
	pos, _ := entropy.AddComponentNow(u, id, position)
	pos.X, pos.Y = 10, 20

	// Cache the set of entities carrying both components
	moving, _ := u.AddGetGroup(entropy.NewQuery().Require(position, velocity).Build())

	// Reconcile, then iterate
	u.Refresh()
	cursor := entropy.Factory.NewCursor(moving, u)
	for cursor.Next() {
		e := cursor.CurrentEntity()
		p, _ := entropy.GetComponent(u, position, e.ID())
		v, _ := entropy.GetComponent(u, velocity, e.ID())
		p.X += v.X
		p.Y += v.Y
	}

Mutations from other goroutines go through a ChangeSet: record adds,
removes, destroys and activity changes locally, then hand the set to
Universe.CommitChangeSet. The next Refresh applies every committed set in
commit order.
*/
package entropy
