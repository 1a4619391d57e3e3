package entropy

import (
	"testing"
)

// TestEmptyUniverse covers the smallest possible lifecycle: a single
// registered component, one entity, and a refresh over no pending
// work.
func TestEmptyUniverse(t *testing.T) {
	u := NewUniverse()
	pos, err := RegisterComponentOn(u, NewHashedMapHolder[Position]())
	if err != nil {
		t.Fatalf("RegisterComponentOn error = %v", err)
	}

	id, err := u.CreateEntity()
	if err != nil {
		t.Fatalf("CreateEntity error = %v", err)
	}
	if id.Index() != 1 || id.Generation() != 0 {
		t.Errorf("first id = %v, want 1.0 (index 0 is the reserved none id)", id)
	}
	if HasComponent(u, pos, id) {
		t.Errorf("HasComponent true before any add")
	}

	if errs := u.Refresh(); len(errs) != 0 {
		t.Fatalf("Refresh() errors = %v", errs)
	}
	if !u.Valid(id) || HasComponent(u, pos, id) {
		t.Errorf("refresh changed observable state of an untouched universe")
	}
}

// TestRegisterTwiceFails pins the one-registration-per-type contract.
func TestRegisterTwiceFails(t *testing.T) {
	u := NewUniverse()
	if _, err := RegisterComponentOn(u, NewHashedMapHolder[Position]()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := RegisterComponentOn(u, NewDenseListHolder[Position]()); err == nil {
		t.Fatalf("second registration of the same type succeeded")
	}
}

// TestImmediateAddThenMatch is the immediate-path round trip: create,
// attach, group, refresh, iterate.
func TestImmediateAddThenMatch(t *testing.T) {
	u := NewUniverse()
	pos, _ := RegisterComponentOn(u, NewHashedMapHolder[Position]())

	id, _ := u.CreateEntity()
	p, err := AddComponentNow(u, id, pos)
	if err != nil {
		t.Fatalf("AddComponentNow error = %v", err)
	}
	p.X = 1

	g, _ := u.AddGetGroup(NewQuery().Require(pos).Build())
	u.Refresh()

	var got []EntityId
	g.Foreach(func(e EntityId) bool {
		got = append(got, e)
		return true
	})
	if len(got) != 1 || got[0] != id {
		t.Fatalf("group members = %v, want exactly [%v]", got, id)
	}
}

// TestDeferredFromTwoGoroutines stages a temporary entity plus one
// component on each of two goroutines, commits in a fixed A-then-B
// order, and checks both entities materialise with the expected
// components and group membership in ascending id order.
func TestDeferredFromTwoGoroutines(t *testing.T) {
	u := NewUniverse()
	pos, _ := RegisterComponentOn(u, NewHashedMapHolder[Position]())
	vel, _ := RegisterComponentOn(u, NewDenseListHolder[Velocity]())

	gPos, _ := u.AddGetGroup(NewQuery().Require(pos).Build())
	gVel, _ := u.AddGetGroup(NewQuery().Require(vel).Build())

	aDone := make(chan struct{})
	bDone := make(chan struct{})

	go func() {
		cs := NewChangeSet()
		temp := cs.NewEntity()
		p := AddComponent(cs, temp.ID(), pos)
		p.X = 1
		u.CommitChangeSet(cs)
		close(aDone)
	}()
	go func() {
		<-aDone // fixed commit order: A then B
		cs := NewChangeSet()
		temp := cs.NewEntity()
		v := AddComponent(cs, temp.ID(), vel)
		v.Y = 2
		u.CommitChangeSet(cs)
		close(bDone)
	}()
	<-bDone

	if errs := u.Refresh(); len(errs) != 0 {
		t.Fatalf("Refresh() errors = %v", errs)
	}

	// Commit order dictates resolution order: A's entity takes the
	// lower index.
	aID, _ := makeEntityID(1, 0)
	bID, _ := makeEntityID(2, 0)
	if !u.Valid(aID) || !u.Valid(bID) {
		t.Fatalf("resolved entities not valid: %v %v", u.Valid(aID), u.Valid(bID))
	}
	pv, _ := GetComponent(u, pos, aID)
	if pv == nil || pv.X != 1 {
		t.Errorf("entity A position = %v, want X=1", pv)
	}
	vv, _ := GetComponent(u, vel, bID)
	if vv == nil || vv.Y != 2 {
		t.Errorf("entity B velocity = %v, want Y=2", vv)
	}

	var posMembers, velMembers []EntityId
	gPos.Foreach(func(id EntityId) bool { posMembers = append(posMembers, id); return true })
	gVel.Foreach(func(id EntityId) bool { velMembers = append(velMembers, id); return true })
	if len(posMembers) != 1 || posMembers[0] != aID {
		t.Errorf("pos group = %v, want [%v]", posMembers, aID)
	}
	if len(velMembers) != 1 || velMembers[0] != bID {
		t.Errorf("vel group = %v, want [%v]", velMembers, bID)
	}
}

// TestDeferredDestroy covers the destroy-during-refresh scenario: an
// entity in two groups is destroyed through a change set; after the
// refresh it is gone from both fronts, listed in both removed deltas,
// and its index only becomes reusable once ENT_MIN_FREE destructions,
// its own included, are pending.
func TestDeferredDestroy(t *testing.T) {
	u := NewUniverse()
	pos, _ := RegisterComponentOn(u, NewHashedMapHolder[Position]())
	vel, _ := RegisterComponentOn(u, NewHashedMapHolder[Velocity]())

	g1, _ := u.AddGetGroup(NewQuery().Require(pos).Build())
	g2, _ := u.AddGetGroup(NewQuery().Require(vel).Build())

	id, _ := u.CreateEntity()
	AddComponentNow(u, id, pos)
	AddComponentNow(u, id, vel)
	u.Refresh()
	if g1.Len() != 1 || g2.Len() != 1 {
		t.Fatalf("setup: group sizes = (%d, %d), want (1, 1)", g1.Len(), g2.Len())
	}

	cs := NewChangeSet()
	cs.DestroyEntity(id)
	u.CommitChangeSet(cs)
	if errs := u.Refresh(); len(errs) != 0 {
		t.Fatalf("Refresh() errors = %v", errs)
	}

	if u.Valid(id) {
		t.Fatalf("entity still valid after deferred destroy")
	}
	if g1.Len() != 0 || g2.Len() != 0 {
		t.Errorf("group sizes after destroy = (%d, %d), want (0, 0)", g1.Len(), g2.Len())
	}
	for _, g := range []*Group{g1, g2} {
		found := false
		g.ForeachRemoved(func(rid EntityId) bool {
			if rid.Equal(id) {
				found = true
			}
			return true
		})
		if !found {
			t.Errorf("destroyed id missing from group %d removed delta", g.ID())
		}
	}

	// The index stays quarantined until ENT_MIN_FREE destructions are
	// pending.
	for i := 0; i < Config.minFree-1; i++ {
		e, _ := u.CreateEntity()
		u.DestroyEntity(e)
	}
	reused, _ := u.CreateEntity()
	if reused.Index() != id.Index() {
		t.Errorf("reused index = %d, want %d", reused.Index(), id.Index())
	}
	if reused.Generation() == id.Generation() {
		t.Errorf("reused id kept the old generation")
	}
}

// TestDestroyCancelsLaterAdds pins the cross-change-set resolution: a
// destroy committed before an add of the same entity wins the cycle,
// and the late add surfaces as a logged, skipped error.
func TestDestroyCancelsLaterAdds(t *testing.T) {
	u := NewUniverse()
	pos, _ := RegisterComponentOn(u, NewHashedMapHolder[Position]())

	id, _ := u.CreateEntity()
	u.Refresh()

	csA := NewChangeSet()
	csA.DestroyEntity(id)
	u.CommitChangeSet(csA)

	csB := NewChangeSet()
	AddComponent(csB, id, pos)
	u.CommitChangeSet(csB)

	errs := u.Refresh()
	if len(errs) == 0 {
		t.Fatalf("expected the late add to be reported as a skipped error")
	}
	if u.Valid(id) {
		t.Errorf("entity still valid; destroy should have won")
	}
	if HasComponent(u, pos, id) {
		t.Errorf("component added to a destroyed entity")
	}
}

// TestChangeSetLocalQueries exercises the staged has/get surface, which
// consults the change set only.
func TestChangeSetLocalQueries(t *testing.T) {
	u := NewUniverse()
	pos, _ := RegisterComponentOn(u, NewHashedMapHolder[Position]())

	cs := NewChangeSet()
	temp := cs.NewEntity()
	if HasStagedComponent(cs, temp.ID(), pos) {
		t.Errorf("HasStagedComponent true before staging an add")
	}
	p := AddComponent(cs, temp.ID(), pos)
	p.X = 9
	if !HasStagedComponent(cs, temp.ID(), pos) {
		t.Errorf("HasStagedComponent false after staging an add")
	}
	staged, ok := GetStagedComponent(cs, temp.ID(), pos)
	if !ok || staged.X != 9 {
		t.Errorf("GetStagedComponent = (%v, %v), want (X=9, true)", staged, ok)
	}

	// A second staged add of the same component shadows the first.
	p2 := AddComponent(cs, temp.ID(), pos)
	p2.X = 10
	staged, _ = GetStagedComponent(cs, temp.ID(), pos)
	if staged.X != 10 {
		t.Errorf("latest staged value = %v, want X=10", staged.X)
	}

	cs.Reset()
	if HasStagedComponent(cs, temp.ID(), pos) {
		t.Errorf("HasStagedComponent true after Reset")
	}
	if !cs.empty() {
		t.Errorf("change set not empty after Reset")
	}
}

// TestDeferredActivationOrder checks that the latest recorded activity
// state for an id wins the cycle.
func TestDeferredActivationOrder(t *testing.T) {
	u := NewUniverse()
	id, _ := u.CreateEntity()
	u.Refresh()

	cs := NewChangeSet()
	cs.DeactivateEntity(id)
	cs.ActivateEntity(id)
	cs.DeactivateEntity(id)
	u.CommitChangeSet(cs)
	u.Refresh()

	if u.Active(id) {
		t.Errorf("entity active; the last recorded deactivate should win")
	}
}

// testSystem counts group members each run.
type testSystem struct {
	pos   ComponentToken[Position]
	group *Group
	runs  int
	seen  int
}

func (s *testSystem) Init(u *Universe) error {
	g, err := u.AddGetGroup(NewQuery().Require(s.pos).Build())
	if err != nil {
		return err
	}
	s.group = g
	return nil
}

func (s *testSystem) Run(u *Universe) error {
	s.runs++
	s.seen = s.group.Len()
	return nil
}

func TestSystems(t *testing.T) {
	u := NewUniverse()
	pos, _ := RegisterComponentOn(u, NewHashedMapHolder[Position]())

	sys := &testSystem{pos: pos}
	if err := u.AddSystem(sys); err != nil {
		t.Fatalf("AddSystem error = %v", err)
	}

	id, _ := u.CreateEntity()
	AddComponentNow(u, id, pos)
	u.Refresh()

	if errs := u.RunSystems(); len(errs) != 0 {
		t.Fatalf("RunSystems errors = %v", errs)
	}
	if sys.runs != 1 || sys.seen != 1 {
		t.Errorf("system state = (runs %d, seen %d), want (1, 1)", sys.runs, sys.seen)
	}
}

func TestUniverseReset(t *testing.T) {
	u := NewUniverse()
	pos, _ := RegisterComponentOn(u, NewHashedMapHolder[Position]())
	id, _ := u.CreateEntity()
	AddComponentNow(u, id, pos)
	u.AddGetGroup(NewQuery().Require(pos).Build())
	u.Refresh()

	u.Reset()

	if u.Valid(id) {
		t.Errorf("entity survived Reset")
	}
	if _, err := RegisterComponentOn(u, NewHashedMapHolder[Position]()); err != nil {
		t.Errorf("re-registration after Reset failed: %v", err)
	}
	fresh, _ := u.CreateEntity()
	if fresh.Index() != 1 {
		t.Errorf("first post-reset index = %d, want 1", fresh.Index())
	}
}
