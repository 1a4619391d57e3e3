package entropy

import (
	"testing"
)

func TestFilterMatch(t *testing.T) {
	maskOf := func(bits ...int) Bitset {
		b := NewBitset(Config.maxComponents)
		for _, i := range bits {
			b.SetBit(i)
		}
		return b
	}

	tests := []struct {
		name       string
		require    []int
		reject     []int
		components []int
		want       bool
	}{
		{"Empty filter matches empty", nil, nil, nil, true},
		{"Empty filter matches anything", nil, nil, []int{0, 5}, true},
		{"Single require present", []int{1}, nil, []int{1}, true},
		{"Single require absent", []int{1}, nil, []int{2}, false},
		{"Require subset", []int{1, 2}, nil, []int{1, 2, 9}, true},
		{"Require partial", []int{1, 2}, nil, []int{1, 9}, false},
		{"Reject hit", nil, []int{4}, []int{4}, false},
		{"Reject miss", nil, []int{4}, []int{5}, true},
		{"Require and reject both", []int{1}, []int{4}, []int{1, 5}, true},
		{"Require met but rejected", []int{1}, []int{4}, []int{1, 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(maskOf(tt.require...), maskOf(tt.reject...))
			if got := f.Match(maskOf(tt.components...)); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryBuilder(t *testing.T) {
	u := NewUniverse()
	pos, _ := RegisterComponentOn(u, NewHashedMapHolder[Position]())
	vel, _ := RegisterComponentOn(u, NewHashedMapHolder[Velocity]())
	health, _ := RegisterComponentOn(u, NewHashedMapHolder[Health]())

	f := NewQuery().Require(pos, vel).Reject(health).Build()

	if !f.Require.Test(pos.id) || !f.Require.Test(vel.id) {
		t.Errorf("require mask missing a required component bit")
	}
	if f.Require.Test(health.id) {
		t.Errorf("require mask contains a rejected component bit")
	}
	if !f.Reject.Test(health.id) {
		t.Errorf("reject mask missing the rejected component bit")
	}
	if f.Require.Count() != 2 || f.Reject.Count() != 1 {
		t.Errorf("mask counts = (%d, %d), want (2, 1)", f.Require.Count(), f.Reject.Count())
	}
}

// TestGroupIdentityByLiteralFilter pins the design decision that groups
// are keyed by the literal (require, reject) pair: the same pair yields
// the same group (with a bumped usage count), a different pair yields a
// distinct group even when the induced match behaviour overlaps.
func TestGroupIdentityByLiteralFilter(t *testing.T) {
	u := NewUniverse()
	pos, _ := RegisterComponentOn(u, NewHashedMapHolder[Position]())
	vel, _ := RegisterComponentOn(u, NewHashedMapHolder[Velocity]())

	g1, err := u.AddGetGroup(NewQuery().Require(pos).Build())
	if err != nil {
		t.Fatalf("AddGetGroup error = %v", err)
	}
	g1Again, _ := u.AddGetGroup(NewQuery().Require(pos).Build())
	if g1 != g1Again {
		t.Errorf("identical filters produced distinct groups")
	}
	if g1.Usage() != 2 {
		t.Errorf("usage = %d after two AddGetGroup calls, want 2", g1.Usage())
	}

	g2, _ := u.AddGetGroup(NewQuery().Require(pos).Reject(vel).Build())
	if g1 == g2 {
		t.Errorf("distinct filters produced the same group")
	}
	if g1.ID() == g2.ID() {
		t.Errorf("distinct groups share a bit index")
	}
}

// TestGroupMembershipProperty checks the membership property on a
// small mutation history: after a refresh, a group's front buffer holds
// exactly the active entities matching its filter, and the added and
// removed deltas never overlap.
func TestGroupMembershipProperty(t *testing.T) {
	u := NewUniverse()
	pos, _ := RegisterComponentOn(u, NewHashedMapHolder[Position]())
	vel, _ := RegisterComponentOn(u, NewHashedMapHolder[Velocity]())

	g, _ := u.AddGetGroup(NewQuery().Require(pos).Reject(vel).Build())

	both, _ := u.CreateEntity()
	AddComponentNow(u, both, pos)
	AddComponentNow(u, both, vel)

	posOnly, _ := u.CreateEntity()
	AddComponentNow(u, posOnly, pos)

	inactive, _ := u.CreateEntity()
	AddComponentNow(u, inactive, pos)
	u.DeactivateEntity(inactive)

	u.Refresh()

	var got []EntityId
	g.Foreach(func(id EntityId) bool {
		got = append(got, id)
		return true
	})
	if len(got) != 1 || got[0] != posOnly {
		t.Fatalf("group members = %v, want exactly [%v]", got, posOnly)
	}

	// Removing the rejected component pulls one entity in, reactivating
	// pulls in the other.
	RemoveComponentNow(u, both, vel)
	u.ActivateEntity(inactive)
	u.Refresh()

	if g.Len() != 3 {
		t.Fatalf("group size = %d after second refresh, want 3", g.Len())
	}
	g.ForeachAdded(func(aid EntityId) bool {
		g.ForeachRemoved(func(rid EntityId) bool {
			if aid.Equal(rid) {
				t.Errorf("id %v present in both added and removed", aid)
			}
			return true
		})
		return true
	})
}

// TestGroupAbandonCollection verifies a group with zero usage is
// collected by the next refresh and its bit index becomes reusable.
func TestGroupAbandonCollection(t *testing.T) {
	u := NewUniverse()
	pos, _ := RegisterComponentOn(u, NewHashedMapHolder[Position]())
	vel, _ := RegisterComponentOn(u, NewHashedMapHolder[Velocity]())

	g, _ := u.AddGetGroup(NewQuery().Require(pos).Build())
	oldID := g.ID()
	u.AbandonGroup(g)
	u.Refresh()

	g2, _ := u.AddGetGroup(NewQuery().Require(vel).Build())
	if g2.ID() != oldID {
		t.Errorf("new group id = %d, want recycled %d", g2.ID(), oldID)
	}
}
