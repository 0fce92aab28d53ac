package core

import "testing"

type fakeSubsystem struct {
	Base
	role    Role
	updates int
}

func newFake(name string, role Role) *fakeSubsystem {
	return &fakeSubsystem{Base: NewBase(name), role: role}
}

func (f *fakeSubsystem) Role() Role { return f.role }
func (f *fakeSubsystem) Update()    { f.updates++ }

func TestRegistry_RegisterInitializes(t *testing.T) {
	r := NewRegistry()
	s := newFake("chassis", RoleChassis)

	if s.Enabled() {
		t.Fatal("subsystem enabled before registration")
	}
	r.Register(s)
	if !s.Enabled() {
		t.Error("Register did not initialize the subsystem")
	}
}

func TestRegistry_SameNameOverwrites(t *testing.T) {
	r := NewRegistry()
	first := newFake("clamp", RoleClamp)
	second := newFake("clamp", RoleClamp)

	r.Register(first)
	r.Register(second)

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	got, ok := r.ByName("clamp")
	if !ok {
		t.Fatal("ByName miss after register")
	}
	if got.(*fakeSubsystem) != second {
		t.Error("ByName returned first registration, want second")
	}
}

func TestRegistry_LookupMissesFailSoft(t *testing.T) {
	r := NewRegistry()
	r.Register(newFake("chassis", RoleChassis))

	if _, ok := r.ByName("missing"); ok {
		t.Error("ByName returned ok for unknown name")
	}
	if _, ok := r.ByRole(RoleClamp); ok {
		t.Error("ByRole returned ok for unregistered role")
	}
}

func TestRegistry_ByRole(t *testing.T) {
	r := NewRegistry()
	s := newFake("main_chassis", RoleChassis)
	r.Register(s)

	got, ok := r.ByRole(RoleChassis)
	if !ok {
		t.Fatal("ByRole miss")
	}
	if got.Name() != "main_chassis" {
		t.Errorf("ByRole returned %q, want main_chassis", got.Name())
	}
}

func TestRegistry_LookupTypeMismatch(t *testing.T) {
	r := NewRegistry()
	r.Register(newFake("chassis", RoleChassis))

	type other struct{ *fakeSubsystem }
	if _, ok := Lookup[*fakeSubsystem](r, "chassis"); !ok {
		t.Error("Lookup failed for matching type")
	}
	if _, ok := Lookup[other](r, "chassis"); ok {
		t.Error("Lookup succeeded for mismatched type")
	}
}

func TestRegistry_UpdateAllSkipsDisabled(t *testing.T) {
	r := NewRegistry()
	on := newFake("on", Role("a"))
	off := newFake("off", Role("b"))
	r.Register(on)
	r.Register(off)
	off.Disable()

	r.UpdateAll()

	if on.updates != 1 {
		t.Errorf("enabled subsystem got %d updates, want 1", on.updates)
	}
	if off.updates != 0 {
		t.Errorf("disabled subsystem got %d updates, want 0", off.updates)
	}
}

func TestRegistry_DisableAll(t *testing.T) {
	r := NewRegistry()
	a := newFake("a", Role("a"))
	b := newFake("b", Role("b"))
	r.Register(a)
	r.Register(b)
	b.Disable()

	r.DisableAll()

	if a.Enabled() || b.Enabled() {
		t.Error("DisableAll left a subsystem enabled")
	}
}
