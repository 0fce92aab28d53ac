package core

// Registry owns every subsystem instance and drives their lifecycle.
// It is constructed by the top-level orchestrator and passed down;
// there is no package-level instance. All access happens on the
// single control goroutine, so the maps are unguarded.
type Registry struct {
	byName map[string]Subsystem
	byRole map[Role]Subsystem
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Subsystem),
		byRole: make(map[Role]Subsystem),
	}
}

// Register inserts a subsystem, overwriting any previous entry with the
// same name, records it under its declared role if it has one, and
// immediately initializes it.
func (r *Registry) Register(s Subsystem) {
	r.byName[s.Name()] = s
	if rc, ok := s.(RoleCarrier); ok {
		r.byRole[rc.Role()] = s
	}
	s.Initialize()
}

// ByName returns the subsystem registered under name. A miss is not an
// error; callers must check ok.
func (r *Registry) ByName(name string) (Subsystem, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// ByRole returns the subsystem registered under the given role.
func (r *Registry) ByRole(role Role) (Subsystem, bool) {
	s, ok := r.byRole[role]
	return s, ok
}

// Lookup returns the subsystem registered under name asserted to the
// concrete type T. It returns false on a name miss or a type mismatch.
func Lookup[T Subsystem](r *Registry, name string) (T, bool) {
	s, ok := r.byName[name]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := s.(T)
	return t, ok
}

// UpdateAll calls Update on every enabled subsystem. Iteration order is
// map order; callers must not rely on it.
func (r *Registry) UpdateAll() {
	for _, s := range r.byName {
		if s.Enabled() {
			s.Update()
		}
	}
}

// DisableAll calls Disable on every subsystem, enabled or not.
func (r *Registry) DisableAll() {
	for _, s := range r.byName {
		s.Disable()
	}
}

// Len returns the number of registered subsystems.
func (r *Registry) Len() int { return len(r.byName) }
