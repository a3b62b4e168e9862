package classifier

import "pyuml/internal/engine/model"

type classState int

const (
	stateNoClassOpen classState = iota
	stateClassOpen
)

// unitContext is the classifier state for one unit. Classes do not nest:
// opening a class while another is open closes the previous one first.
type unitContext struct {
	namespace string
	known     map[string]struct{}
	emitter   Emitter

	state   classState
	current string
	stats   model.Stats
}

func newUnitContext(namespace string, known map[string]struct{}, emitter Emitter) *unitContext {
	return &unitContext{
		namespace: namespace,
		known:     known,
		emitter:   emitter,
	}
}

func (u *unitContext) openClass(name string) {
	if u.state == stateClassOpen {
		u.emitter.CloseClass()
	}
	u.emitter.OpenClass(u.qualified(name))
	u.state = stateClassOpen
	u.current = name
	u.stats.Classes++
}

func (u *unitContext) finish() {
	if u.state == stateClassOpen {
		u.emitter.CloseClass()
	}
	u.state = stateNoClassOpen
	u.current = ""
}

func (u *unitContext) relation(r model.Relation) {
	r.Unit = u.namespace
	u.emitter.Relation(r)
	u.stats.Relations++
}

func (u *unitContext) knows(name string) bool {
	_, ok := u.known[name]
	return ok
}

func (u *unitContext) qualified(name string) string {
	return u.namespace + "." + name
}
