package staticvec

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookPosVecPush is a hook position that triggers after an element is inserted
// at the back of a vector.
var HookPosVecPush = &HookPos{Name: "Vector Push"}

// HookPosVecDrop is a hook position that triggers after a live element is
// destroyed, whether by PopBack, Clear, or an overwriting assignment. It fires
// exactly once per destroyed element.
var HookPosVecDrop = &HookPos{Name: "Vector Drop"}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if the hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility functions for types that implement the
// Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook triggers the registered Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
