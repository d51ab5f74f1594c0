// Package scope tracks the symbol tables the analyzer resolves names
// against: a root frame holding every top-level function and variable,
// and one function frame per function body currently being analyzed.
//
// Frames are stored flat and addressed by parent index rather than
// recursively owned by value, so entering/leaving a function scope is an
// O(1) pointer move instead of a deep clone.
package scope

import "lead/ast"

// VariableData records everything the analyzer needs to know about a
// declared variable: its kind (which drives modifiability), its resolved
// type, and whether it has been initialized yet (relevant only for Let).
type VariableData struct {
	Name        string
	VarKind     ast.VarKind
	DataType    ast.DataType
	Initialized bool
}

// FunctionData records a function signature, whether declared via `fn`
// or registered via `#extern`.
type FunctionData struct {
	Name       string
	ReturnType ast.DataType
	Params     []ast.Param
	Variadic   bool
}

type frameKind int

const (
	rootFrame frameKind = iota
	functionFrame
)

const noParent = -1

type frame struct {
	kind       frameKind
	parent     int
	name       string
	returnType ast.DataType
	variables  []VariableData
	functions  []FunctionData // only ever populated on the root frame
}

// Table is the full scope stack: frame 0 is always the root frame; every
// other frame is a function frame reachable from it by parent links.
type Table struct {
	frames  []frame
	current int
}

// NewTable returns a Table containing only the root frame.
func NewTable() *Table {
	return &Table{frames: []frame{{kind: rootFrame, parent: noParent}}, current: 0}
}

// IsRoot reports whether the table's current frame is the root frame —
// the analyzer uses this to gate `fn` definitions and reject stray
// `return` statements.
func (t *Table) IsRoot() bool {
	return t.current == 0
}

// CurrentReturnType returns the declared return type of the function
// frame currently being analyzed, and ok=false at the root.
func (t *Table) CurrentReturnType() (ast.DataType, bool) {
	if t.IsRoot() {
		return ast.DataType{}, false
	}
	return t.frames[t.current].returnType, true
}

// EnterFunction pushes a new function frame, parented to the frame that
// was current, and makes it current.
func (t *Table) EnterFunction(name string, returnType ast.DataType) {
	t.frames = append(t.frames, frame{
		kind:       functionFrame,
		parent:     t.current,
		name:       name,
		returnType: returnType,
	})
	t.current = len(t.frames) - 1
}

// Leave restores the parent of the current frame. Calling it at the root
// is a no-op; callers should check IsRoot first if that would be a bug.
func (t *Table) Leave() {
	if t.IsRoot() {
		return
	}
	t.current = t.frames[t.current].parent
}

// LookupVariable walks the current frame and its ancestors, returning the
// nearest declaration of name.
func (t *Table) LookupVariable(name string) (*VariableData, bool) {
	for idx := t.current; idx != noParent; idx = t.frames[idx].parent {
		f := &t.frames[idx]
		for i := range f.variables {
			if f.variables[i].Name == name {
				return &f.variables[i], true
			}
		}
	}
	return nil, false
}

// IsShadowing reports whether name is already declared anywhere on the
// path from the current frame to the root — per spec, there is no
// shadowing across nested scopes; a name reused in an inner scope is
// rejected exactly like a same-scope redeclaration.
func (t *Table) IsShadowing(name string) bool {
	_, found := t.LookupVariable(name)
	return found
}

// DeclareVariable registers a variable in the current frame. Callers must
// check IsShadowing first; DeclareVariable itself does not re-check.
func (t *Table) DeclareVariable(v VariableData) {
	f := &t.frames[t.current]
	f.variables = append(f.variables, v)
}

// MarkInitialized flips a Let variable to initialized after its first
// assignment. name must already be declared.
func (t *Table) MarkInitialized(name string) {
	if v, ok := t.LookupVariable(name); ok {
		v.Initialized = true
	}
}

// LookupFunction finds a function by name. Functions only ever live on
// the root frame.
func (t *Table) LookupFunction(name string) (*FunctionData, bool) {
	root := &t.frames[0]
	for i := range root.functions {
		if root.functions[i].Name == name {
			return &root.functions[i], true
		}
	}
	return nil, false
}

// DeclareFunction registers a function on the root frame. Callers must
// check LookupFunction first to raise FunctionAlreadyExists themselves.
func (t *Table) DeclareFunction(f FunctionData) {
	root := &t.frames[0]
	root.functions = append(root.functions, f)
}

// Functions returns every function registered on the root frame, in
// declaration order — used to splice an imported module's signatures
// into the importing table.
func (t *Table) Functions() []FunctionData {
	return append([]FunctionData(nil), t.frames[0].functions...)
}

// Variables returns every variable registered on the root frame, in
// declaration order — used the same way as Functions for imports.
func (t *Table) Variables() []VariableData {
	return append([]VariableData(nil), t.frames[0].variables...)
}
