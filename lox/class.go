package lox

import "fmt"

// A Class is a Lox class value. Calling a class constructs an
// instance; method lookup walks the superclass chain.
type Class struct {
	Name       string
	Superclass *Class // nil if the class has no superclass
	methods    map[string]*Function
}

var _ Callable = (*Class)(nil)

// NewClass returns a class with the given method table. The method
// named "init", if any, is the initializer.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, methods: methods}
}

func (c *Class) String() string { return c.Name }
func (c *Class) Type() string   { return "class" }
func (c *Class) Truth() Bool    { return True }

// Arity returns the arity of the initializer, or zero if there is none.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance of the class and runs its
// initializer, if any, bound to the instance.
func (c *Class) Call(intr *Interpreter, args []Value) (Value, error) {
	inst := &Instance{class: c, fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(inst).Call(intr, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FindMethod returns the named method, searching the superclass chain,
// or nil.
func (c *Class) FindMethod(name string) *Function {
	for cl := c; cl != nil; cl = cl.Superclass {
		if m, ok := cl.methods[name]; ok {
			return m
		}
	}
	return nil
}

// methodNames returns the names of all methods reachable from c,
// including inherited ones.
func (c *Class) methodNames() []string {
	seen := make(StringDict)
	for cl := c; cl != nil; cl = cl.Superclass {
		for name, m := range cl.methods {
			if !seen.Has(name) {
				seen[name] = m
			}
		}
	}
	return seen.Keys()
}

// An Instance is an object constructed by calling a class. Fields are
// created on first assignment and shadow methods of the same name.
// Two variables referring to the same instance share its fields.
type Instance struct {
	class  *Class
	fields map[string]Value
}

var _ Value = (*Instance)(nil)

func (inst *Instance) String() string { return fmt.Sprintf("%s instance", inst.class.Name) }
func (inst *Instance) Type() string   { return "instance" }
func (inst *Instance) Truth() Bool    { return True }

// Class returns the instance's class descriptor.
func (inst *Instance) Class() *Class { return inst.class }

// Attr returns the named field, or the named method bound to the
// instance, or nil if the instance has neither.
//
// Bound methods are constructed on demand: each lookup wraps the
// method in a fresh environment defining 'this', so the returned
// callable carries the instance with it.
func (inst *Instance) Attr(name string) Value {
	if v, ok := inst.fields[name]; ok {
		return v
	}
	if m := inst.class.FindMethod(name); m != nil {
		return m.Bind(inst)
	}
	return nil
}

// SetField stores a field value, creating the field if needed.
func (inst *Instance) SetField(name string, v Value) {
	inst.fields[name] = v
}

// attrNames returns every attribute reachable on the instance:
// its fields and its class's methods, sorted.
func (inst *Instance) attrNames() []string {
	seen := make(StringDict)
	for name, v := range inst.fields {
		seen[name] = v
	}
	for _, name := range inst.class.methodNames() {
		if !seen.Has(name) {
			seen[name] = Nil
		}
	}
	return seen.Keys()
}
