package shell

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v3"
)

// Alias is a single name/value pair in the alias table.
type Alias struct {
	Name  string
	Value string
}

// String formats the alias the way the alias builtin lists it.
func (a Alias) String() string {
	return fmt.Sprintf("%s='%s'", a.Name, a.Value)
}

// AliasTable holds aliases with unique names in the order they were first
// defined.
type AliasTable struct {
	om *orderedmap.OrderedMap[string, string]
}

// NewAliasTable creates an empty table.
func NewAliasTable() *AliasTable {
	return &AliasTable{
		om: orderedmap.NewOrderedMap[string, string](),
	}
}

// Define sets the value of an alias. Redefining an alias keeps its position.
func (t *AliasTable) Define(name, value string) {
	t.om.Set(name, value)
}

// Get returns the alias with the given name.
func (t *AliasTable) Get(name string) (Alias, bool) {
	value, ok := t.om.Get(name)
	if !ok {
		return Alias{}, false
	}
	return Alias{Name: name, Value: value}, true
}

// Len returns the number of aliases.
func (t *AliasTable) Len() int {
	return t.om.Len()
}

// Names returns the alias names in table order.
func (t *AliasTable) Names() []string {
	var out []string
	for name := range t.om.Keys() {
		out = append(out, name)
	}
	return out
}

// List formats every alias in table order.
func (t *AliasTable) List() []string {
	var out []string
	for name, value := range t.om.AllFromFront() {
		out = append(out, Alias{Name: name, Value: value}.String())
	}
	return out
}

// Lookup formats the aliases matching the names in query order, names that
// aren't defined are skipped.
func (t *AliasTable) Lookup(names ...string) []string {
	var out []string
	for _, name := range names {
		if alias, ok := t.Get(name); ok {
			out = append(out, alias.String())
		}
	}
	return out
}
