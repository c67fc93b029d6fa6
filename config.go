package simp

import "fmt"

// Config is a typed key/value settings bag, following the same
// assign-once/check-on-read discipline the teacher's grammar/compiler
// configuration used, just re-keyed for the interpreter's own knobs.
type Config map[string]*cfgVal

// Configuration keys recognized by NewContext and cmd/simp.
const (
	// ConfigGCThreshold is the live-object count above which the heap
	// runs a collection before satisfying the next allocation. Zero
	// disables the automatic trigger.
	ConfigGCThreshold = "heap.gc_threshold"
	// ConfigSymtabHint is advisory only; the symbol table is always
	// the fixed 389-bucket table spec.md §4.3 describes, but callers
	// can record their own sizing expectations here for diagnostics.
	ConfigSymtabHint = "symtab.size_hint"
	// ConfigREPLBanner toggles whether cmd/simp prints its startup
	// banner before the first prompt.
	ConfigREPLBanner = "repl.banner"
	// ConfigREPLPrompt is the prompt string the REPL prints before
	// reading each form.
	ConfigREPLPrompt = "repl.prompt"
)

// NewConfig creates a configuration primed with the interpreter's
// defaults: a 10000-object GC threshold, the 389-bucket symtab hint
// from context.c, and an enabled REPL banner with a "> " prompt.
func NewConfig() *Config {
	m := make(Config)
	m.SetInt(ConfigGCThreshold, 10000)
	m.SetInt(ConfigSymtabHint, symbolTableSize)
	m.SetBool(ConfigREPLBanner, true)
	m.SetString(ConfigREPLPrompt, "> ")
	return &m
}

type cfgValType int

const (
	cfgValType_Undefined cfgValType = iota
	cfgValType_Bool
	cfgValType_Int
	cfgValType_String
)

var cfgValTypeNames = [...]string{"undefined", "bool", "int", "string"}

func (vt cfgValType) String() string {
	if int(vt) < len(cfgValTypeNames) {
		return cfgValTypeNames[vt]
	}
	return "unknown"
}

// cfgVal is a single slot in a Config: it remembers the type it was
// first assigned and refuses to change kind or be read as another one.
type cfgVal struct {
	typ      cfgValType
	asBool   bool
	asInt    int
	asString string
}

func (v *cfgVal) assignType(vt cfgValType) {
	if v.typ != vt && v.typ != cfgValType_Undefined {
		panic(fmt.Sprintf("Can't assign `%s` to type `%s`", vt, v.typ))
	}
	v.typ = vt
}

func (v *cfgVal) checkType(vt cfgValType) {
	if v.typ != vt {
		panic(fmt.Sprintf("Can't retrieve `%s` from `%s` variable", vt, v.typ))
	}
}

// slot returns the cfgVal at path, creating it the first time path is
// assigned so Set* never needs a separate "does this key exist" branch.
func (c *Config) slot(path string) *cfgVal {
	if (*c)[path] == nil {
		(*c)[path] = &cfgVal{}
	}
	return (*c)[path]
}

func (c *Config) SetBool(path string, v bool) {
	slot := c.slot(path)
	slot.assignType(cfgValType_Bool)
	slot.asBool = v
}

func (c *Config) SetInt(path string, v int) {
	slot := c.slot(path)
	slot.assignType(cfgValType_Int)
	slot.asInt = v
}

func (c *Config) SetString(path string, v string) {
	slot := c.slot(path)
	slot.assignType(cfgValType_String)
	slot.asString = v
}

func (c *Config) GetBool(path string) bool {
	val, ok := (*c)[path]
	if !ok {
		panic(fmt.Sprintf("Bool setting `%s` does not exist", path))
	}
	val.checkType(cfgValType_Bool)
	return val.asBool
}

func (c *Config) GetInt(path string) int {
	val, ok := (*c)[path]
	if !ok {
		panic(fmt.Sprintf("Int setting `%s` does not exist", path))
	}
	val.checkType(cfgValType_Int)
	return val.asInt
}

func (c *Config) GetString(path string) string {
	val, ok := (*c)[path]
	if !ok {
		panic(fmt.Sprintf("String setting `%s` does not exist", path))
	}
	val.checkType(cfgValType_String)
	return val.asString
}
