package model

// AccessCategory restricts which element kinds an access flag may decorate.
type AccessCategory int

const (
	// CategoryAny flags apply to every element kind.
	CategoryAny AccessCategory = iota
	// CategoryClass flags apply to classes.
	CategoryClass
	// CategoryField flags apply to fields.
	CategoryField
	// CategoryMethod flags apply to methods.
	CategoryMethod
	// CategoryModule flags apply to module declarations.
	CategoryModule
)

// String returns a lowercase category name.
func (c AccessCategory) String() string {
	switch c {
	case CategoryAny:
		return "any"
	case CategoryClass:
		return "class"
	case CategoryField:
		return "field"
	case CategoryMethod:
		return "method"
	case CategoryModule:
		return "module"
	default:
		return "unknown"
	}
}

// AccessToken is a parsed access token: a bit set and the category it belongs to.
type AccessToken struct {
	Bits     uint32
	Category AccessCategory
}

// Scope selects when a RAS instruction applies.
type Scope int

const (
	// ScopeAll applies at build time and at runtime.
	ScopeAll Scope = iota
	// ScopeBuild applies at build time only.
	ScopeBuild
	// ScopeRuntime applies at runtime only.
	ScopeRuntime
)

// String returns the long scope word.
func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeBuild:
		return "build"
	case ScopeRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Prefix is the leading marker character of a RAS body line.
type Prefix byte

const (
	// PrefixNone is the neutral ' ' marker.
	PrefixNone Prefix = ' '
	// PrefixCompileOnly marks instructions that only apply to compile-time views.
	PrefixCompileOnly Prefix = '@'
	// PrefixStrict marks instructions whose source access must match exactly.
	PrefixStrict Prefix = '!'
)

// Instruction is one validated RAS line.
type Instruction struct {
	Scope       Scope
	Prefix      Prefix
	From        AccessToken
	To          AccessToken
	Target      MemberKey
	CompileOnly bool
}

// WidenerOperation is an access widener verb.
type WidenerOperation string

const (
	OpAccessible  WidenerOperation = "accessible"
	OpExtendable  WidenerOperation = "extendable"
	OpMutable     WidenerOperation = "mutable"
	OpNatural     WidenerOperation = "natural"
	OpDenumerised WidenerOperation = "denumerised"
)

// Directive is the access flag edit produced by one access widener line.
// Bits in Remove are cleared before bits in Add are set.
type Directive struct {
	Operation   WidenerOperation
	Kind        EntryKind
	Target      MemberKey
	Add         uint32
	Remove      uint32
	CompileOnly bool
}
