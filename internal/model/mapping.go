package model

// EntryKind tags the variant of a MappingEntry.
type EntryKind int

const (
	// KindClass is a class rename.
	KindClass EntryKind = iota
	// KindField is a field rename.
	KindField
	// KindMethod is a method rename.
	KindMethod
)

// String returns the record keyword used by the tiny format.
func (k EntryKind) String() string {
	switch k {
	case KindClass:
		return "CLASS"
	case KindField:
		return "FIELD"
	case KindMethod:
		return "METHOD"
	default:
		return "UNKNOWN"
	}
}

// MappingEntry is a single rename.
//
// Class entries use Name as the source class and Target as the destination class.
// Member entries use Owner, Name and Desc in the source namespace and Target as
// the destination member name.
type MappingEntry struct {
	Kind   EntryKind
	Owner  string
	Name   string
	Desc   string
	Target string
}

// ClassMapping builds a class entry.
func ClassMapping(src, dst string) MappingEntry {
	return MappingEntry{Kind: KindClass, Name: src, Target: dst}
}

// FieldMapping builds a field entry.
func FieldMapping(owner, name, desc, dst string) MappingEntry {
	return MappingEntry{Kind: KindField, Owner: owner, Name: name, Desc: desc, Target: dst}
}

// MethodMapping builds a method entry.
func MethodMapping(owner, name, desc, dst string) MappingEntry {
	return MappingEntry{Kind: KindMethod, Owner: owner, Name: name, Desc: desc, Target: dst}
}

// Key returns the member key of a field or method entry.
func (e MappingEntry) Key() MemberKey {
	return MemberKey{Owner: e.Owner, Name: e.Name, Desc: e.Desc}
}

// LookupSummary describes a composed lookup.
type LookupSummary struct {
	From    Namespace
	To      Namespace
	Sources int
	Classes int
	Fields  int
	Methods int
}
