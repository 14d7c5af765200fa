package classfile

import (
	"fmt"
	"strconv"
)

// Ref is an index into the constant pool made by one entry to another.
// Decoding only records Index; Resolve attaches the referenced entry. A
// resolved entry is shared with the pool and must be treated as read-only.
type Ref struct {
	Index uint16
	entry ConstantPoolEntry
}

// Unresolved returns a reference that carries only a raw index.
func Unresolved(index uint16) Ref {
	return Ref{Index: index}
}

func (r Ref) IsResolved() bool { return r.entry != nil }

// Entry returns the referenced entry, or nil if r has not been resolved.
func (r Ref) Entry() ConstantPoolEntry { return r.entry }

func (r Ref) String() string {
	if r.entry == nil {
		return "#" + strconv.Itoa(int(r.Index))
	}
	return "#" + strconv.Itoa(int(r.Index)) + "<" + r.entry.Tag().String() + ">"
}

// Lookup finds the entry at a 1-based index. Index 0, indices at or past
// Count() and the reserved slot after a Long or Double are errors.
func (cp ConstantPool) Lookup(index uint16) (ConstantPoolEntry, error) {
	if index == 0 {
		return nil, &UnresolvedReferenceError{Index: index, Reason: "index 0 is never a valid target"}
	}
	if int(index) > len(cp) {
		return nil, &UnresolvedReferenceError{
			Index:  index,
			Reason: fmt.Sprintf("out of range for pool count %d", cp.Count()),
		}
	}
	entry := cp[index-1]
	if entry == nil {
		return nil, &UnresolvedReferenceError{Index: index, Reason: "reserved slot after a wide entry"}
	}
	return entry, nil
}

// Deref returns the entry a reference points at, resolving it on the fly if
// needed. r itself is not modified.
func (cp ConstantPool) Deref(r Ref) (ConstantPoolEntry, error) {
	if r.entry != nil {
		return r.entry, nil
	}
	return cp.Lookup(r.Index)
}

// Resolve attaches every reference in the pool to its target entry. It does
// not check that the target has the kind the referencing entry expects; see
// Check for that. The first failing reference aborts resolution.
func (cp ConstantPool) Resolve() error {
	for i, entry := range cp {
		if entry == nil {
			continue
		}
		for _, ref := range entry.refs() {
			target, err := cp.Lookup(ref.Index)
			if err != nil {
				return fmt.Errorf("constant pool entry %d (%s): %w", i+1, entry.Tag(), err)
			}
			ref.entry = target
		}
	}
	return nil
}

// Resolved reports whether every reference in the pool has been resolved.
func (cp ConstantPool) Resolved() bool {
	for _, entry := range cp {
		if entry == nil {
			continue
		}
		for _, ref := range entry.refs() {
			if !ref.IsResolved() {
				return false
			}
		}
	}
	return true
}

// References returns copies of the references an entry holds, in wire order.
func References(entry ConstantPoolEntry) []Ref {
	if entry == nil {
		return nil
	}
	ptrs := entry.refs()
	refs := make([]Ref, len(ptrs))
	for i, p := range ptrs {
		refs[i] = *p
	}
	return refs
}
