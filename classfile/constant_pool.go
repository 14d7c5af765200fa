package classfile

// ConstantPoolEntry is one decoded constant pool entry. The set of
// implementations is closed: every entry type lives in this package.
type ConstantPoolEntry interface {
	Tag() ConstantTag
	// refs returns pointers to every pool reference embedded in the entry.
	refs() []*Ref
}

type ConstantUtf8Info struct {
	Value string
	// Raw holds the payload exactly as it appeared in the class file.
	Raw []byte
}

// NewUtf8Info builds a Utf8 entry whose raw form is the modified UTF-8
// encoding of s.
func NewUtf8Info(s string) *ConstantUtf8Info {
	return &ConstantUtf8Info{Value: s, Raw: EncodeModifiedUTF8(s)}
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }
func (c *ConstantUtf8Info) refs() []*Ref     { return nil }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }
func (c *ConstantIntegerInfo) refs() []*Ref     { return nil }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }
func (c *ConstantFloatInfo) refs() []*Ref     { return nil }

// ConstantLongInfo occupies two pool slots.
type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }
func (c *ConstantLongInfo) refs() []*Ref     { return nil }

// ConstantDoubleInfo occupies two pool slots.
type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }
func (c *ConstantDoubleInfo) refs() []*Ref     { return nil }

type ConstantClassInfo struct {
	Name Ref
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }
func (c *ConstantClassInfo) refs() []*Ref     { return []*Ref{&c.Name} }

type ConstantStringInfo struct {
	Value Ref
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }
func (c *ConstantStringInfo) refs() []*Ref     { return []*Ref{&c.Value} }

// ConstantMemberrefInfo covers Fieldref, Methodref and InterfaceMethodref.
type ConstantMemberrefInfo struct {
	Kind        RefKind
	Class       Ref
	NameAndType Ref
}

func (c *ConstantMemberrefInfo) Tag() ConstantTag { return c.Kind.Tag() }
func (c *ConstantMemberrefInfo) refs() []*Ref     { return []*Ref{&c.Class, &c.NameAndType} }

type ConstantNameAndTypeInfo struct {
	Name       Ref
	Descriptor Ref
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }
func (c *ConstantNameAndTypeInfo) refs() []*Ref     { return []*Ref{&c.Name, &c.Descriptor} }

type ConstantMethodHandleInfo struct {
	Kind      MethodHandleKind
	Reference Ref
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }
func (c *ConstantMethodHandleInfo) refs() []*Ref     { return []*Ref{&c.Reference} }

type ConstantMethodTypeInfo struct {
	Descriptor Ref
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }
func (c *ConstantMethodTypeInfo) refs() []*Ref     { return []*Ref{&c.Descriptor} }

// ConstantDynamicInfo and ConstantInvokeDynamicInfo carry an index into the
// BootstrapMethods attribute, which is not a pool reference.
type ConstantDynamicInfo struct {
	BootstrapMethodAttr uint16
	NameAndType         Ref
}

func (c *ConstantDynamicInfo) Tag() ConstantTag { return ConstantDynamic }
func (c *ConstantDynamicInfo) refs() []*Ref     { return []*Ref{&c.NameAndType} }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttr uint16
	NameAndType         Ref
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }
func (c *ConstantInvokeDynamicInfo) refs() []*Ref     { return []*Ref{&c.NameAndType} }

type ConstantModuleInfo struct {
	Name Ref
}

func (c *ConstantModuleInfo) Tag() ConstantTag { return ConstantModule }
func (c *ConstantModuleInfo) refs() []*Ref     { return []*Ref{&c.Name} }

type ConstantPackageInfo struct {
	Name Ref
}

func (c *ConstantPackageInfo) Tag() ConstantTag { return ConstantPackage }
func (c *ConstantPackageInfo) refs() []*Ref     { return []*Ref{&c.Name} }

// ConstantPool holds the declared slots 1..count-1 at positions 0..count-2.
// A nil slot is the unusable slot that follows a Long or Double entry.
type ConstantPool []ConstantPoolEntry

// Count is the constant_pool_count value as it appears on the wire.
func (cp ConstantPool) Count() uint16 {
	return uint16(len(cp) + 1)
}

// Entry returns the entry at a 1-based pool index, or nil for index 0, an
// out of range index or a reserved slot.
func (cp ConstantPool) Entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

// IsReserved reports whether index is the second slot of a wide entry.
func (cp ConstantPool) IsReserved(index uint16) bool {
	if index < 2 || int(index) > len(cp) || cp[index-1] != nil {
		return false
	}
	prev := cp[index-2]
	return prev != nil && prev.Tag().Width() == 2
}

// Entries iterates over occupied slots in pool order, skipping reserved ones.
func (cp ConstantPool) Entries() func(yield func(uint16, ConstantPoolEntry) bool) {
	return func(yield func(uint16, ConstantPoolEntry) bool) {
		for i, e := range cp {
			if e == nil {
				continue
			}
			if !yield(uint16(i+1), e) {
				return
			}
		}
	}
}

// Slots returns occupied plus reserved slots. For a well-formed pool this is
// always Count()-1.
func (cp ConstantPool) Slots() int {
	return len(cp)
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantUtf8Info); ok {
		return entry.Value
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantClassInfo); ok {
		return cp.utf8Ref(entry.Name)
	}
	return ""
}

func (cp ConstantPool) GetNameAndType(index uint16) (name, descriptor string) {
	if entry, ok := cp.Entry(index).(*ConstantNameAndTypeInfo); ok {
		return cp.utf8Ref(entry.Name), cp.utf8Ref(entry.Descriptor)
	}
	return "", ""
}

func (cp ConstantPool) GetString(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantStringInfo); ok {
		return cp.utf8Ref(entry.Value)
	}
	return ""
}

func (cp ConstantPool) GetModuleName(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantModuleInfo); ok {
		return cp.utf8Ref(entry.Name)
	}
	return ""
}

func (cp ConstantPool) GetPackageName(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantPackageInfo); ok {
		return cp.utf8Ref(entry.Name)
	}
	return ""
}

func (cp ConstantPool) GetMethodType(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantMethodTypeInfo); ok {
		return cp.utf8Ref(entry.Descriptor)
	}
	return ""
}

func (cp ConstantPool) GetInteger(index uint16) (int32, bool) {
	if entry, ok := cp.Entry(index).(*ConstantIntegerInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetFloat(index uint16) (float32, bool) {
	if entry, ok := cp.Entry(index).(*ConstantFloatInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetLong(index uint16) (int64, bool) {
	if entry, ok := cp.Entry(index).(*ConstantLongInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetDouble(index uint16) (float64, bool) {
	if entry, ok := cp.Entry(index).(*ConstantDoubleInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

// GetMemberRef returns the owner class, name and descriptor of a Fieldref,
// Methodref or InterfaceMethodref entry.
func (cp ConstantPool) GetMemberRef(index uint16) (kind RefKind, className, name, descriptor string) {
	entry, ok := cp.Entry(index).(*ConstantMemberrefInfo)
	if !ok {
		return 0, "", "", ""
	}
	className = cp.GetClassName(entry.Class.Index)
	name, descriptor = cp.GetNameAndType(entry.NameAndType.Index)
	return entry.Kind, className, name, descriptor
}

func (cp ConstantPool) utf8Ref(r Ref) string {
	if e, ok := r.entry.(*ConstantUtf8Info); ok {
		return e.Value
	}
	return cp.GetUtf8(r.Index)
}
