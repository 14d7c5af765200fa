package classfile

import (
	"encoding/binary"
	"fmt"
	"math"
)

type encoder struct {
	buf []byte
}

func (e *encoder) u1(v uint8)  { e.buf = append(e.buf, v) }
func (e *encoder) u2(v uint16) { e.buf = binary.BigEndian.AppendUint16(e.buf, v) }
func (e *encoder) u4(v uint32) { e.buf = binary.BigEndian.AppendUint32(e.buf, v) }
func (e *encoder) u8(v uint64) { e.buf = binary.BigEndian.AppendUint64(e.buf, v) }

// Encode writes cf in class file form. A Utf8 entry is written from Raw when
// present so decoded files re-encode byte for byte.
func Encode(cf *ClassFile) ([]byte, error) {
	e := &encoder{}
	e.u4(cf.Magic)
	e.u2(cf.MinorVersion)
	e.u2(cf.MajorVersion)
	if err := e.constantPool(cf.ConstantPool); err != nil {
		return nil, err
	}
	e.u2(uint16(cf.AccessFlags))
	e.u2(cf.ThisClass)
	e.u2(cf.SuperClass)
	if len(cf.Interfaces) > math.MaxUint16 {
		return nil, fmt.Errorf("too many interfaces: %d", len(cf.Interfaces))
	}
	e.u2(uint16(len(cf.Interfaces)))
	for _, idx := range cf.Interfaces {
		e.u2(idx)
	}
	if err := e.members(cf.Fields); err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}
	if err := e.members(cf.Methods); err != nil {
		return nil, fmt.Errorf("methods: %w", err)
	}
	if err := e.attributes(cf.Attributes); err != nil {
		return nil, err
	}
	return e.buf, nil
}

func (e *encoder) constantPool(cp ConstantPool) error {
	if len(cp) >= math.MaxUint16 {
		return fmt.Errorf("constant pool too large: %d slots", len(cp))
	}
	e.u2(cp.Count())
	for i := 0; i < len(cp); i++ {
		entry := cp[i]
		if entry == nil {
			return fmt.Errorf("constant pool slot %d is empty but does not follow a wide entry", i+1)
		}
		if err := e.entry(entry); err != nil {
			return fmt.Errorf("constant pool entry %d: %w", i+1, err)
		}
		if entry.Tag().Width() == 2 {
			i++
			if i >= len(cp) || cp[i] != nil {
				return fmt.Errorf("constant pool entry %d: %s must be followed by an empty slot", i, entry.Tag())
			}
		}
	}
	return nil
}

func (e *encoder) entry(entry ConstantPoolEntry) error {
	e.u1(uint8(entry.Tag()))
	switch c := entry.(type) {
	case *ConstantUtf8Info:
		raw := c.Raw
		if raw == nil {
			raw = EncodeModifiedUTF8(c.Value)
		}
		if len(raw) > math.MaxUint16 {
			return fmt.Errorf("utf8 constant too long: %d bytes", len(raw))
		}
		e.u2(uint16(len(raw)))
		e.buf = append(e.buf, raw...)
	case *ConstantIntegerInfo:
		e.u4(uint32(c.Value))
	case *ConstantFloatInfo:
		e.u4(math.Float32bits(c.Value))
	case *ConstantLongInfo:
		e.u8(uint64(c.Value))
	case *ConstantDoubleInfo:
		e.u8(math.Float64bits(c.Value))
	case *ConstantClassInfo:
		e.u2(c.Name.Index)
	case *ConstantStringInfo:
		e.u2(c.Value.Index)
	case *ConstantMemberrefInfo:
		if c.Kind.Tag() == 0 {
			return fmt.Errorf("member reference has no kind")
		}
		e.u2(c.Class.Index)
		e.u2(c.NameAndType.Index)
	case *ConstantNameAndTypeInfo:
		e.u2(c.Name.Index)
		e.u2(c.Descriptor.Index)
	case *ConstantMethodHandleInfo:
		e.u1(uint8(c.Kind))
		e.u2(c.Reference.Index)
	case *ConstantMethodTypeInfo:
		e.u2(c.Descriptor.Index)
	case *ConstantDynamicInfo:
		e.u2(c.BootstrapMethodAttr)
		e.u2(c.NameAndType.Index)
	case *ConstantInvokeDynamicInfo:
		e.u2(c.BootstrapMethodAttr)
		e.u2(c.NameAndType.Index)
	case *ConstantModuleInfo:
		e.u2(c.Name.Index)
	case *ConstantPackageInfo:
		e.u2(c.Name.Index)
	default:
		return fmt.Errorf("cannot encode %T", entry)
	}
	return nil
}

func (e *encoder) members(members []MemberInfo) error {
	if len(members) > math.MaxUint16 {
		return fmt.Errorf("too many members: %d", len(members))
	}
	e.u2(uint16(len(members)))
	for i := range members {
		m := &members[i]
		e.u2(uint16(m.AccessFlags))
		e.u2(m.NameIndex)
		e.u2(m.DescriptorIndex)
		if err := e.attributes(m.Attributes); err != nil {
			return fmt.Errorf("member %d: %w", i, err)
		}
	}
	return nil
}

func (e *encoder) attributes(attrs []AttributeInfo) error {
	if len(attrs) > math.MaxUint16 {
		return fmt.Errorf("too many attributes: %d", len(attrs))
	}
	e.u2(uint16(len(attrs)))
	for _, a := range attrs {
		if uint64(len(a.Info)) > math.MaxUint32 {
			return fmt.Errorf("attribute too long: %d bytes", len(a.Info))
		}
		e.u2(a.NameIndex)
		e.u4(uint32(len(a.Info)))
		e.buf = append(e.buf, a.Info...)
	}
	return nil
}
