package classfile

import (
	"bytes"
	"errors"
	"fmt"
	"math"
)

// entryDecoder consumes exactly one entry's payload; the tag byte has
// already been read.
type entryDecoder func(c *cursor, tag ConstantTag) (ConstantPoolEntry, error)

var decoders = map[ConstantTag]entryDecoder{
	ConstantUtf8:               decodeUtf8,
	ConstantInteger:            decodeInteger,
	ConstantFloat:              decodeFloat,
	ConstantLong:               decodeLong,
	ConstantDouble:             decodeDouble,
	ConstantClass:              decodeClass,
	ConstantString:             decodeString,
	ConstantFieldref:           decodeMemberref,
	ConstantMethodref:          decodeMemberref,
	ConstantInterfaceMethodref: decodeMemberref,
	ConstantNameAndType:        decodeNameAndType,
	ConstantMethodHandle:       decodeMethodHandle,
	ConstantMethodType:         decodeMethodType,
	ConstantDynamic:            decodeDynamic,
	ConstantInvokeDynamic:      decodeDynamic,
	ConstantModule:             decodeModule,
	ConstantPackage:            decodePackage,
}

func readRef(c *cursor) (Ref, error) {
	index, err := c.readU2()
	if err != nil {
		return Ref{}, err
	}
	return Unresolved(index), nil
}

func decodeUtf8(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	length, err := c.readU2()
	if err != nil {
		return nil, err
	}
	start := c.offset()
	raw, err := c.readExact(int(length))
	if err != nil {
		return nil, err
	}
	value, err := DecodeModifiedUTF8(raw)
	if err != nil {
		var te *TextEncodingError
		if errors.As(err, &te) {
			te.Offset += start
		}
		return nil, err
	}
	return &ConstantUtf8Info{Value: value, Raw: bytes.Clone(raw)}, nil
}

func decodeInteger(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	v, err := c.readU4()
	if err != nil {
		return nil, err
	}
	return &ConstantIntegerInfo{Value: int32(v)}, nil
}

func decodeFloat(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	v, err := c.readU4()
	if err != nil {
		return nil, err
	}
	return &ConstantFloatInfo{Value: math.Float32frombits(v)}, nil
}

func decodeLong(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	v, err := c.readU8()
	if err != nil {
		return nil, err
	}
	return &ConstantLongInfo{Value: int64(v)}, nil
}

func decodeDouble(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	v, err := c.readU8()
	if err != nil {
		return nil, err
	}
	return &ConstantDoubleInfo{Value: math.Float64frombits(v)}, nil
}

func decodeClass(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	name, err := readRef(c)
	if err != nil {
		return nil, err
	}
	return &ConstantClassInfo{Name: name}, nil
}

func decodeString(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	value, err := readRef(c)
	if err != nil {
		return nil, err
	}
	return &ConstantStringInfo{Value: value}, nil
}

func decodeMemberref(c *cursor, tag ConstantTag) (ConstantPoolEntry, error) {
	kind, ok := refKindOf(tag)
	if !ok {
		return nil, &UnknownTagError{Tag: uint8(tag), Offset: -1}
	}
	class, err := readRef(c)
	if err != nil {
		return nil, err
	}
	nameAndType, err := readRef(c)
	if err != nil {
		return nil, err
	}
	return &ConstantMemberrefInfo{Kind: kind, Class: class, NameAndType: nameAndType}, nil
}

func decodeNameAndType(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	name, err := readRef(c)
	if err != nil {
		return nil, err
	}
	descriptor, err := readRef(c)
	if err != nil {
		return nil, err
	}
	return &ConstantNameAndTypeInfo{Name: name, Descriptor: descriptor}, nil
}

func decodeMethodHandle(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	kind, err := c.readU1()
	if err != nil {
		return nil, err
	}
	reference, err := readRef(c)
	if err != nil {
		return nil, err
	}
	return &ConstantMethodHandleInfo{Kind: MethodHandleKind(kind), Reference: reference}, nil
}

func decodeMethodType(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	descriptor, err := readRef(c)
	if err != nil {
		return nil, err
	}
	return &ConstantMethodTypeInfo{Descriptor: descriptor}, nil
}

func decodeDynamic(c *cursor, tag ConstantTag) (ConstantPoolEntry, error) {
	bootstrap, err := c.readU2()
	if err != nil {
		return nil, err
	}
	nameAndType, err := readRef(c)
	if err != nil {
		return nil, err
	}
	if tag == ConstantInvokeDynamic {
		return &ConstantInvokeDynamicInfo{BootstrapMethodAttr: bootstrap, NameAndType: nameAndType}, nil
	}
	return &ConstantDynamicInfo{BootstrapMethodAttr: bootstrap, NameAndType: nameAndType}, nil
}

func decodeModule(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	name, err := readRef(c)
	if err != nil {
		return nil, err
	}
	return &ConstantModuleInfo{Name: name}, nil
}

func decodePackage(c *cursor, _ ConstantTag) (ConstantPoolEntry, error) {
	name, err := readRef(c)
	if err != nil {
		return nil, err
	}
	return &ConstantPackageInfo{Name: name}, nil
}

func readConstantPoolEntry(c *cursor) (ConstantPoolEntry, error) {
	off := c.offset()
	raw, err := c.readU1()
	if err != nil {
		return nil, err
	}
	tag, err := ParseConstantTag(raw)
	if err != nil {
		return nil, &UnknownTagError{Tag: raw, Offset: off}
	}
	decode, ok := decoders[tag]
	if !ok {
		return nil, &UnknownTagError{Tag: raw, Offset: off}
	}
	return decode(c, tag)
}

// readConstantPool reads constant_pool_count followed by the entries. Long
// and Double entries take two slots; the second is left nil.
func readConstantPool(c *cursor) (ConstantPool, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: constant pool count is 0, must be at least 1", ErrMalformedField)
	}

	pool := make(ConstantPool, count-1)
	for i := 0; i < len(pool); i++ {
		entry, err := readConstantPoolEntry(c)
		if err != nil {
			if errors.Is(err, ErrUnexpectedEOF) {
				return nil, &PoolError{Declared: count, Decoded: i, Err: err}
			}
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i+1, err)
		}
		pool[i] = entry
		if entry.Tag().Width() == 2 {
			if i+1 >= len(pool) {
				return nil, &PoolError{
					Declared: count,
					Decoded:  i,
					Err:      fmt.Errorf("%s entry at index %d is missing its filler slot", entry.Tag(), i+1),
				}
			}
			i++
		}
	}
	return pool, nil
}
