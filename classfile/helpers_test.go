package classfile

import (
	"encoding/binary"
	"testing"
)

func be16(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// header returns magic, minor 0 and the given major version.
func header(major uint16) []byte {
	return concat([]byte{0xCA, 0xFE, 0xBA, 0xBE}, be16(0), be16(major))
}

func utf8Entry(s string) []byte {
	raw := EncodeModifiedUTF8(s)
	return concat([]byte{byte(ConstantUtf8)}, be16(uint16(len(raw))), raw)
}

func classEntry(name uint16) []byte {
	return concat([]byte{byte(ConstantClass)}, be16(name))
}

func longEntry(v uint64) []byte {
	return concat([]byte{byte(ConstantLong)}, binary.BigEndian.AppendUint64(nil, v))
}

func pool(count uint16, entries ...[]byte) []byte {
	return concat(be16(count), concat(entries...))
}

// emptyBody is access_flags, this_class, super_class and zero interfaces,
// fields, methods and attributes.
var emptyBody = make([]byte, 14)

// sampleClass builds a small class: a public class "demo/Sample" extending
// java/lang/Object with one int field, one method, a Long constant and a
// SourceFile attribute.
func sampleClass() *ClassFile {
	return &ClassFile{
		Magic:        Magic,
		MinorVersion: 0,
		MajorVersion: 61,
		// Slots 10 and 17 follow the Long and Double entries.
		ConstantPool: ConstantPool{
			&ConstantClassInfo{Name: Unresolved(2)},
			NewUtf8Info("demo/Sample"),
			&ConstantClassInfo{Name: Unresolved(4)},
			NewUtf8Info("java/lang/Object"),
			NewUtf8Info("count"),
			NewUtf8Info("I"),
			NewUtf8Info("run"),
			NewUtf8Info("()V"),
			&ConstantLongInfo{Value: -42},
			nil,
			&ConstantNameAndTypeInfo{Name: Unresolved(5), Descriptor: Unresolved(6)},
			&ConstantMemberrefInfo{Kind: FieldRef, Class: Unresolved(1), NameAndType: Unresolved(11)},
			&ConstantStringInfo{Value: Unresolved(2)},
			NewUtf8Info("SourceFile"),
			NewUtf8Info("Sample.java"),
			&ConstantDoubleInfo{Value: 2.5},
			nil,
		},
		AccessFlags: AccPublic | AccSuper,
		ThisClass:   1,
		SuperClass:  3,
		Interfaces:  []uint16{},
		Fields: []MemberInfo{
			{AccessFlags: AccPrivate, NameIndex: 5, DescriptorIndex: 6, Attributes: []AttributeInfo{}},
		},
		Methods: []MemberInfo{
			{AccessFlags: AccPublic, NameIndex: 7, DescriptorIndex: 8, Attributes: []AttributeInfo{}},
		},
		Attributes: []AttributeInfo{
			{NameIndex: 14, Info: be16(15)},
		},
	}
}

func mustEncode(t testing.TB, cf *ClassFile) []byte {
	t.Helper()
	data, err := Encode(cf)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return data
}
