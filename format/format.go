// Package format renders decoded class files as text, JSON or CBOR.
package format

import (
	"encoding"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/jclass/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *Class) error
}

// NewEncoder returns the encoder registered under name: line, json or cbor.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "cbor":
		return NewCBOREncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s (expected line, json, or cbor)", name)
}

// Class is the printable view of a class file. Constants keep their raw
// reference indices so that broken pools can still be inspected.
type Class struct {
	Name       string      `json:"name"`
	Kind       string      `json:"kind"`
	SuperClass string      `json:"superClass,omitempty"`
	Interfaces []string    `json:"interfaces,omitempty"`
	Modifiers  []string    `json:"modifiers,omitempty"`
	Version    Version     `json:"version"`
	Constants  []Constant  `json:"constants"`
	Fields     []Member    `json:"fields,omitempty"`
	Methods    []Member    `json:"methods,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

type Version struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

// Constant is one constant pool slot. Reserved slots have Tag "reserved".
type Constant struct {
	Index uint16   `json:"index"`
	Tag   string   `json:"tag"`
	Refs  []uint16 `json:"refs,omitempty"`
	Value string   `json:"value,omitempty"`
}

type Member struct {
	Name       string   `json:"name"`
	Descriptor string   `json:"descriptor"`
	Type       string   `json:"type,omitempty"`
	Modifiers  []string `json:"modifiers,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
}

type Attribute struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

const reservedTag = "reserved"

type flagName struct {
	flag classfile.AccessFlags
	name string
}

// Access flag bits overlap between contexts, so each has its own table.
var (
	classFlags = []flagName{
		{classfile.AccPublic, "public"},
		{classfile.AccFinal, "final"},
		{classfile.AccSuper, "super"},
		{classfile.AccAbstract, "abstract"},
		{classfile.AccSynthetic, "synthetic"},
	}
	fieldFlags = []flagName{
		{classfile.AccPublic, "public"},
		{classfile.AccPrivate, "private"},
		{classfile.AccProtected, "protected"},
		{classfile.AccStatic, "static"},
		{classfile.AccFinal, "final"},
		{classfile.AccVolatile, "volatile"},
		{classfile.AccTransient, "transient"},
		{classfile.AccSynthetic, "synthetic"},
		{classfile.AccEnum, "enum"},
	}
	methodFlags = []flagName{
		{classfile.AccPublic, "public"},
		{classfile.AccPrivate, "private"},
		{classfile.AccProtected, "protected"},
		{classfile.AccStatic, "static"},
		{classfile.AccFinal, "final"},
		{classfile.AccSynchronized, "synchronized"},
		{classfile.AccBridge, "bridge"},
		{classfile.AccVarargs, "varargs"},
		{classfile.AccNative, "native"},
		{classfile.AccAbstract, "abstract"},
		{classfile.AccStrict, "strict"},
		{classfile.AccSynthetic, "synthetic"},
	}
)

func modifiers(flags classfile.AccessFlags, table []flagName) []string {
	var mods []string
	for _, f := range table {
		if flags&f.flag != 0 {
			mods = append(mods, f.name)
		}
	}
	return mods
}

// NewClass builds the view of cf. It works on resolved and unresolved pools
// alike.
func NewClass(cf *classfile.ClassFile) *Class {
	cp := cf.ConstantPool
	c := &Class{
		Name:       cf.ClassName(),
		Kind:       classKind(cf.AccessFlags),
		SuperClass: cf.SuperClassName(),
		Modifiers:  modifiers(cf.AccessFlags, classFlags),
		Version:    Version{Major: cf.MajorVersion, Minor: cf.MinorVersion},
		Constants:  Constants(cp),
	}
	if len(cf.Interfaces) > 0 {
		c.Interfaces = cf.InterfaceNames()
	}
	for i := range cf.Fields {
		c.Fields = append(c.Fields, newMember(cp, &cf.Fields[i], fieldFlags, false))
	}
	for i := range cf.Methods {
		c.Methods = append(c.Methods, newMember(cp, &cf.Methods[i], methodFlags, true))
	}
	for i := range cf.Attributes {
		a := &cf.Attributes[i]
		c.Attributes = append(c.Attributes, Attribute{Name: a.Name(cp), Length: len(a.Info)})
	}
	return c
}

func classKind(flags classfile.AccessFlags) string {
	switch {
	case flags.IsModule():
		return "module"
	case flags.IsAnnotation():
		return "annotation"
	case flags.IsInterface():
		return "interface"
	case flags.IsEnum():
		return "enum"
	default:
		return "class"
	}
}

func newMember(cp classfile.ConstantPool, m *classfile.MemberInfo, table []flagName, method bool) Member {
	member := Member{
		Name:       m.Name(cp),
		Descriptor: m.Descriptor(cp),
		Modifiers:  modifiers(m.AccessFlags, table),
	}
	if method {
		if md, err := classfile.ParseMethodDescriptor(member.Descriptor); err == nil {
			member.Type = md.String()
		}
	} else if ft, err := classfile.ParseFieldDescriptor(member.Descriptor); err == nil {
		member.Type = ft.String()
	}
	for i := range m.Attributes {
		member.Attributes = append(member.Attributes, m.Attributes[i].Name(cp))
	}
	return member
}

// Constants lists every slot of the pool, reserved ones included.
func Constants(cp classfile.ConstantPool) []Constant {
	constants := make([]Constant, 0, cp.Slots())
	for i := 1; i <= cp.Slots(); i++ {
		index := uint16(i)
		entry := cp.Entry(index)
		if entry == nil {
			constants = append(constants, Constant{Index: index, Tag: reservedTag})
			continue
		}
		c := Constant{Index: index, Tag: entry.Tag().String(), Value: describe(cp, entry)}
		for _, r := range classfile.References(entry) {
			c.Refs = append(c.Refs, r.Index)
		}
		constants = append(constants, c)
	}
	return constants
}

// describe renders the value of an entry, following references by index.
func describe(cp classfile.ConstantPool, entry classfile.ConstantPoolEntry) string {
	switch e := entry.(type) {
	case *classfile.ConstantUtf8Info:
		return strconv.Quote(e.Value)
	case *classfile.ConstantIntegerInfo:
		return strconv.FormatInt(int64(e.Value), 10)
	case *classfile.ConstantFloatInfo:
		return strconv.FormatFloat(float64(e.Value), 'g', -1, 32)
	case *classfile.ConstantLongInfo:
		return strconv.FormatInt(e.Value, 10)
	case *classfile.ConstantDoubleInfo:
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *classfile.ConstantClassInfo:
		return cp.GetUtf8(e.Name.Index)
	case *classfile.ConstantStringInfo:
		return strconv.Quote(cp.GetUtf8(e.Value.Index))
	case *classfile.ConstantModuleInfo:
		return cp.GetUtf8(e.Name.Index)
	case *classfile.ConstantPackageInfo:
		return cp.GetUtf8(e.Name.Index)
	case *classfile.ConstantMethodTypeInfo:
		return cp.GetUtf8(e.Descriptor.Index)
	case *classfile.ConstantNameAndTypeInfo:
		return cp.GetUtf8(e.Name.Index) + ":" + cp.GetUtf8(e.Descriptor.Index)
	case *classfile.ConstantMemberrefInfo:
		name, desc := cp.GetNameAndType(e.NameAndType.Index)
		return cp.GetClassName(e.Class.Index) + "." + name + ":" + desc
	case *classfile.ConstantMethodHandleInfo:
		target := cp.Entry(e.Reference.Index)
		if _, ok := target.(*classfile.ConstantMemberrefInfo); ok {
			return e.Kind.String() + " " + describe(cp, target)
		}
		return e.Kind.String() + " #" + strconv.Itoa(int(e.Reference.Index))
	case *classfile.ConstantDynamicInfo:
		return dynamic(cp, e.BootstrapMethodAttr, e.NameAndType.Index)
	case *classfile.ConstantInvokeDynamicInfo:
		return dynamic(cp, e.BootstrapMethodAttr, e.NameAndType.Index)
	}
	return ""
}

func dynamic(cp classfile.ConstantPool, bootstrap, nameAndType uint16) string {
	name, desc := cp.GetNameAndType(nameAndType)
	return fmt.Sprintf("#%d:%s:%s", bootstrap, name, desc)
}

func joinOrDash(parts []string) string {
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
