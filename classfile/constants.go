package classfile

import "strconv"

const (
	Magic = 0xCAFEBABE
)

type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSuper        AccessFlags = 0x0020
	AccSynchronized AccessFlags = 0x0020
	AccVolatile     AccessFlags = 0x0040
	AccBridge       AccessFlags = 0x0040
	AccTransient    AccessFlags = 0x0080
	AccVarargs      AccessFlags = 0x0080
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
	AccModule       AccessFlags = 0x8000
)

func (f AccessFlags) IsPublic() bool     { return f&AccPublic != 0 }
func (f AccessFlags) IsPrivate() bool    { return f&AccPrivate != 0 }
func (f AccessFlags) IsProtected() bool  { return f&AccProtected != 0 }
func (f AccessFlags) IsStatic() bool     { return f&AccStatic != 0 }
func (f AccessFlags) IsFinal() bool      { return f&AccFinal != 0 }
func (f AccessFlags) IsInterface() bool  { return f&AccInterface != 0 }
func (f AccessFlags) IsAbstract() bool   { return f&AccAbstract != 0 }
func (f AccessFlags) IsSynthetic() bool  { return f&AccSynthetic != 0 }
func (f AccessFlags) IsAnnotation() bool { return f&AccAnnotation != 0 }
func (f AccessFlags) IsEnum() bool       { return f&AccEnum != 0 }
func (f AccessFlags) IsModule() bool     { return f&AccModule != 0 }

// ConstantTag is the one-byte discriminator in front of every constant pool
// entry.
type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
	ConstantMethodHandle       ConstantTag = 15
	ConstantMethodType         ConstantTag = 16
	ConstantDynamic            ConstantTag = 17
	ConstantInvokeDynamic      ConstantTag = 18
	ConstantModule             ConstantTag = 19
	ConstantPackage            ConstantTag = 20
)

var tagNames = map[ConstantTag]string{
	ConstantUtf8:               "Utf8",
	ConstantInteger:            "Integer",
	ConstantFloat:              "Float",
	ConstantLong:               "Long",
	ConstantDouble:             "Double",
	ConstantClass:              "Class",
	ConstantString:             "String",
	ConstantFieldref:           "Fieldref",
	ConstantMethodref:          "Methodref",
	ConstantInterfaceMethodref: "InterfaceMethodref",
	ConstantNameAndType:        "NameAndType",
	ConstantMethodHandle:       "MethodHandle",
	ConstantMethodType:         "MethodType",
	ConstantDynamic:            "Dynamic",
	ConstantInvokeDynamic:      "InvokeDynamic",
	ConstantModule:             "Module",
	ConstantPackage:            "Package",
}

// ParseConstantTag maps a raw tag byte to a ConstantTag. Reserved and unknown
// values fail with an *UnknownTagError.
func ParseConstantTag(b uint8) (ConstantTag, error) {
	tag := ConstantTag(b)
	if _, ok := tagNames[tag]; !ok {
		return 0, &UnknownTagError{Tag: b, Offset: -1}
	}
	return tag, nil
}

func (t ConstantTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Tag(" + strconv.Itoa(int(t)) + ")"
}

// Width is the number of pool slots an entry with this tag occupies.
func (t ConstantTag) Width() int {
	if t == ConstantLong || t == ConstantDouble {
		return 2
	}
	return 1
}

func (t ConstantTag) IsMemberRef() bool {
	return t == ConstantFieldref || t == ConstantMethodref || t == ConstantInterfaceMethodref
}

// RefKind distinguishes the three member reference entries, which share a
// wire layout.
type RefKind uint8

const (
	FieldRef RefKind = iota + 1
	MethodRef
	InterfaceMethodRef
)

func refKindOf(tag ConstantTag) (RefKind, bool) {
	switch tag {
	case ConstantFieldref:
		return FieldRef, true
	case ConstantMethodref:
		return MethodRef, true
	case ConstantInterfaceMethodref:
		return InterfaceMethodRef, true
	}
	return 0, false
}

func (k RefKind) Tag() ConstantTag {
	switch k {
	case FieldRef:
		return ConstantFieldref
	case MethodRef:
		return ConstantMethodref
	case InterfaceMethodRef:
		return ConstantInterfaceMethodref
	}
	return 0
}

func (k RefKind) String() string {
	switch k {
	case FieldRef:
		return "Field"
	case MethodRef:
		return "Method"
	case InterfaceMethodRef:
		return "InterfaceMethod"
	}
	return "RefKind(" + strconv.Itoa(int(k)) + ")"
}

type MethodHandleKind uint8

const (
	RefGetField         MethodHandleKind = 1
	RefGetStatic        MethodHandleKind = 2
	RefPutField         MethodHandleKind = 3
	RefPutStatic        MethodHandleKind = 4
	RefInvokeVirtual    MethodHandleKind = 5
	RefInvokeStatic     MethodHandleKind = 6
	RefInvokeSpecial    MethodHandleKind = 7
	RefNewInvokeSpecial MethodHandleKind = 8
	RefInvokeInterface  MethodHandleKind = 9
)

var methodHandleKindNames = [...]string{
	RefGetField:         "getField",
	RefGetStatic:        "getStatic",
	RefPutField:         "putField",
	RefPutStatic:        "putStatic",
	RefInvokeVirtual:    "invokeVirtual",
	RefInvokeStatic:     "invokeStatic",
	RefInvokeSpecial:    "invokeSpecial",
	RefNewInvokeSpecial: "newInvokeSpecial",
	RefInvokeInterface:  "invokeInterface",
}

func (k MethodHandleKind) String() string {
	if k >= RefGetField && k <= RefInvokeInterface {
		return methodHandleKindNames[k]
	}
	return "MethodHandleKind(" + strconv.Itoa(int(k)) + ")"
}
