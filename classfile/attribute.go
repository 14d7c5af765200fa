package classfile

import "fmt"

// AttributeInfo is an attribute left in its wire form.
type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
}

func (a *AttributeInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(a.NameIndex)
}

func findAttribute(cp ConstantPool, attrs []AttributeInfo, name string) *AttributeInfo {
	for i := range attrs {
		if cp.GetUtf8(attrs[i].NameIndex) == name {
			return &attrs[i]
		}
	}
	return nil
}

// BootstrapMethod is one entry of the BootstrapMethods attribute, the table
// Dynamic and InvokeDynamic constants index into.
type BootstrapMethod struct {
	MethodRef uint16
	Arguments []uint16
}

// ParseBootstrapMethods decodes the payload of a BootstrapMethods attribute.
func ParseBootstrapMethods(info []byte) ([]BootstrapMethod, error) {
	c := newCursor(info)
	count, err := c.readU2()
	if err != nil {
		return nil, err
	}
	methods := make([]BootstrapMethod, count)
	for i := range methods {
		if methods[i].MethodRef, err = c.readU2(); err != nil {
			return nil, fmt.Errorf("bootstrap method %d: %w", i, err)
		}
		numArgs, err := c.readU2()
		if err != nil {
			return nil, fmt.Errorf("bootstrap method %d: %w", i, err)
		}
		methods[i].Arguments = make([]uint16, numArgs)
		for j := range methods[i].Arguments {
			if methods[i].Arguments[j], err = c.readU2(); err != nil {
				return nil, fmt.Errorf("bootstrap method %d argument %d: %w", i, j, err)
			}
		}
	}
	if c.remaining() > 0 {
		return nil, fmt.Errorf("%w: %d bytes after bootstrap methods", ErrTrailingData, c.remaining())
	}
	return methods, nil
}

// BootstrapMethods returns the class's bootstrap method table, or nil if the
// class has none.
func (cf *ClassFile) BootstrapMethods() ([]BootstrapMethod, error) {
	attr := cf.GetAttribute("BootstrapMethods")
	if attr == nil {
		return nil, nil
	}
	return ParseBootstrapMethods(attr.Info)
}
