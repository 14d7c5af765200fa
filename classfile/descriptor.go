package classfile

import (
	"fmt"
	"strings"
)

type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

type MethodDescriptor struct {
	Parameters []FieldType
	// ReturnType is nil for void.
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if md.ReturnType != nil {
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString("void")
	}
	return sb.String()
}

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// ParseFieldDescriptor parses a complete field descriptor such as
// "[Ljava/lang/String;".
func ParseFieldDescriptor(desc string) (*FieldType, error) {
	ft, n, err := parseFieldType(desc, 0)
	if err != nil {
		return nil, err
	}
	if n != len(desc) {
		return nil, fmt.Errorf("%w: field descriptor %q has trailing characters", ErrInvalidConstant, desc)
	}
	return ft, nil
}

// ParseMethodDescriptor parses a complete method descriptor such as
// "(IJ)V".
func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, fmt.Errorf("%w: method descriptor %q does not start with '('", ErrInvalidConstant, desc)
	}

	md := &MethodDescriptor{}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, n, err := parseFieldType(desc, i)
		if err != nil {
			return nil, err
		}
		md.Parameters = append(md.Parameters, *ft)
		i += n
	}
	if i >= len(desc) {
		return nil, fmt.Errorf("%w: method descriptor %q has no ')'", ErrInvalidConstant, desc)
	}
	i++

	if i == len(desc)-1 && desc[i] == 'V' {
		return md, nil
	}
	ret, n, err := parseFieldType(desc, i)
	if err != nil {
		return nil, err
	}
	if i+n != len(desc) {
		return nil, fmt.Errorf("%w: method descriptor %q has trailing characters", ErrInvalidConstant, desc)
	}
	md.ReturnType = ret
	return md, nil
}

func parseFieldType(desc string, start int) (*FieldType, int, error) {
	ft := &FieldType{}
	i := start
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if ft.ArrayDepth > 255 {
		return nil, 0, fmt.Errorf("%w: descriptor %q has more than 255 array dimensions", ErrInvalidConstant, desc)
	}
	if i >= len(desc) {
		return nil, 0, fmt.Errorf("%w: descriptor %q ends early", ErrInvalidConstant, desc)
	}

	if base, ok := baseTypes[desc[i]]; ok {
		ft.BaseType = base
		return ft, i - start + 1, nil
	}
	if desc[i] != 'L' {
		return nil, 0, fmt.Errorf("%w: descriptor %q has unexpected %q at %d", ErrInvalidConstant, desc, desc[i], i)
	}
	semicolon := strings.IndexByte(desc[i:], ';')
	if semicolon <= 1 {
		return nil, 0, fmt.Errorf("%w: descriptor %q has an unterminated or empty class name", ErrInvalidConstant, desc)
	}
	ft.ClassName = desc[i+1 : i+semicolon]
	return ft, i - start + semicolon + 1, nil
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}
