package classfile

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

func TestCheckSample(t *testing.T) {
	cf := sampleClass()
	if err := cf.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestCheckPoolKinds(t *testing.T) {
	tests := []struct {
		name   string
		pool   ConstantPool
		reason string
	}{
		{
			"class name is not utf8",
			ConstantPool{&ConstantIntegerInfo{Value: 1}, &ConstantClassInfo{Name: Unresolved(1)}},
			"points at Integer, want Utf8",
		},
		{
			"member class is not a class",
			ConstantPool{
				NewUtf8Info("x"),
				NewUtf8Info("I"),
				&ConstantNameAndTypeInfo{Name: Unresolved(1), Descriptor: Unresolved(2)},
				&ConstantMemberrefInfo{Kind: FieldRef, Class: Unresolved(1), NameAndType: Unresolved(3)},
			},
			"want Class",
		},
		{
			"method ref with field descriptor",
			ConstantPool{
				NewUtf8Info("demo/A"),
				&ConstantClassInfo{Name: Unresolved(1)},
				NewUtf8Info("m"),
				NewUtf8Info("I"),
				&ConstantNameAndTypeInfo{Name: Unresolved(3), Descriptor: Unresolved(4)},
				&ConstantMemberrefInfo{Kind: MethodRef, Class: Unresolved(2), NameAndType: Unresolved(5)},
			},
			"does not start with '('",
		},
		{
			"bad method type",
			ConstantPool{NewUtf8Info("(I"), &ConstantMethodTypeInfo{Descriptor: Unresolved(1)}},
			"no ')'",
		},
		{
			"method handle kind",
			ConstantPool{NewUtf8Info("x"), &ConstantMethodHandleInfo{Kind: 12, Reference: Unresolved(1)}},
			"reference kind 12 out of range",
		},
		{
			"getField handle on a methodref",
			ConstantPool{
				NewUtf8Info("demo/A"),
				&ConstantClassInfo{Name: Unresolved(1)},
				NewUtf8Info("m"),
				NewUtf8Info("()V"),
				&ConstantNameAndTypeInfo{Name: Unresolved(3), Descriptor: Unresolved(4)},
				&ConstantMemberrefInfo{Kind: MethodRef, Class: Unresolved(2), NameAndType: Unresolved(5)},
				&ConstantMethodHandleInfo{Kind: RefGetField, Reference: Unresolved(6)},
			},
			"points at Methodref, want Fieldref",
		},
		{
			"dangling reference",
			ConstantPool{&ConstantStringInfo{Value: Unresolved(5)}},
			"out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pool.Check()
			if !errors.Is(err, ErrInvalidConstant) {
				t.Fatalf("Check() error = %v, want ErrInvalidConstant", err)
			}
			if !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("Check() error = %q, want it to mention %q", err, tt.reason)
			}
		})
	}
}

func TestCheckReportsEveryProblem(t *testing.T) {
	cp := ConstantPool{
		&ConstantIntegerInfo{Value: 1},
		&ConstantClassInfo{Name: Unresolved(1)},
		&ConstantStringInfo{Value: Unresolved(1)},
	}
	err := cp.Check()
	var checkErrs []*CheckError
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ce *CheckError
		if errors.As(e, &ce) {
			checkErrs = append(checkErrs, ce)
		}
	}
	if len(checkErrs) != 2 {
		t.Fatalf("got %d problems, want 2: %v", len(checkErrs), err)
	}
	if checkErrs[0].Index != 2 || checkErrs[1].Index != 3 {
		t.Errorf("problem indices = %d, %d, want 2, 3", checkErrs[0].Index, checkErrs[1].Index)
	}
}

func TestCheckClassFile(t *testing.T) {
	t.Run("this class", func(t *testing.T) {
		cf := sampleClass()
		cf.ThisClass = 2
		if err := cf.Check(); err == nil || !strings.Contains(err.Error(), "this_class #2") {
			t.Errorf("Check() error = %v", err)
		}
	})

	t.Run("method descriptor", func(t *testing.T) {
		cf := sampleClass()
		cf.Methods[0].DescriptorIndex = 6
		if err := cf.Check(); err == nil || !strings.Contains(err.Error(), "method 0") {
			t.Errorf("Check() error = %v", err)
		}
	})

	t.Run("bootstrap index", func(t *testing.T) {
		cf := sampleClass()
		cf.ConstantPool = append(cf.ConstantPool,
			NewUtf8Info("()V"),
			&ConstantNameAndTypeInfo{Name: Unresolved(7), Descriptor: Unresolved(18)},
			&ConstantInvokeDynamicInfo{BootstrapMethodAttr: 1, NameAndType: Unresolved(19)},
			NewUtf8Info("BootstrapMethods"),
		)
		info := binary.BigEndian.AppendUint16(nil, 1)
		info = binary.BigEndian.AppendUint16(info, 12)
		info = binary.BigEndian.AppendUint16(info, 0)
		cf.Attributes = append(cf.Attributes, AttributeInfo{NameIndex: 21, Info: info})

		err := cf.Check()
		if err == nil || !strings.Contains(err.Error(), "bootstrap method 1 out of range (1 defined)") {
			t.Fatalf("Check() error = %v", err)
		}

		cf.ConstantPool[19].(*ConstantInvokeDynamicInfo).BootstrapMethodAttr = 0
		if err := cf.Check(); err != nil {
			t.Errorf("Check() with valid bootstrap index error = %v", err)
		}
	})
}

func TestParseBootstrapMethods(t *testing.T) {
	info := []byte{0, 2, 0, 5, 0, 1, 0, 9, 0, 6, 0, 0}
	methods, err := ParseBootstrapMethods(info)
	if err != nil {
		t.Fatalf("ParseBootstrapMethods() error = %v", err)
	}
	if len(methods) != 2 || methods[0].MethodRef != 5 || len(methods[0].Arguments) != 1 ||
		methods[0].Arguments[0] != 9 || methods[1].MethodRef != 6 || len(methods[1].Arguments) != 0 {
		t.Errorf("ParseBootstrapMethods() = %+v", methods)
	}

	if _, err := ParseBootstrapMethods(info[:7]); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("truncated: error = %v, want ErrUnexpectedEOF", err)
	}
}
