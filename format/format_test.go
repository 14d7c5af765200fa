package format

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/jclass/classfile"
)

func u(i uint16) classfile.Ref { return classfile.Unresolved(i) }

func sampleClassFile() *classfile.ClassFile {
	return &classfile.ClassFile{
		Magic:        classfile.Magic,
		MajorVersion: 61,
		ConstantPool: classfile.ConstantPool{
			&classfile.ConstantClassInfo{Name: u(2)},
			classfile.NewUtf8Info("demo/Sample"),
			&classfile.ConstantClassInfo{Name: u(4)},
			classfile.NewUtf8Info("java/lang/Object"),
			classfile.NewUtf8Info("count"),
			classfile.NewUtf8Info("I"),
			classfile.NewUtf8Info("run"),
			classfile.NewUtf8Info("()V"),
			&classfile.ConstantLongInfo{Value: -42},
			nil,
			&classfile.ConstantNameAndTypeInfo{Name: u(5), Descriptor: u(6)},
			&classfile.ConstantMemberrefInfo{Kind: classfile.FieldRef, Class: u(1), NameAndType: u(11)},
			&classfile.ConstantStringInfo{Value: u(2)},
			classfile.NewUtf8Info("SourceFile"),
			classfile.NewUtf8Info("Sample.java"),
			&classfile.ConstantMethodHandleInfo{Kind: classfile.RefGetField, Reference: u(12)},
		},
		AccessFlags: classfile.AccPublic | classfile.AccSuper,
		ThisClass:   1,
		SuperClass:  3,
		Fields: []classfile.MemberInfo{
			{AccessFlags: classfile.AccPrivate | classfile.AccFinal, NameIndex: 5, DescriptorIndex: 6},
		},
		Methods: []classfile.MemberInfo{
			{AccessFlags: classfile.AccPublic, NameIndex: 7, DescriptorIndex: 8},
		},
		Attributes: []classfile.AttributeInfo{
			{NameIndex: 14, Info: []byte{0, 15}},
		},
	}
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(NewClass(sampleClassFile())); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := "class\tdemo/Sample\tpublic,super\t61.0\n" +
		"extends\tjava/lang/Object\n" +
		"field\tcount\tI\tint\tprivate,final\n" +
		"method\trun\t()V\t()void\tpublic\n" +
		"attribute\tSourceFile\t2\n"
	if buf.String() != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestLinePoolEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLinePoolEncoder(&buf).Encode(NewClass(sampleClassFile())); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 16 {
		t.Fatalf("got %d lines, want 16:\n%s", len(lines), buf.String())
	}

	tests := []struct {
		index int
		want  string
	}{
		{1, "1\tClass\t#2\tdemo/Sample"},
		{2, "2\tUtf8\t-\t\"demo/Sample\""},
		{9, "9\tLong\t-\t-42"},
		{10, "10\treserved\t-\t-"},
		{11, "11\tNameAndType\t#5,#6\tcount:I"},
		{12, "12\tFieldref\t#1,#11\tdemo/Sample.count:I"},
		{13, "13\tString\t#2\t\"demo/Sample\""},
		{16, "16\tMethodHandle\t#12\tgetField demo/Sample.count:I"},
	}
	for _, tt := range tests {
		if got := lines[tt.index-1]; got != tt.want {
			t.Errorf("line %d = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestNewClassResolvedAndUnresolved(t *testing.T) {
	unresolved := NewClass(sampleClassFile())

	cf := sampleClassFile()
	if err := cf.ConstantPool.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	resolved := NewClass(cf)

	if !reflect.DeepEqual(resolved, unresolved) {
		t.Errorf("resolving changed the view:\n got %+v\nwant %+v", resolved, unresolved)
	}
}

func TestDescribeConstants(t *testing.T) {
	cp := classfile.ConstantPool{
		&classfile.ConstantIntegerInfo{Value: -7},
		&classfile.ConstantFloatInfo{Value: 1.5},
		&classfile.ConstantDoubleInfo{Value: 0.1},
		nil,
		classfile.NewUtf8Info("java.base"),
		&classfile.ConstantModuleInfo{Name: u(5)},
		classfile.NewUtf8Info("demo/util"),
		&classfile.ConstantPackageInfo{Name: u(7)},
		classfile.NewUtf8Info("make"),
		classfile.NewUtf8Info("()Ljava/lang/Runnable;"),
		&classfile.ConstantNameAndTypeInfo{Name: u(9), Descriptor: u(10)},
		&classfile.ConstantInvokeDynamicInfo{BootstrapMethodAttr: 3, NameAndType: u(11)},
		&classfile.ConstantMethodTypeInfo{Descriptor: u(10)},
		&classfile.ConstantMethodHandleInfo{Kind: classfile.RefInvokeStatic, Reference: u(5)},
	}
	want := map[uint16]string{
		1:  "-7",
		2:  "1.5",
		3:  "0.1",
		4:  "",
		6:  "java.base",
		8:  "demo/util",
		12: "#3:make:()Ljava/lang/Runnable;",
		13: "()Ljava/lang/Runnable;",
		14: "invokeStatic #5",
	}
	for _, c := range Constants(cp) {
		if w, ok := want[c.Index]; ok && c.Value != w {
			t.Errorf("constant %d (%s) = %q, want %q", c.Index, c.Tag, c.Value, w)
		}
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(NewClass(sampleClassFile())); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	var got Class
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Name != "demo/Sample" || got.Version.Major != 61 || len(got.Constants) != 16 {
		t.Errorf("decoded = %+v", got)
	}
	if got.Constants[9].Tag != "reserved" {
		t.Errorf("constant 10 tag = %q, want reserved", got.Constants[9].Tag)
	}
}

func TestCBOREncoder(t *testing.T) {
	class := NewClass(sampleClassFile())

	var first, second bytes.Buffer
	if err := NewCBOREncoder(&first).Encode(class); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := NewCBOREncoder(&second).Encode(NewClass(sampleClassFile())); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("CBOR output differs between runs")
	}

	got, err := DecodeCBOR(first.Bytes())
	if err != nil {
		t.Fatalf("DecodeCBOR() error = %v", err)
	}
	if !reflect.DeepEqual(got, class) {
		t.Errorf("DecodeCBOR() =\n%+v\nwant\n%+v", got, class)
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range []string{"line", "json", "cbor"} {
		if _, err := NewEncoder(name, &bytes.Buffer{}); err != nil {
			t.Errorf("NewEncoder(%q) error = %v", name, err)
		}
	}
	if _, err := NewEncoder("java", &bytes.Buffer{}); err == nil {
		t.Error("NewEncoder(java) succeeded")
	}
}
