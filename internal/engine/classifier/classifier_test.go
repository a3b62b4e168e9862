package classifier

import (
	"strings"
	"testing"

	"pyuml/internal/engine/model"
	"pyuml/internal/output"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, units ...model.Unit) (string, model.Stats) {
	t.Helper()
	var b strings.Builder
	w := output.NewPlantUMLWriter(&b)
	c := New(w)

	var total model.Stats
	for _, u := range units {
		total.Add(c.Classify(u))
	}
	require.NoError(t, w.Finish())
	return b.String(), total
}

func unit(namespace string, src string) model.Unit {
	return model.Unit{Namespace: namespace, Lines: strings.Split(src, "\n")}
}

func TestClassifyEmptyClass(t *testing.T) {
	out, stats := render(t, unit("pets", "class Dog:\n    pass"))
	assert.Equal(t, "@startuml\nclass pets.Dog {\n}\n@enduml\n", out)
	assert.Equal(t, model.Stats{Units: 1, Classes: 1}, stats)
}

func TestClassifyInheritance(t *testing.T) {
	out, _ := render(t, unit("pets", "class Dog(Animal):\n    pass"))
	assert.Contains(t, out, "class pets.Dog {\n")
	assert.Contains(t, out, "pets.Animal <|-- pets.Dog\n")
}

func TestClassifyQualifiedBase(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{name: "DoubleQuoted", line: `class Dog("other.Animal"):`},
		{name: "SingleQuoted", line: `class Dog('other.Animal'):`},
		{name: "Dotted", line: `class Dog(other.Animal):`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, _ := render(t, unit("pets", tc.line))
			assert.Contains(t, out, "other.Animal <|-- pets.Dog\n")
			assert.NotContains(t, out, "pets.other.Animal")
		})
	}
}

func TestClassifyQuotedLocalBase(t *testing.T) {
	out, _ := render(t, unit("pets", `class Dog("Animal"):`))
	assert.Contains(t, out, "pets.Animal <|-- pets.Dog\n")
}

func TestClassifyAssociations(t *testing.T) {
	src := strings.Join([]string{
		"class Person:",
		"    name: str",
		"",
		"class Dog(Animal):",
		"    owner: Person",
		"    friends: List[Dog]",
		"    age: int",
		`    vet: "clinic.Vet"`,
		"",
		"    def bark(self) -> None:",
		"        print('woof')",
	}, "\n")

	out, stats := render(t, unit("pets", src))

	expected := "@startuml\n" +
		"class pets.Person {\n" +
		"    name: str\n" +
		"}\n" +
		"class pets.Dog {\n" +
		"    owner: Person\n" +
		"    friends: List[Dog]\n" +
		"    age: int\n" +
		"    vet: clinic.Vet\n" +
		"}\n" +
		"pets.Animal <|-- pets.Dog\n" +
		"pets.Dog ---> \"1\" pets.Person\n" +
		"pets.Dog ---> \"*\" pets.Dog\n" +
		"pets.Dog ---> \"1\" clinic.Vet\n" +
		"@enduml\n"
	assert.Equal(t, expected, out)
	assert.Equal(t, model.Stats{Units: 1, Classes: 2, Attributes: 5, Relations: 4}, stats)
}

func TestClassifyForwardReference(t *testing.T) {
	src := "class Dog:\n    owner: Person\nclass Person:\n    pass"
	out, _ := render(t, unit("pets", src))
	assert.Contains(t, out, "pets.Dog ---> \"1\" pets.Person\n")
}

func TestClassifyPrimitiveHasNoRelation(t *testing.T) {
	out, stats := render(t, unit("pets", "class Dog:\n    age: int"))
	assert.Equal(t, "@startuml\nclass pets.Dog {\n    age: int\n}\n@enduml\n", out)
	assert.Zero(t, stats.Relations)
}

func TestClassifyAttributeOutsideClassIgnored(t *testing.T) {
	out, stats := render(t, unit("config", "DEBUG: bool = False\nname: str"))
	assert.Equal(t, "@startuml\n@enduml\n", out)
	assert.Zero(t, stats.Attributes)
}

func TestClassifyNoClasses(t *testing.T) {
	out, stats := render(t, unit("util", "import os\n\ndef helper():\n    return 1"))
	assert.Equal(t, "@startuml\n@enduml\n", out)
	assert.Equal(t, model.Stats{Units: 1}, stats)
}

func TestClassifyUnsupportedDeclarationsDegrade(t *testing.T) {
	src := strings.Join([]string{
		"class Multi(A, B):",
		"    x: int",
		"class Broken",
		"    y: int",
	}, "\n")
	out, _ := render(t, unit("m", src))
	assert.Equal(t, "@startuml\n@enduml\n", out)
}

func TestClassifyMultiArgumentGenericEchoed(t *testing.T) {
	out, stats := render(t, unit("m", "class Box:\n    items: Dict[str, Box]"))
	assert.Contains(t, out, "    items: Dict[str,\n")
	assert.Zero(t, stats.Relations)
}

func TestRelationsFollowDiscoveryOrderAcrossUnits(t *testing.T) {
	out, _ := render(t,
		unit("a", "class X(Y):\n    pass"),
		unit("b", "class Y(Z):\n    other: a.X"),
	)
	idx1 := strings.Index(out, "a.Y <|-- a.X")
	idx2 := strings.Index(out, "b.Z <|-- b.Y")
	idx3 := strings.Index(out, "b.Y ---> \"1\" a.X")
	require.True(t, idx1 > 0 && idx2 > 0 && idx3 > 0, out)
	assert.Less(t, idx1, idx2)
	assert.Less(t, idx2, idx3)
	// class blocks come before any relation
	assert.Less(t, strings.Index(out, "class b.Y {"), idx1)
}

func TestRelationsAreNotDeduplicated(t *testing.T) {
	out, _ := render(t, unit("p", "class A:\n    b1: B\n    b2: B\nclass B:\n    pass"))
	assert.Equal(t, 2, strings.Count(out, "p.A ---> \"1\" p.B\n"))
}

type recorder struct {
	events []string
}

func (r *recorder) OpenClass(id string) { r.events = append(r.events, "open "+id) }
func (r *recorder) CloseClass() { r.events = append(r.events, "close") }
func (r *recorder) Attribute(name, typ string, _ model.Multiplicity) { r.events = append(r.events, "attr "+name) }
func (r *recorder) Relation(rel model.Relation) { r.events = append(r.events, "rel "+rel.Unit) }

func TestClassesCloseBeforeNextOpens(t *testing.T) {
	rec := &recorder{}
	c := New(rec)
	c.Classify(unit("u", "class A:\n    x: int\n    class Inner:\n        y: int\nclass B(A):"))

	assert.Equal(t, []string{
		"open u.A",
		"attr x",
		"close",
		"open u.Inner",
		"attr y",
		"close",
		"open u.B",
		"rel u",
		"close",
	}, rec.events)
}

func TestClassNames(t *testing.T) {
	names := ClassNames([]string{"class A:", "class B(A):", "    class Nested:", "classy = 1", "x = 'class C'"})
	assert.Len(t, names, 2)
	assert.Contains(t, names, "A")
	assert.Contains(t, names, "B")
}
