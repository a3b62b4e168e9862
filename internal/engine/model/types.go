// # internal/engine/model/types.go
package model

import "fmt"

// Unit is one source file mapped to one namespace.
type Unit struct {
	Namespace string // File name up to the first dot
	Path      string
	Lines     []string
}

type RelationKind int

const (
	KindInheritance RelationKind = iota
	KindAssociation
)

func (k RelationKind) String() string {
	switch k {
	case KindInheritance:
		return "inheritance"
	case KindAssociation:
		return "association"
	default:
		return fmt.Sprintf("RelationKind(%d)", int(k))
	}
}

type Multiplicity int

const (
	MultiplicityOne Multiplicity = iota
	MultiplicityMany
)

// Marker returns the PlantUML cardinality label.
func (m Multiplicity) Marker() string {
	if m == MultiplicityMany {
		return "*"
	}
	return "1"
}

// Relation is a directed edge between two qualified class identifiers.
// For inheritance Source is the derived class and Target the base.
type Relation struct {
	Kind         RelationKind
	Source       string
	Target       string
	Multiplicity Multiplicity // Association only
	Unit         string       // Namespace the relation was discovered in
}

// PlantUML renders the relation line without a trailing newline.
func (r Relation) PlantUML() string {
	if r.Kind == KindInheritance {
		return fmt.Sprintf("%s <|-- %s", r.Target, r.Source)
	}
	return fmt.Sprintf("%s ---> \"%s\" %s", r.Source, r.Multiplicity.Marker(), r.Target)
}

// Stats counts what a conversion produced.
type Stats struct {
	Units      int
	Classes    int
	Attributes int
	Relations  int
}

func (s *Stats) Add(other Stats) {
	s.Units += other.Units
	s.Classes += other.Classes
	s.Attributes += other.Attributes
	s.Relations += other.Relations
}
