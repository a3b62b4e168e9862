package output

import (
	"bufio"
	"fmt"
	"io"

	"pyuml/internal/engine/model"
)

const (
	plantUMLStart = "@startuml\n"
	plantUMLEnd   = "@enduml\n"
)

// PlantUMLWriter streams a class diagram. Class blocks are written as they
// arrive; relations are held back until Finish. The first write error is
// kept and returned by Finish.
type PlantUMLWriter struct {
	w         *bufio.Writer
	relations []model.Relation
	err       error
}

func NewPlantUMLWriter(w io.Writer) *PlantUMLWriter {
	p := &PlantUMLWriter{w: bufio.NewWriter(w)}
	p.write(plantUMLStart)
	return p
}

func (p *PlantUMLWriter) OpenClass(id string) {
	p.write(fmt.Sprintf("class %s {\n", id))
}

func (p *PlantUMLWriter) CloseClass() {
	p.write("}\n")
}

func (p *PlantUMLWriter) Attribute(name, typeName string, mult model.Multiplicity) {
	if mult == model.MultiplicityMany {
		typeName = fmt.Sprintf("List[%s]", typeName)
	}
	p.write(fmt.Sprintf("    %s: %s\n", name, typeName))
}

func (p *PlantUMLWriter) Relation(r model.Relation) {
	p.relations = append(p.relations, r)
}

// Relations returns the relations collected so far in discovery order.
func (p *PlantUMLWriter) Relations() []model.Relation {
	return p.relations
}

// Finish writes the deferred relations and the document terminator.
func (p *PlantUMLWriter) Finish() error {
	for _, r := range p.relations {
		p.write(r.PlantUML() + "\n")
	}
	p.write(plantUMLEnd)
	if p.err == nil {
		p.err = p.w.Flush()
	}
	return p.err
}

func (p *PlantUMLWriter) Err() error {
	return p.err
}

func (p *PlantUMLWriter) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = p.w.WriteString(s)
}
