package output

import (
	"fmt"
	"strings"

	"pyuml/internal/engine/model"
)

type TSVGenerator struct {
	relations []model.Relation
}

func NewTSVGenerator(relations []model.Relation) *TSVGenerator {
	return &TSVGenerator{relations: relations}
}

func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("Kind\tSource\tTarget\tMultiplicity\tUnit\n")
	for _, r := range t.relations {
		mult := ""
		if r.Kind == model.KindAssociation {
			mult = r.Multiplicity.Marker()
		}
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%s\t%s\n",
			r.Kind, r.Source, r.Target, mult, r.Unit))
	}

	return buf.String(), nil
}
