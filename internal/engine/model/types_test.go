package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelationPlantUML(t *testing.T) {
	cases := []struct {
		name     string
		relation Relation
		expected string
	}{
		{
			name:     "Inheritance",
			relation: Relation{Kind: KindInheritance, Source: "pets.Dog", Target: "pets.Animal"},
			expected: "pets.Animal <|-- pets.Dog",
		},
		{
			name:     "AssociationOne",
			relation: Relation{Kind: KindAssociation, Source: "pets.Dog", Target: "pets.Person"},
			expected: `pets.Dog ---> "1" pets.Person`,
		},
		{
			name:     "AssociationMany",
			relation: Relation{Kind: KindAssociation, Source: "pets.Dog", Target: "pets.Dog", Multiplicity: MultiplicityMany},
			expected: `pets.Dog ---> "*" pets.Dog`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.relation.PlantUML())
		})
	}
}

func TestStatsAdd(t *testing.T) {
	total := Stats{Units: 1, Classes: 2}
	total.Add(Stats{Units: 1, Classes: 1, Attributes: 3, Relations: 2})
	assert.Equal(t, Stats{Units: 2, Classes: 3, Attributes: 3, Relations: 2}, total)
	assert.Equal(t, "association", KindAssociation.String())
}
