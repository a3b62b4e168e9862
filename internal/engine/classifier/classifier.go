// # internal/engine/classifier/classifier.go
package classifier

import (
	"log/slog"
	"regexp"

	"pyuml/internal/engine/model"
)

var (
	// Pre-scan only: bare class prefixes at column zero.
	classNamePattern = regexp.MustCompile(`^class\s+(\w+)`)
	classDeclPattern = regexp.MustCompile(`^\s*class\s+(\w+)(?:\(\s*([\w.]+|"[\w.]+"|'[\w.]+')\s*\))?\s*:`)
	attributePattern = regexp.MustCompile(`^\s*(\w+)\s*:\s*(\S+)`)
)

// Emitter receives class blocks as they are classified. Relations are
// handed over as they are discovered and must be written after all units.
type Emitter interface {
	OpenClass(id string)
	CloseClass()
	Attribute(name, typeName string, mult model.Multiplicity)
	Relation(r model.Relation)
}

type Classifier struct {
	emitter Emitter
}

func New(emitter Emitter) *Classifier {
	return &Classifier{emitter: emitter}
}

// ClassNames collects the classes declared in lines.
func ClassNames(lines []string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, line := range lines {
		if m := classNamePattern.FindStringSubmatch(line); m != nil {
			names[m[1]] = struct{}{}
		}
	}
	return names
}

// Classify walks the unit line by line. Lines that are neither class nor
// attribute declarations are dropped.
func (c *Classifier) Classify(unit model.Unit) model.Stats {
	ctx := newUnitContext(unit.Namespace, ClassNames(unit.Lines), c.emitter)
	for _, line := range unit.Lines {
		if c.classLine(ctx, line) {
			continue
		}
		c.attributeLine(ctx, line)
	}
	ctx.finish()

	ctx.stats.Units = 1
	slog.Debug("classified unit",
		"unit", unit.Namespace,
		"classes", ctx.stats.Classes,
		"attributes", ctx.stats.Attributes,
		"relations", ctx.stats.Relations,
	)
	return ctx.stats
}

func (c *Classifier) classLine(ctx *unitContext, line string) bool {
	m := classDeclPattern.FindStringSubmatch(line)
	if m == nil {
		return false
	}

	name := m[1]
	ctx.openClass(name)

	if base := StripQuotes(m[2]); base != "" {
		ctx.relation(model.Relation{
			Kind:   model.KindInheritance,
			Source: ctx.qualified(name),
			Target: Qualify(ctx.namespace, base),
		})
	}
	return true
}

func (c *Classifier) attributeLine(ctx *unitContext, line string) bool {
	if ctx.state != stateClassOpen {
		return false
	}
	m := attributePattern.FindStringSubmatch(line)
	if m == nil {
		return false
	}

	name := m[1]
	typeName, many := UnwrapCollection(m[2])
	typeName = StripQuotes(typeName)
	mult := model.MultiplicityOne
	if many {
		mult = model.MultiplicityMany
	}

	if IsQualified(typeName) || ctx.knows(typeName) {
		ctx.relation(model.Relation{
			Kind:         model.KindAssociation,
			Source:       ctx.qualified(ctx.current),
			Target:       Qualify(ctx.namespace, typeName),
			Multiplicity: mult,
		})
	}

	ctx.emitter.Attribute(name, typeName, mult)
	ctx.stats.Attributes++
	return true
}
