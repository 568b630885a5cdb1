package codegen

import "fmt"

// nameGen mints synthetic Python identifiers that cannot collide with a
// pseudocode identifier.
type nameGen struct {
	caseCounter int
}

func (g *nameGen) nextCaseVar() string {
	name := fmt.Sprintf("__case_%d", g.caseCounter)
	g.caseCounter++
	return name
}
