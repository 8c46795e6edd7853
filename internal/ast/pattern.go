package ast

import (
	"fmt"
	"strings"

	"github.com/sunholo/juno/internal/types"
)

// Pattern is a match-arm pattern: PVar, PLit, PWild or PCon (§4.5 pattern
// table). Patterns never nest a sub-pattern inside PCon — its Args bind
// fresh variable names directly, matching the spec's PCon(c, xs) shape.
type Pattern interface {
	Node
	fmt.Stringer
	patternNode()
}

// PatternBase carries position tracking for every concrete pattern.
type PatternBase struct {
	Pos types.Pos
}

func (p PatternBase) Position() types.Pos { return p.Pos }
func (PatternBase) patternNode()          {}

// PVar binds the scrutinee (or the matched constructor argument) to Name.
type PVar struct {
	PatternBase
	Name string
}

func (p *PVar) String() string { return p.Name }

// PLit matches a literal value exactly.
type PLit struct {
	PatternBase
	Kind  LitKind
	Value interface{}
}

func (p *PLit) String() string { return fmt.Sprintf("%v", p.Value) }

// PWild is `_`, matching anything and binding nothing.
type PWild struct {
	PatternBase
}

func (p *PWild) String() string { return "_" }

// PCon matches a constructor application; Args are the bound variable names
// for each constructor field, not nested patterns.
type PCon struct {
	PatternBase
	Con  Name
	Args []string
}

func (p *PCon) String() string {
	if len(p.Args) == 0 {
		return p.Con.String()
	}
	return fmt.Sprintf("%s(%s)", p.Con, strings.Join(p.Args, ", "))
}
