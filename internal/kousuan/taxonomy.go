package kousuan

import (
	"fmt"
	"strings"
)

// ProblemType identifies one of the fixed problem shapes.
type ProblemType string

const (
	Add5          ProblemType = "add-5"
	Sub5          ProblemType = "sub-5"
	AddSub5       ProblemType = "addsub-5"
	Fill5         ProblemType = "fill-5"
	FillMixed5    ProblemType = "fill-mixed-5"
	Add10         ProblemType = "add-10"
	Sub10         ProblemType = "sub-10"
	AddSub10      ProblemType = "addsub-10"
	Fill10        ProblemType = "fill-10"
	FillMixed10   ProblemType = "fill-mixed-10"
	Add20NoCarry  ProblemType = "add-20-no-carry"
	Sub20NoBorrow ProblemType = "sub-20-no-borrow"
	Add20Carry    ProblemType = "add-20-carry"
	Sub20Borrow   ProblemType = "sub-20-borrow"
	CarryBorrow20 ProblemType = "carry-borrow-20"
	Add20         ProblemType = "add-20"
	Sub20         ProblemType = "sub-20"
	AddSub20      ProblemType = "addsub-20"
	Fill20        ProblemType = "fill-20"
	FillMixed20   ProblemType = "fill-mixed-20"
	Add100        ProblemType = "add-100"
	Sub100        ProblemType = "sub-100"
	AddSub100     ProblemType = "addsub-100"
	Fill100       ProblemType = "fill-100"
	FillMixed100  ProblemType = "fill-mixed-100"
)

// OpClass is the operation family of a problem type.
type OpClass int

const (
	OpAdd OpClass = iota
	OpSubtract
	OpAddOrSubtract
	OpFillBlank
	OpFillBlankMixed
)

func (o OpClass) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpAddOrSubtract:
		return "add-or-subtract"
	case OpFillBlank:
		return "fill-blank"
	case OpFillBlankMixed:
		return "fill-blank-mixed"
	default:
		return "unknown"
	}
}

// CarryRule is the regrouping requirement of a ceiling-20 type.
type CarryRule int

const (
	// CarryNotApplicable is used by every type whose ceiling is not 20.
	CarryNotApplicable CarryRule = iota
	CarryNone
	CarryRequired
	BorrowRequired
	CarryOrBorrow
	CarryUnconstrained
)

func (c CarryRule) String() string {
	switch c {
	case CarryNone:
		return "none"
	case CarryRequired:
		return "carry"
	case BorrowRequired:
		return "borrow"
	case CarryOrBorrow:
		return "carry-or-borrow"
	case CarryUnconstrained:
		return "unconstrained"
	default:
		return "n/a"
	}
}

// Tier groups problem types by difficulty. Every type belongs to exactly one tier.
type Tier int

const (
	Beginner Tier = iota
	Intermediate
	Advanced
)

// Tiers lists all tiers from easiest to hardest.
var Tiers = []Tier{Beginner, Intermediate, Advanced}

func (t Tier) String() string {
	switch t {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// ParseTier parses a tier name (case-insensitive).
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return Beginner, nil
	case "intermediate":
		return Intermediate, nil
	case "advanced":
		return Advanced, nil
	}
	return 0, fmt.Errorf("invalid tier %q: must be beginner, intermediate or advanced", s)
}

// TypeSpec holds the static attributes of a problem type.
type TypeSpec struct {
	ID      ProblemType
	Label   string
	Ceiling int
	Op      OpClass
	Carry   CarryRule
	Tier    Tier

	// Delegates lists the simpler peer types a mixed type picks from.
	// Empty for every non-mixed type.
	Delegates []ProblemType
}

// taxonomy is the closed set of problem types, in display order.
var taxonomy = []TypeSpec{
	{ID: Add5, Label: "5以内加法", Ceiling: 5, Op: OpAdd, Tier: Beginner},
	{ID: Sub5, Label: "5以内减法", Ceiling: 5, Op: OpSubtract, Tier: Beginner},
	{ID: AddSub5, Label: "5以内加减法", Ceiling: 5, Op: OpAddOrSubtract, Tier: Beginner},
	{ID: Fill5, Label: "5以内加减法填括号", Ceiling: 5, Op: OpFillBlank, Tier: Intermediate},
	{ID: FillMixed5, Label: "5以内加减法填括号混合", Ceiling: 5, Op: OpFillBlankMixed, Tier: Intermediate,
		Delegates: []ProblemType{Fill5, AddSub5}},

	{ID: Add10, Label: "10以内加法", Ceiling: 10, Op: OpAdd, Tier: Beginner},
	{ID: Sub10, Label: "10以内减法", Ceiling: 10, Op: OpSubtract, Tier: Beginner},
	{ID: AddSub10, Label: "10以内加减法", Ceiling: 10, Op: OpAddOrSubtract, Tier: Beginner},
	{ID: Fill10, Label: "10以内加减法填括号", Ceiling: 10, Op: OpFillBlank, Tier: Intermediate},
	{ID: FillMixed10, Label: "10以内加减法填括号混合", Ceiling: 10, Op: OpFillBlankMixed, Tier: Intermediate,
		Delegates: []ProblemType{Fill10, AddSub10}},

	{ID: Add20NoCarry, Label: "20以内不进位加法", Ceiling: 20, Op: OpAdd, Carry: CarryNone, Tier: Intermediate},
	{ID: Sub20NoBorrow, Label: "20以内不退位减法", Ceiling: 20, Op: OpSubtract, Carry: CarryNone, Tier: Intermediate},
	{ID: Add20Carry, Label: "20以内进位加法", Ceiling: 20, Op: OpAdd, Carry: CarryRequired, Tier: Advanced},
	{ID: Sub20Borrow, Label: "20以内退位减法", Ceiling: 20, Op: OpSubtract, Carry: BorrowRequired, Tier: Advanced},
	{ID: CarryBorrow20, Label: "20以内进位加法和退位减法", Ceiling: 20, Op: OpAddOrSubtract, Carry: CarryOrBorrow, Tier: Advanced},
	{ID: Add20, Label: "20以内加法", Ceiling: 20, Op: OpAdd, Carry: CarryUnconstrained, Tier: Intermediate},
	{ID: Sub20, Label: "20以内减法", Ceiling: 20, Op: OpSubtract, Carry: CarryUnconstrained, Tier: Intermediate},
	{ID: AddSub20, Label: "20以内加减法", Ceiling: 20, Op: OpAddOrSubtract, Carry: CarryUnconstrained, Tier: Intermediate},
	{ID: Fill20, Label: "20以内加减法填括号", Ceiling: 20, Op: OpFillBlank, Carry: CarryUnconstrained, Tier: Advanced},
	{ID: FillMixed20, Label: "20以内加减法填括号混合", Ceiling: 20, Op: OpFillBlankMixed, Carry: CarryUnconstrained, Tier: Advanced,
		Delegates: []ProblemType{Fill20, AddSub20}},

	{ID: Add100, Label: "100以内加法", Ceiling: 100, Op: OpAdd, Tier: Advanced},
	{ID: Sub100, Label: "100以内减法", Ceiling: 100, Op: OpSubtract, Tier: Advanced},
	{ID: AddSub100, Label: "100以内加减法", Ceiling: 100, Op: OpAddOrSubtract, Tier: Advanced},
	{ID: Fill100, Label: "100以内加减法填括号", Ceiling: 100, Op: OpFillBlank, Tier: Advanced},
	{ID: FillMixed100, Label: "100以内加减法填括号混合", Ceiling: 100, Op: OpFillBlankMixed, Tier: Advanced,
		Delegates: []ProblemType{Fill100, AddSub100}},
}

var byID map[ProblemType]TypeSpec

func init() {
	byID = make(map[ProblemType]TypeSpec, len(taxonomy))
	for _, s := range taxonomy {
		byID[s.ID] = s
	}
	if err := validateDelegates(); err != nil {
		panic(err)
	}
}

// validateDelegates enforces that mixed types only delegate to existing,
// non-mixed peers, which bounds Build's recursion depth at one.
func validateDelegates() error {
	for _, s := range taxonomy {
		if s.Op != OpFillBlankMixed {
			if len(s.Delegates) > 0 {
				return fmt.Errorf("kousuan: %s is not mixed but declares delegates", s.ID)
			}
			continue
		}
		if len(s.Delegates) == 0 {
			return fmt.Errorf("kousuan: mixed type %s has no delegates", s.ID)
		}
		for _, d := range s.Delegates {
			if d == s.ID {
				return fmt.Errorf("kousuan: mixed type %s delegates to itself", s.ID)
			}
			ds, ok := byID[d]
			if !ok {
				return fmt.Errorf("kousuan: mixed type %s delegates to unknown type %s", s.ID, d)
			}
			if ds.Op == OpFillBlankMixed {
				return fmt.Errorf("kousuan: mixed type %s delegates to mixed type %s", s.ID, d)
			}
		}
	}
	return nil
}

// AllTypes returns every problem type in display order.
func AllTypes() []ProblemType {
	out := make([]ProblemType, len(taxonomy))
	for i, s := range taxonomy {
		out[i] = s.ID
	}
	return out
}

// AllSpecs returns a copy of the full taxonomy.
func AllSpecs() []TypeSpec {
	out := make([]TypeSpec, len(taxonomy))
	copy(out, taxonomy)
	return out
}

// TypesForTier returns the problem types belonging to tier, in display order.
func TypesForTier(tier Tier) []ProblemType {
	var out []ProblemType
	for _, s := range taxonomy {
		if s.Tier == tier {
			out = append(out, s.ID)
		}
	}
	return out
}

// Lookup returns the spec for t.
func Lookup(t ProblemType) (TypeSpec, bool) {
	s, ok := byID[t]
	return s, ok
}

// ParseType resolves an identifier or display label to a problem type.
func ParseType(s string) (ProblemType, error) {
	s = strings.TrimSpace(s)
	if _, ok := byID[ProblemType(strings.ToLower(s))]; ok {
		return ProblemType(strings.ToLower(s)), nil
	}
	for _, spec := range taxonomy {
		if spec.Label == s {
			return spec.ID, nil
		}
	}
	return "", fmt.Errorf("unknown problem type %q", s)
}
