package kousuan

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays fixed values; each must be < n for its call.
type scriptedSource struct {
	t    *testing.T
	vals []int
}

func (s *scriptedSource) IntN(n int) int {
	s.t.Helper()
	require.NotEmpty(s.t, s.vals, "scripted source exhausted")
	v := s.vals[0]
	s.vals = s.vals[1:]
	require.Less(s.t, v, n, "scripted value out of range")
	return v
}

func script(t *testing.T, vals ...int) *scriptedSource {
	return &scriptedSource{t: t, vals: vals}
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// equation is a parsed question; exactly one of A, B, Result is the blank.
type equation struct {
	a, b, result int
	op           Operation
	blank        int // 0 = a, 1 = b, 2 = result
}

func parseQuestion(t *testing.T, q string) equation {
	t.Helper()
	lhs, rhs, ok := strings.Cut(q, "＝")
	require.True(t, ok, "missing ＝ in %q", q)

	op := Addition
	sym := "＋"
	if strings.Contains(lhs, "－") {
		op, sym = Subtraction, "－"
	}
	left, right, ok := strings.Cut(lhs, sym)
	require.True(t, ok, "missing operator in %q", q)

	var e equation
	e.op = op
	blanks := 0
	parse := func(s string, dst *int, pos int) {
		if s == Blank {
			e.blank = pos
			blanks++
			return
		}
		n, err := strconv.Atoi(s)
		require.NoError(t, err, "operand %q in %q", s, q)
		*dst = n
	}
	parse(left, &e.a, 0)
	parse(right, &e.b, 1)
	parse(rhs, &e.result, 2)
	require.Equal(t, 1, blanks, "expected exactly one blank in %q", q)
	return e
}

// solve substitutes answer into the blank and reports whether the
// equation holds, returning the completed operands.
func (e equation) solve(answer int) (a, b int, ok bool) {
	switch e.blank {
	case 0:
		e.a = answer
	case 1:
		e.b = answer
	case 2:
		e.result = answer
	}
	return e.a, e.b, e.op.Apply(e.a, e.b) == e.result
}

func TestTaxonomy_TierPartition(t *testing.T) {
	counts := map[Tier]int{}
	seen := map[ProblemType]Tier{}
	for _, tier := range Tiers {
		for _, pt := range TypesForTier(tier) {
			prev, dup := seen[pt]
			require.False(t, dup, "%s in both %s and %s", pt, prev, tier)
			seen[pt] = tier
			counts[tier]++
		}
	}
	assert.Equal(t, 6, counts[Beginner])
	assert.Equal(t, 9, counts[Intermediate])
	assert.Equal(t, 10, counts[Advanced])
	assert.Len(t, AllTypes(), 25)
	assert.Len(t, seen, 25)
}

func TestTaxonomy_Attributes(t *testing.T) {
	for _, s := range AllSpecs() {
		assert.Contains(t, []int{5, 10, 20, 100}, s.Ceiling, s.ID)
		if s.Ceiling == 20 {
			assert.NotEqual(t, CarryNotApplicable, s.Carry, "%s needs a carry rule", s.ID)
		} else {
			assert.Equal(t, CarryNotApplicable, s.Carry, "%s must not have a carry rule", s.ID)
		}
	}
}

func TestValidateDelegates_RejectsSelfReference(t *testing.T) {
	require.NoError(t, validateDelegates())

	orig := taxonomy
	t.Cleanup(func() { taxonomy = orig })

	taxonomy = append([]TypeSpec(nil), orig...)
	for i := range taxonomy {
		if taxonomy[i].ID == FillMixed5 {
			taxonomy[i].Delegates = []ProblemType{Fill5, FillMixed5}
		}
	}
	err := validateDelegates()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itself")
}

func TestParseType(t *testing.T) {
	pt, err := ParseType("ADD-20-carry")
	require.NoError(t, err)
	assert.Equal(t, Add20Carry, pt)

	pt, err = ParseType("20以内退位减法")
	require.NoError(t, err)
	assert.Equal(t, Sub20Borrow, pt)

	_, err = ParseType("add-1000")
	assert.Error(t, err)
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" Advanced ")
	require.NoError(t, err)
	assert.Equal(t, Advanced, tier)

	_, err = ParseTier("expert")
	assert.Error(t, err)
}

func TestConstraints_Satisfiable(t *testing.T) {
	for _, s := range AllSpecs() {
		if s.Op == OpFillBlankMixed {
			continue
		}
		for _, op := range []Operation{Addition, Subtraction} {
			c := ConstraintFor(s, op)
			found := false
			for a := c.A.Lo; a <= c.A.Hi && !found; a++ {
				br := c.B(a)
				for b := br.Lo; b <= br.Hi; b++ {
					if c.Pred == nil || c.Pred(a, b) {
						found = true
						break
					}
				}
			}
			assert.True(t, found, "%s/%d has an empty solution set", s.ID, op)
		}
	}
}

func TestBuild_ScenarioA(t *testing.T) {
	b := NewBuilder(script(t, 3, 2))
	p := b.Build(Add5)
	assert.Equal(t, "3＋2＝（　　）", p.Question)
	assert.Equal(t, 5, p.Answer)
	assert.Equal(t, Add5, p.Type)
}

func TestBuild_CarryRejectsOverflow(t *testing.T) {
	// First candidate 15+8 carries but exceeds 20; second 7+9 is accepted.
	b := NewBuilder(script(t, 15, 8, 7, 9))
	p := b.Build(Add20Carry)
	assert.Equal(t, "7＋9＝（　　）", p.Question)
	assert.Equal(t, 16, p.Answer)
}

func TestBuild_FillBlankPositions(t *testing.T) {
	// op coin (0 = add), operands 4 and 3, mask coin (0 = second operand)
	p := NewBuilder(script(t, 0, 4, 3, 0)).Build(Fill10)
	assert.Equal(t, "4＋（　　）＝7", p.Question)
	assert.Equal(t, 3, p.Answer)

	// op coin (1 = subtract), a=9, b=5, mask coin (1 = first operand)
	p = NewBuilder(script(t, 1, 9, 5, 1)).Build(Fill10)
	assert.Equal(t, "（　　）－5＝4", p.Question)
	assert.Equal(t, 9, p.Answer)
}

func TestBuild_UnknownTypeDefaults(t *testing.T) {
	p := NewBuilder(seeded(1)).Build(ProblemType("multiply-1000"))
	assert.Equal(t, DefaultProblem, p)
	assert.Equal(t, "1＋1＝（　　）", p.Question)
	assert.Equal(t, 2, p.Answer)
}

func TestBuild_MixedDelegates(t *testing.T) {
	b := NewBuilder(seeded(7))
	spec, _ := Lookup(FillMixed20)
	for range 200 {
		p := b.Build(FillMixed20)
		assert.Contains(t, spec.Delegates, p.Type)
	}
}

// TestBuild_Properties checks, for every type, that the answer satisfies
// the rendered equation, results are non-negative, and the declared
// digit-boundary predicates hold.
func TestBuild_Properties(t *testing.T) {
	b := NewBuilder(seeded(42))
	for _, pt := range AllTypes() {
		spec, _ := Lookup(pt)
		for range 500 {
			p := b.Build(pt)
			e := parseQuestion(t, p.Question)
			a, bb, ok := e.solve(p.Answer)
			require.True(t, ok, "%s: %q with answer %d is false", pt, p.Question, p.Answer)
			require.GreaterOrEqual(t, p.Answer, 0)
			require.GreaterOrEqual(t, e.op.Apply(a, bb), 0, "%s: negative result in %q", pt, p.Question)

			if spec.Op == OpFillBlank {
				assert.NotEqual(t, 2, e.blank, "%s: fill-blank must mask an operand", pt)
			} else if spec.Op != OpFillBlankMixed {
				assert.Equal(t, 2, e.blank, "%s: result must be the blank", pt)
			}

			if spec.Ceiling != 5 && spec.Ceiling != 10 && e.op == Addition {
				assert.LessOrEqual(t, a+bb, spec.Ceiling, "%s: %q exceeds ceiling", pt, p.Question)
			}
			if e.op == Subtraction {
				assert.LessOrEqual(t, a, spec.Ceiling, "%s: minuend above ceiling", pt)
			}

			switch spec.Carry {
			case CarryNone:
				if e.op == Addition {
					assert.Less(t, a%10+bb%10, 10, "%s: %q carries", pt, p.Question)
				} else {
					assert.GreaterOrEqual(t, a%10, bb%10, "%s: %q borrows", pt, p.Question)
				}
			case CarryRequired:
				assert.GreaterOrEqual(t, a%10+bb%10, 10, "%s: %q does not carry", pt, p.Question)
				assert.LessOrEqual(t, a+bb, 20)
			case BorrowRequired:
				assert.Less(t, a%10, bb%10, "%s: %q does not borrow", pt, p.Question)
			case CarryOrBorrow:
				if e.op == Addition {
					assert.GreaterOrEqual(t, a%10+bb%10, 10, "%s: %q does not carry", pt, p.Question)
					assert.LessOrEqual(t, a+bb, 20)
				} else {
					assert.Less(t, a%10, bb%10, "%s: %q does not borrow", pt, p.Question)
				}
			}
		}
	}
}

func TestGenerate_Count(t *testing.T) {
	g := NewGenerator(seeded(3), nil)

	assert.Empty(t, g.Generate(0, nil))
	assert.Empty(t, g.Generate(0, []ProblemType{Add5}))
	assert.Empty(t, g.Generate(-4, nil))

	problems := g.Generate(50, nil)
	assert.Len(t, problems, 50)
}

func TestGenerate_RestrictsToSelectedTypes(t *testing.T) {
	g := NewGenerator(seeded(9), nil)
	selected := []ProblemType{Add20Carry, Sub20Borrow}
	for _, p := range g.Generate(100, selected) {
		assert.Contains(t, selected, p.Type)
		assert.False(t, p.Graded())
	}
}

func TestGenerate_PicksTypePerSlot(t *testing.T) {
	// slot 1 picks index 1 (sub-5: a=4, b=1), slot 2 picks index 0 (add-5: 2+2)
	src := script(t, 1, 4, 1, 0, 2, 2)
	g := NewGenerator(src, nil)
	problems := g.Generate(2, []ProblemType{Add5, Sub5})
	require.Len(t, problems, 2)
	assert.Equal(t, "4－1＝（　　）", problems[0].Question)
	assert.Equal(t, "2＋2＝（　　）", problems[1].Question)
}

func TestGrade(t *testing.T) {
	problems := []Problem{
		{Question: "3＋2＝（　　）", Answer: 5, Type: Add5},
		{Question: "4－1＝（　　）", Answer: 3, Type: Sub5},
		{Question: "1＋1＝（　　）", Answer: 2, Type: Add5},
		{Question: "0＋0＝（　　）", Answer: 0, Type: Add5},
	}
	graded := Grade(problems, []string{" 5 ", "03", ""})

	require.Len(t, graded, 4)
	assert.True(t, *graded[0].Correct)
	assert.Equal(t, "5", *graded[0].Submitted)
	assert.False(t, *graded[1].Correct, "no numeric coercion")
	assert.False(t, *graded[2].Correct, "empty answer is wrong")
	assert.False(t, *graded[3].Correct, "missing answer is wrong")
	assert.Equal(t, "", *graded[3].Submitted)

	for _, p := range problems {
		assert.False(t, p.Graded(), "input must not be modified")
	}
}

func TestGrade_KeepsExistingSubmission(t *testing.T) {
	first := Grade([]Problem{{Answer: 5}}, []string{"5"})
	again := Grade(first, []string{"4"})
	assert.Equal(t, "5", *again[0].Submitted)
	assert.True(t, *again[0].Correct)
	assert.Equal(t, Score(first), Score(again))
}

func TestGrade_UsesCarriedSubmission(t *testing.T) {
	five, nine := "5", " 9 "
	claimed := true
	problems := []Problem{
		{Answer: 5, Submitted: &five},
		{Answer: 5, Submitted: &nine, Correct: &claimed},
	}

	graded := Grade(problems, nil)
	require.Len(t, graded, 2)
	assert.Equal(t, "5", *graded[0].Submitted)
	assert.True(t, *graded[0].Correct)
	assert.Equal(t, "9", *graded[1].Submitted)
	assert.False(t, *graded[1].Correct, "a claimed result must be recomputed")
	assert.Equal(t, ScoreSummary{Correct: 1, Total: 2, Percentage: 50}, Score(graded))
	assert.True(t, *problems[1].Correct, "input must not be modified")
}

func TestScore(t *testing.T) {
	assert.Equal(t, ScoreSummary{}, Score(nil))

	problems := make([]Problem, 10)
	answers := make([]string, 10)
	for i := range problems {
		problems[i] = Problem{Answer: i}
		answers[i] = strconv.Itoa(i)
		if i >= 7 {
			answers[i] = "x"
		}
	}
	graded := Grade(problems, answers)
	got := Score(graded)
	assert.Equal(t, ScoreSummary{Correct: 7, Total: 10, Percentage: 70}, got)
	assert.Equal(t, got, Score(graded), "scoring must be idempotent")
	assert.Equal(t, "7/10 (70%)", got.String())
}

func TestScore_Rounds(t *testing.T) {
	graded := Grade([]Problem{{Answer: 1}, {Answer: 2}, {Answer: 3}}, []string{"1", "2", "0"})
	assert.Equal(t, 67, Score(graded).Percentage)
}
