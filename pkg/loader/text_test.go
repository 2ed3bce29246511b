package loader_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules(t *testing.T) {
	input := `
# increment-ish
A, 0, 1, R, B
B,1,0,L,Halt

C,Blank,Blank,R,A
`
	rules, err := loader.ParseRules(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rules, 3)

	assert.Equal(t, domain.Rule{
		State: domain.StateA, Read: domain.SymbolZero,
		Write: domain.SymbolOne, Move: domain.MoveRight, Next: domain.StateB,
	}, rules[0])
	assert.Equal(t, domain.StateHalt, rules[1].Next)
	assert.Equal(t, domain.SymbolBlank, rules[2].Read)
}

func TestParseRules_RejectsWholeLoad(t *testing.T) {
	input := strings.Join([]string{
		"A,0,1,R,B",
		"A,0,1,R",     // line 2: four fields
		"B,2,1,R,A",   // line 3: bad symbol
		"C,1,1,X,A",   // line 4: bad move
		"A,1,1,R,B,C", // line 5: six fields
	}, "\n")

	rules, err := loader.ParseRules(strings.NewReader(input))
	require.Error(t, err)
	assert.Nil(t, rules, "no partial table on failure")

	assert.ErrorIs(t, err, domain.ErrFieldCount)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	msg := err.Error()
	for _, want := range []string{"line 2:", "line 3:", "line 4:", "line 5:"} {
		assert.Contains(t, msg, want)
	}
	assert.NotContains(t, msg, "line 1:")
}

func TestParseRule_FieldErrors(t *testing.T) {
	tests := []struct {
		row   string
		field string
		token string
	}{
		{"D,0,1,R,B", "state", "D"},
		{"A,x,1,R,B", "symbol", "x"},
		{"A,0,blank,R,B", "symbol", "blank"},
		{"A,0,1,Right,B", "move", "Right"},
		{"A,0,1,R,halt", "state", "halt"},
	}
	for _, tt := range tests {
		t.Run(tt.row, func(t *testing.T) {
			_, err := loader.ParseRule(tt.row)
			var pe *domain.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.field, pe.Field)
			assert.Equal(t, tt.token, pe.Token)
		})
	}
}

func TestFormatRules_RoundTrip(t *testing.T) {
	in := "A,0,1,R,B\nB,Blank,0,L,Halt\n"
	rules, err := loader.ParseRules(strings.NewReader(in))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, loader.FormatRules(&buf, rules))
	assert.Equal(t, in, buf.String())
}

func TestParseTape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0100", "0100"},
		{"1_1", "1_1"},
		{"0, 1, Blank", "01_"},
		{"Blank", "_"},
		{"1 0\t1", "101"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := loader.ParseTape(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, domain.FormatTape(got))
		})
	}

	_, err := loader.ParseTape("   ")
	assert.ErrorIs(t, err, domain.ErrEmptyTape)

	_, err = loader.ParseTape("012")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = loader.ParseTape("0, 2")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestDuplicates(t *testing.T) {
	rules, err := loader.ParseRules(strings.NewReader("A,0,1,R,B\nA,0,0,L,C\nA,0,1,R,A\nB,1,1,R,A\n"))
	require.NoError(t, err)

	dups := loader.Duplicates(rules)
	assert.Equal(t, []domain.Key{{State: domain.StateA, Read: domain.SymbolZero}}, dups)
}
