package faq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PriceWinsOverSafari(t *testing.T) {
	m := Default()

	reply := m.Match("what are your desert safari prices")
	assert.True(t, reply.Matched)
	assert.Equal(t, "price", reply.Key)
	assert.Equal(t, m.byKey["price"], reply.Message)
}

func TestDefault_UnknownQueryFallsBack(t *testing.T) {
	m := Default()

	reply := m.Match("xyzzy unknown query")
	assert.False(t, reply.Matched)
	assert.Empty(t, reply.Key)
	assert.Equal(t, DefaultFallback, reply.Message)
	assert.Contains(t, m.Respond("xyzzy unknown query"), "not sure")
}

func TestDefault_CaseInsensitive(t *testing.T) {
	m := Default()

	assert.Equal(t, "desert_safari", m.Match("Tell me about the DESERT SAFARI").Key)
	assert.Equal(t, "visa", m.Match("Do I need a VISA?").Key)
}

func TestDefault_AnswerKeyScan(t *testing.T) {
	m := Default()

	reply := m.Match("What is Umrah exactly?")
	assert.True(t, reply.Matched)
	assert.Equal(t, "umrah", reply.Key)
}

func TestDefault_EmptyInput(t *testing.T) {
	assert.Equal(t, DefaultFallback, Default().Respond("   "))
}

func TestNew_RejectsRuleWithoutAnswer(t *testing.T) {
	_, err := New([]Rule{{Key: "missing", Keywords: []string{"x"}}}, []Answer{{Key: "a", Response: "b"}}, "fallback")
	assert.Error(t, err)
}

func TestNew_DeterministicFirstMatch(t *testing.T) {
	m, err := New(
		[]Rule{
			{Key: "first", Keywords: []string{"alpha"}},
			{Key: "second", Keywords: []string{"alpha", "beta"}},
		},
		[]Answer{{Key: "first", Response: "one"}, {Key: "second", Response: "two"}},
		"none",
	)
	require.NoError(t, err)

	assert.Equal(t, "one", m.Respond("alpha beta"))
	assert.Equal(t, "two", m.Respond("beta"))
	assert.Equal(t, "none", m.Respond("gamma"))
}

func TestLoadCSV(t *testing.T) {
	src := `kind,key,keywords,response
answer,shipping,,"We ship worldwide, usually within 5 days."
answer,ihram,,Two towels and a belt.
rule,shipping,ship|deliver|courier,
rule,ihram,ihram|towel,
fallback,,,Ask us anything else via the contact form.
`
	m, err := LoadCSV(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "We ship worldwide, usually within 5 days.", m.Respond("When will you DELIVER my order?"))
	assert.Equal(t, "Two towels and a belt.", m.Respond("ihram size"))
	assert.Equal(t, "Ask us anything else via the contact form.", m.Respond("xyzzy"))
}

func TestLoadCSV_UnknownKind(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("kind,key,keywords,response\nbogus,k,,v\n"))
	assert.Error(t, err)
}
