package shparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {
	test := func(input string, expectedTokenType TokenType, expectedWord string) func(*testing.T) {
		return func(t *testing.T) {
			s := NewScanner(input)
			tt := s.NextToken()
			assert.Equal(t, expectedTokenType, tt)
			assert.Equal(t, expectedWord, s.Word())
		}
	}

	t.Run("", test("", EOFToken, ""))
	t.Run("", test("   \t\n  ", EOFToken, ""))

	t.Run("", test("hello", WordToken, "hello"))
	t.Run("", test("hello world", WordToken, "hello"))
	t.Run("", test("  \thello", WordToken, "hello"))
	t.Run("", test("a1_-./x", WordToken, "a1_-./x"))

	// single quotes: literal content
	t.Run("", test("'a  b'", WordToken, "a  b"))
	t.Run("", test("'a'b'c'", WordToken, "abc"))
	t.Run("", test("'|&>'", WordToken, "|&>"))
	t.Run("", test(`'a"b'`, WordToken, `a"b`))

	// double quotes: backslash escapes only its special set
	t.Run("", test(`"a  b"`, WordToken, "a  b"))
	t.Run("", test(`"c\"d"`, WordToken, `c"d`))
	t.Run("", test(`"a\\b"`, WordToken, `a\b`))
	t.Run("", test(`"a\$b"`, WordToken, "a$b"))
	t.Run("", test("\"a\\`b\"", WordToken, "a`b"))
	t.Run("", test(`"a\xb"`, WordToken, `a\xb`))
	t.Run("", test(`"a'b"`, WordToken, "a'b"))
	t.Run("", test(`"|&>"`, WordToken, "|&>"))

	// backslash outside quotes escapes the single following character
	t.Run("", test(`a\ b`, WordToken, "a b"))
	t.Run("", test(`a\'b`, WordToken, "a'b"))
	t.Run("", test(`a\\b`, WordToken, `a\b`))

	// mixed quoting within one word
	t.Run("", test(`a'b c'"d e"f`, WordToken, "ab cd ef"))

	t.Run("", test("|", PipeToken, ""))
	t.Run("", test("| a", PipeToken, ""))
	t.Run("", test("&&", SequentialToken, ""))
	t.Run("", test("&& a", SequentialToken, ""))
	t.Run("", test("&", BackgroundToken, ""))
	t.Run("", test("& a", BackgroundToken, ""))

	t.Run("", test(">", RedirectOutToken, ""))
	t.Run("", test("> f", RedirectOutToken, ""))
	t.Run("", test("1>", RedirectOutToken, ""))
	t.Run("", test(">>", AppendOutToken, ""))
	t.Run("", test("1>>", AppendOutToken, ""))
	t.Run("", test("2>", RedirectErrToken, ""))
	t.Run("", test("2>>", AppendErrToken, ""))

	// a leading digit only forms an operator together with `>`
	t.Run("", test("1", WordToken, "1"))
	t.Run("", test("2", WordToken, "2"))
	t.Run("", test("1x", WordToken, "1x"))
	t.Run("", test("2x", WordToken, "2x"))

	t.Run("", test("'abc", UnterminatedSingleQuoteErrorToken, ""))
	t.Run("", test(`"abc`, UnterminatedDoubleQuoteErrorToken, ""))
	t.Run("", test(`abc\`, TrailingBackslashErrorToken, ""))
	t.Run("", test("foo>bar", OperatorAdjacencyErrorToken, ""))
	t.Run("", test("foo|bar", OperatorAdjacencyErrorToken, ""))
	t.Run("", test("foo&", OperatorAdjacencyErrorToken, ""))
	t.Run("", test("12>", OperatorAdjacencyErrorToken, ""))
}

func TestTokenRaw(t *testing.T) {
	s := NewScanner(`echo 'a  b' > out`)
	require.Equal(t, WordToken, s.NextToken())
	assert.Equal(t, "echo", s.Token())
	require.Equal(t, WordToken, s.NextToken())
	assert.Equal(t, "'a  b'", s.Token())
	assert.Equal(t, "a  b", s.Word())
	require.Equal(t, RedirectOutToken, s.NextToken())
	assert.Equal(t, ">", s.Token())
	require.Equal(t, WordToken, s.NextToken())
	assert.Equal(t, "out", s.Token())
	require.Equal(t, EOFToken, s.NextToken())
}

func scanWords(t *testing.T, input string) []string {
	t.Helper()
	s := NewScanner(input)
	var words []string
	for {
		tt := s.NextToken()
		if tt == EOFToken {
			return words
		}
		require.Equal(t, WordToken, tt)
		words = append(words, s.Word())
	}
}

// Re-feeding the tokenizer the concatenation of its word outputs separated
// by single spaces yields the same word sequence, provided the words carry
// no characters that need re-quoting.
func TestTokenizeIdempotent(t *testing.T) {
	for _, input := range []string{
		"echo hello world",
		"  a  b\tc  ",
		"'hello' wo'rl'd x",
		`one "two three".. four`,
	} {
		first := scanWords(t, input)
		second := scanWords(t, strings.Join(first, " "))
		assert.Equal(t, first, second, "input: %q", input)
	}
}

func TestSequenceWithOperators(t *testing.T) {
	s := NewScanner("a | b && c & d 2> e")
	var got []TokenType
	for {
		tt := s.NextToken()
		if tt == EOFToken {
			break
		}
		got = append(got, tt)
	}
	assert.Equal(t, []TokenType{
		WordToken, PipeToken, WordToken, SequentialToken, WordToken,
		BackgroundToken, WordToken, RedirectErrToken, WordToken,
	}, got)
}
