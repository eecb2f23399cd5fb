package inline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// reconstruct re-joins a token sequence back into source text. Text
// tokens contribute Text, everything else its verbatim Original.
func reconstruct(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.Kind == KindText {
			b.WriteString(tok.Text)
			continue
		}
		b.WriteString(tok.Original)
	}
	return b.String()
}

func TestTokenize_Empty(t *testing.T) {
	tokens := Tokenize("")
	require.Len(t, tokens, 1)
	require.Equal(t, KindText, tokens[0].Kind)
	require.Equal(t, "", tokens[0].Text)
}

func TestTokenize_PlainText(t *testing.T) {
	tokens := Tokenize("just some text")
	require.Len(t, tokens, 1)
	require.Equal(t, KindText, tokens[0].Kind)
	require.Equal(t, "just some text", tokens[0].Text)
}

func TestTokenize_TextMacro(t *testing.T) {
	tokens := Tokenize("John Doe{{KIA}}")
	require.Len(t, tokens, 2)

	require.Equal(t, KindText, tokens[0].Kind)
	require.Equal(t, "John Doe", tokens[0].Text)

	require.Equal(t, KindTextMacro, tokens[1].Kind)
	require.Equal(t, "KIA", tokens[1].Template)
	require.Equal(t, "†", tokens[1].Replacement)
	require.Equal(t, "{{KIA}}", tokens[1].Original)
}

func TestTokenize_TextMacroWithParamsNotRecognized(t *testing.T) {
	tokens := Tokenize("{{KIA|extra}}")
	require.Len(t, tokens, 1)
	require.Equal(t, KindText, tokens[0].Kind)
	require.Equal(t, "{{KIA|extra}}", tokens[0].Text)
}

func TestTokenize_Efn(t *testing.T) {
	tokens := Tokenize("{{Efn|the note|name=n1|group=lower}}")
	require.Len(t, tokens, 1)

	tok := tokens[0]
	require.Equal(t, KindEfn, tok.Kind)
	require.Equal(t, "the note", tok.Note)
	require.Equal(t, "n1", tok.NoteName)
	require.Equal(t, "lower", tok.NoteGroup)
}

func TestTokenize_EfnWithoutBodyNotRecognized(t *testing.T) {
	tokens := Tokenize("{{Efn|name=n1}}")
	require.Len(t, tokens, 1)
	require.Equal(t, KindText, tokens[0].Kind)
}

func TestTokenize_Plainlist(t *testing.T) {
	tokens := Tokenize("{{Plainlist|\n* First\n* Second\n}}")
	require.Len(t, tokens, 1)

	tok := tokens[0]
	require.Equal(t, KindPlainlist, tok.Kind)
	require.Equal(t, []string{"First", "Second"}, tok.Items)
}

func TestTokenize_PlainlistWithoutBulletsNotRecognized(t *testing.T) {
	tokens := Tokenize("{{Plainlist|no bullets here}}")
	require.Len(t, tokens, 1)
	require.Equal(t, KindText, tokens[0].Kind)
}

func TestTokenize_Flagicon(t *testing.T) {
	tokens := Tokenize("{{flagicon|GER}} Germany")
	require.Len(t, tokens, 2)

	require.Equal(t, KindIcon, tokens[0].Kind)
	require.Equal(t, "GER", tokens[0].Code)
	require.Equal(t, "", tokens[0].Host)

	require.Equal(t, KindText, tokens[1].Kind)
	require.Equal(t, " Germany", tokens[1].Text)
}

func TestTokenize_FlagiconHostOverride(t *testing.T) {
	tokens := Tokenize("{{flag icon|BAY|host=de.wikipedia.org}}")
	require.Len(t, tokens, 1)
	require.Equal(t, KindIcon, tokens[0].Kind)
	require.Equal(t, "BAY", tokens[0].Code)
	require.Equal(t, "de.wikipedia.org", tokens[0].Host)
}

func TestTokenize_UnknownMacroStaysText(t *testing.T) {
	tokens := Tokenize("x{{Coord|50|30}}y")
	require.Len(t, tokens, 1)
	require.Equal(t, KindText, tokens[0].Kind)
	require.Equal(t, "x{{Coord|50|30}}y", tokens[0].Text)
}

func TestTokenize_ExternalLink(t *testing.T) {
	tokens := Tokenize("see [http://example.com/page Example site] here")
	require.Len(t, tokens, 3)

	require.Equal(t, "see ", tokens[0].Text)

	tok := tokens[1]
	require.Equal(t, KindExternalLink, tok.Kind)
	require.Equal(t, "http://example.com/page", tok.URI)
	require.Equal(t, "Example site", tok.Display)

	require.Equal(t, " here", tokens[2].Text)
}

func TestTokenize_ExternalLinkWithoutLabel(t *testing.T) {
	tokens := Tokenize("[https://example.com]")
	require.Len(t, tokens, 1)
	require.Equal(t, KindExternalLink, tokens[0].Kind)
	require.Equal(t, "https://example.com", tokens[0].Display)
}

func TestTokenize_BracketWithoutSchemeIsText(t *testing.T) {
	tokens := Tokenize("[not a url]")
	require.Len(t, tokens, 1)
	require.Equal(t, KindText, tokens[0].Kind)
	require.Equal(t, "[not a url]", tokens[0].Text)
}

func TestTokenize_BareURL(t *testing.T) {
	tokens := Tokenize("See http://example.com/page. Next")
	require.Len(t, tokens, 3)

	require.Equal(t, "See ", tokens[0].Text)

	require.Equal(t, KindBareURL, tokens[1].Kind)
	require.Equal(t, "http://example.com/page", tokens[1].URI)

	require.Equal(t, ". Next", tokens[2].Text)
}

func TestTokenize_BareURLKeepsBalancedParen(t *testing.T) {
	tokens := Tokenize("(https://en.wikipedia.org/wiki/Paris_(Texas))")
	require.Len(t, tokens, 3)
	require.Equal(t, "(", tokens[0].Text)
	require.Equal(t, "https://en.wikipedia.org/wiki/Paris_(Texas)", tokens[1].URI)
	require.Equal(t, ")", tokens[2].Text)
}

func TestTokenize_GaplessCoverage(t *testing.T) {
	inputs := []string{
		"plain",
		"a {{KIA}} b [[Paris]] c [http://e.com x] d http://e.com/f e",
		"{{Unknown|1}}[[File:F.jpg|thumb|cap]]",
		"broken {{never closes",
		"[half bracket http://e.com",
	}
	for _, input := range inputs {
		require.Equal(t, input, reconstruct(Tokenize(input)))
	}
}
