package llmtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  hello  ", "hello"},
		{"reasoning", "<think>plan</think>\n{\"a\":1}", `{"a":1}`},
		{"last reasoning marker wins", "x</think>y</THINK> z", "z"},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without tag", "```\nbody\n```  ", "body"},
		{"nothing to strip", "just text", "just text"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestStripFluff(t *testing.T) {
	assert.Equal(t, "AGREEMENT\nbody", StripFluff("Here is your NDA:\n\nAGREEMENT\nbody"))
	assert.Equal(t, "AGREEMENT", StripFluff("Sure, drafting now\nAGREEMENT"))
	assert.Equal(t, "AGREEMENT", StripFluff("AGREEMENT"))
}

func TestExtractJSONStrict(t *testing.T) {
	got, ok := ExtractJSON(`{"user_reply": "hi", "actions": []}`, "user_reply")
	require.True(t, ok)
	assert.Equal(t, "hi", got["user_reply"])
}

func TestExtractJSONEmbeddedInNoise(t *testing.T) {
	embedded := `{"user_reply": "Got it", "actions": ["update_document_type"], "update_document_type": "NDA"}`
	want := map[string]any{
		"user_reply":           "Got it",
		"actions":              []any{"update_document_type"},
		"update_document_type": "NDA",
	}

	inputs := []string{
		"Sure! Here is the command:\n" + embedded + "\nLet me know.",
		"<think>the user wants {an NDA}</think>" + embedded,
		"```json\n" + embedded + "\n```",
		"prefix {not json} middle " + embedded + " trailing }",
		"Use the { key to open. " + embedded,
		"unclosed {{ " + embedded + " and { more",
	}

	for _, in := range inputs {
		got, ok := ExtractJSON(Normalize(in), "user_reply")
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	text := `Reply: {"user_reply": "use {\"user_reply\": \"nested\"} carefully", "actions": []} done`

	got, ok := ExtractJSON(text, "user_reply")
	require.True(t, ok)
	assert.Equal(t, `use {"user_reply": "nested"} carefully`, got["user_reply"])
}

func TestExtractJSONPrefersRequiredKey(t *testing.T) {
	text := `{"note": "first"} and then {"draft": "AGREEMENT"}`

	got, ok := ExtractJSON(text, "draft")
	require.True(t, ok)
	assert.Equal(t, "AGREEMENT", got["draft"])
}

func TestExtractJSONKeylessObjectInProseRejected(t *testing.T) {
	got, ok := ExtractJSON(`text {"note": "only"} text`, "draft")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestExtractJSONWholeTextMayLackKey(t *testing.T) {
	got, ok := ExtractJSON(`{"note": "only"}`, "draft")
	require.True(t, ok)
	assert.Equal(t, "only", got["note"])
}

func TestExtractJSONStrayBraceAndBraceInString(t *testing.T) {
	text := `Use the { key to open. {"user_reply": "a } b", "actions": []}`

	got, ok := ExtractJSON(Normalize(text), "user_reply")
	require.True(t, ok)
	assert.Equal(t, "a } b", got["user_reply"])
}

func TestExtractJSONManyBraces(t *testing.T) {
	text := strings.Repeat("}", 30000) + strings.Repeat("{", 30000) + `{"user_reply": "late"}`

	_, ok := ExtractJSON(strings.Repeat("}", 30000), "user_reply")
	assert.False(t, ok)

	got, ok := ExtractJSON(text, "user_reply")
	require.True(t, ok)
	assert.Equal(t, "late", got["user_reply"])
}

func TestExtractJSONSingleQuotes(t *testing.T) {
	got, ok := ExtractJSON(`{'user_reply': 'hello', 'actions': ['update_needed_values']}`, "user_reply")
	require.True(t, ok)
	assert.Equal(t, "hello", got["user_reply"])
	assert.Equal(t, []any{"update_needed_values"}, got["actions"])
}

func TestExtractJSONPythonLiteral(t *testing.T) {
	text := `{'user_reply': "Don't worry", 'update_needed_values': {'Term': 2, 'Mutual': True, 'Note': None}, 'pairs': (1, 2,)}`

	got, ok := ExtractJSON(text, "user_reply")
	require.True(t, ok)
	assert.Equal(t, "Don't worry", got["user_reply"])
	assert.Equal(t, map[string]any{"Term": float64(2), "Mutual": true, "Note": nil}, got["update_needed_values"])
	assert.Equal(t, []any{float64(1), float64(2)}, got["pairs"])
}

func TestExtractJSONReverseScan(t *testing.T) {
	text := "Result follows { broken { 'draft': 'AGREEMENT', } tail"

	got, ok := ExtractJSON(text, "draft")
	require.True(t, ok)
	assert.Equal(t, "AGREEMENT", got["draft"])
}

func TestExtractJSONFencedBlockAfterProse(t *testing.T) {
	text := "I drafted it.\n```json\n{'is_success': False, 'missing_desc': 'date'}\n```\nthanks"

	got, ok := ExtractJSON(text, "is_success")
	require.True(t, ok)
	assert.Equal(t, false, got["is_success"])
}

func TestExtractJSONFailure(t *testing.T) {
	for _, in := range []string{"", "no json here", "[1, 2, 3]", "{unclosed", `"just a string"`} {
		got, ok := ExtractJSON(in, "user_reply")
		assert.False(t, ok, in)
		assert.Nil(t, got, in)
	}
}

func TestExtractJSONDeterministic(t *testing.T) {
	text := `a {"x": 1} b {"user_reply": "one"} c {"user_reply": "two"}`

	for range 5 {
		got, ok := ExtractJSON(text, "user_reply")
		require.True(t, ok)
		assert.Equal(t, "one", got["user_reply"])
	}
}

func TestDetectPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"[NAME]", "[DATE]"}, DetectPlaceholders("Party [NAME] agrees on [DATE]."))
	assert.Equal(t, []string{}, DetectPlaceholders("no tokens here"))
	assert.Equal(t, []string{"[DATE]"}, DetectPlaceholders("[DATE] ... [DATE]"))
	assert.Equal(t, []string{"[PARTY_A]", "[PARTY B]"}, DetectPlaceholders("[PARTY_A] and [PARTY B], see [lowercase]"))
	assert.Empty(t, DetectPlaceholders(""))
	assert.NotNil(t, DetectPlaceholders(""))
}
