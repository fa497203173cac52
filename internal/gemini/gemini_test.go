package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"pdfquiz/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitJSON(t *testing.T, questions int) string {
	t.Helper()
	unit := models.QuizUnit{Title: "Cell Biology"}
	for i := 0; i < questions; i++ {
		unit.Questions = append(unit.Questions, models.QuestionRecord{
			Question:      fmt.Sprintf("Question %d?", i),
			Options:       []string{"one", "two", "three", "four"},
			CorrectAnswer: i % 4,
			Explanation:   "because",
		})
	}
	data, err := json.Marshal(unit)
	require.NoError(t, err)
	return string(data)
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("mitochondria are the powerhouse", 5)

	assert.Contains(t, prompt, "Create a 5-question multiple choice quiz")
	assert.Contains(t, prompt, "5 questions with 4 options")
	assert.True(t, strings.HasSuffix(prompt, "mitochondria are the powerhouse"))
}

func TestParseUnit_Valid(t *testing.T) {
	unit, err := parseUnit(unitJSON(t, 5), 5)
	require.NoError(t, err)
	assert.Equal(t, "Cell Biology", unit.Title)
	assert.Len(t, unit.Questions, 5)
}

func TestParseUnit_StripsMarkdownFence(t *testing.T) {
	fenced := "```json\n" + unitJSON(t, 5) + "\n```"
	unit, err := parseUnit(fenced, 5)
	require.NoError(t, err)
	assert.Len(t, unit.Questions, 5)
}

func TestParseUnit_RejectsMalformedJSON(t *testing.T) {
	_, err := parseUnit(`{"title": "broken`, 5)
	assert.Error(t, err)
}

func TestParseUnit_RejectsWrongQuestionCount(t *testing.T) {
	_, err := parseUnit(unitJSON(t, 3), 5)
	assert.Error(t, err)
}

func TestParseUnit_RejectsBadAnswerIndex(t *testing.T) {
	var unit models.QuizUnit
	require.NoError(t, json.Unmarshal([]byte(unitJSON(t, 5)), &unit))
	unit.Questions[2].CorrectAnswer = 9
	data, err := json.Marshal(unit)
	require.NoError(t, err)

	_, err = parseUnit(string(data), 5)
	assert.Error(t, err)
}

func TestParseUnit_RejectsWrongOptionCount(t *testing.T) {
	var unit models.QuizUnit
	require.NoError(t, json.Unmarshal([]byte(unitJSON(t, 5)), &unit))
	unit.Questions[0].Options = unit.Questions[0].Options[:2]
	data, err := json.Marshal(unit)
	require.NoError(t, err)

	_, err = parseUnit(string(data), 5)
	assert.Error(t, err)
}
