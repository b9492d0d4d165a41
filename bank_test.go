package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "questions.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestQuestionBank_LoadsValidRows(t *testing.T) {
	path := writeCorpus(t, `question,option1,option2,option3,option4,answer,category
Which planet is known as the Red Planet?,Venus,Mars,Jupiter,Saturn,Mars,SCIENCE
What is 2+2?,3,4,5,6,4,math
`)

	bank := newQuestionBank(&Config{}, path)

	science := bank.QuestionsFor(CategoryScience, 5)
	require.Len(t, science, 1)
	assert.Equal(t, "Which planet is known as the Red Planet?", science[0].Text())
	assert.Equal(t, 1, science[0].CorrectIndex())

	math := bank.QuestionsFor(CategoryMath, 5)
	require.Len(t, math, 1)
	assert.Equal(t, "What is 2+2?", math[0].Text())
}

func TestQuestionBank_RejectsBadRows(t *testing.T) {
	path := writeCorpus(t, `question,option1,option2,option3,option4,answer,category
Good question?,a,b,c,d,a,HISTORY
Answer missing from options?,a,b,c,d,z,HISTORY
Unknown category?,a,b,c,d,a,COOKING
Short row,a,b
`)

	bank := newQuestionBank(&Config{}, path)

	history := bank.QuestionsFor(CategoryHistory, 10)
	require.Len(t, history, 1)
	assert.Equal(t, "Good question?", history[0].Text())
}

func TestQuestionBank_MissingFileFallsBackToDefaults(t *testing.T) {
	bank := newQuestionBank(&Config{}, filepath.Join(t.TempDir(), "nope.csv"))

	for _, category := range allCategories {
		assert.Len(t, bank.QuestionsFor(category, 5), 1, "one default question per category")
	}
}

func TestQuestionBank_NoUsableRowsFallsBackToDefaults(t *testing.T) {
	path := writeCorpus(t, `question,option1,option2,option3,option4,answer,category
Broken?,a,b,c,d,z,NOPE
`)

	bank := newQuestionBank(&Config{}, path)

	for _, category := range allCategories {
		assert.Len(t, bank.QuestionsFor(category, 5), 1)
	}
}

func TestQuestionBank_ShortPoolReturnsWhatItHas(t *testing.T) {
	bank := &QuestionBank{pools: map[Category][]Question{
		CategoryGeography: {
			newQuestion("G1", []string{"a", "b"}, 0),
			newQuestion("G2", []string{"a", "b"}, 0),
			newQuestion("G3", []string{"a", "b"}, 0),
		},
	}}

	drawn := bank.QuestionsFor(CategoryGeography, 5)
	require.Len(t, drawn, 3)

	texts := make(map[string]bool, 3)
	for _, q := range drawn {
		texts[q.Text()] = true
	}
	assert.Len(t, texts, 3, "no duplicates, no padding from other categories")
}

func TestQuestionBank_DrawsWithoutReplacement(t *testing.T) {
	pool := make([]Question, 6)
	for i := range pool {
		pool[i] = newQuestion(string(rune('A'+i)), []string{"a", "b"}, 0)
	}
	bank := &QuestionBank{pools: map[Category][]Question{CategoryMath: pool}}

	drawn := bank.QuestionsFor(CategoryMath, 4)
	require.Len(t, drawn, 4)

	texts := make(map[string]bool, 4)
	for _, q := range drawn {
		texts[q.Text()] = true
	}
	assert.Len(t, texts, 4)
}

func TestQuestionBank_EmptyPoolYieldsEmergencyQuestions(t *testing.T) {
	bank := &QuestionBank{pools: map[Category][]Question{}}

	drawn := bank.QuestionsFor(CategoryLiterature, 3)
	require.Len(t, drawn, 3)
	for _, q := range drawn {
		assert.Contains(t, q.Text(), "Emergency Question")
		assert.Len(t, q.Options(), 4)
	}
}
