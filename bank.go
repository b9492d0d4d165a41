package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"sync"
)

// QuestionBank holds the question corpus grouped by category. It is
// loaded once at startup and read-only afterwards, so lookups only
// guard the shuffle draw.
type QuestionBank struct {
	mu    sync.Mutex
	pools map[Category][]Question
}

// newQuestionBank reads the corpus from path. A missing or unreadable
// file, or one without a single usable row, falls back to the built-in
// default set so the server can always run.
func newQuestionBank(cfg *Config, path string) *QuestionBank {
	bank := &QuestionBank{
		pools: make(map[Category][]Question, len(allCategories)),
	}

	if err := bank.loadFile(cfg, path); err != nil {
		logf(cfg, "BANK: Unable to read %s (%v), using default questions", path, err)
		bank.loadDefaults()
		return bank
	}

	loaded := 0
	for _, pool := range bank.pools {
		loaded += len(pool)
	}
	if loaded == 0 {
		logf(cfg, "BANK: No usable questions in %s, using default questions", path)
		bank.loadDefaults()
		return bank
	}

	for _, category := range allCategories {
		logf(cfg, "BANK: Category %s has %d questions", category, len(bank.pools[category]))
	}

	return bank
}

// loadFile parses the corpus CSV: question text, four options, the
// correct answer's text, and the category name. The header row is
// skipped. Bad rows are logged and dropped, never fatal.
func (b *QuestionBank) loadFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return err
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 7 {
			logf(cfg, "BANK: Skipping short row %d", i+1)
			continue
		}

		text := row[0]
		options := []string{row[1], row[2], row[3], row[4]}
		correctIndex := slices.Index(options, row[5])
		if correctIndex == -1 {
			logf(cfg, "BANK: Correct answer %q not among options for question %q", row[5], text)
			continue
		}

		category, ok := parseCategory(row[6])
		if !ok {
			logf(cfg, "BANK: Invalid category %q for question %q", row[6], text)
			continue
		}

		b.pools[category] = append(b.pools[category], newQuestion(text, options, correctIndex))
	}

	return nil
}

func (b *QuestionBank) loadDefaults() {
	b.pools = map[Category][]Question{
		CategoryHistory: {newQuestion("Which year did World War II end?",
			[]string{"1943", "1944", "1945", "1946"}, 2)},
		CategoryScience: {newQuestion("What is the chemical symbol for gold?",
			[]string{"Au", "Ag", "Fe", "Cu"}, 0)},
		CategoryGeography: {newQuestion("What is the capital of Australia?",
			[]string{"Sydney", "Melbourne", "Perth", "Canberra"}, 3)},
		CategoryLiterature: {newQuestion("Who wrote Romeo and Juliet?",
			[]string{"Charles Dickens", "William Shakespeare", "Jane Austen", "Mark Twain"}, 1)},
		CategoryMath: {newQuestion("What is the square root of 144?",
			[]string{"10", "11", "12", "13"}, 2)},
	}
}

// QuestionsFor draws up to count questions from the category's pool,
// without replacement, in randomized order. A pool smaller than count
// yields a short round; an empty pool yields synthetic placeholders so
// the round can always proceed.
func (b *QuestionBank) QuestionsFor(category Category, count int) []Question {
	b.mu.Lock()
	pool := b.pools[category]
	b.mu.Unlock()

	if len(pool) == 0 {
		return emergencyQuestions(count)
	}

	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:min(count, len(shuffled))]
}

func emergencyQuestions(count int) []Question {
	questions := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, newQuestion(
			fmt.Sprintf("Emergency Question %d", i+1),
			[]string{"Option A", "Option B", "Option C", "Option D"},
			0,
		))
	}
	return questions
}
