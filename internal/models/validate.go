package models

import "fmt"

// OptionCount is the number of answer options every question must carry.
const OptionCount = 4

// Validate checks a single question against the quiz schema: exactly four
// options and a 0-based correct-answer index inside them.
func (q QuestionRecord) Validate() error {
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question has %d options, want %d", len(q.Options), OptionCount)
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
		return fmt.Errorf("correct answer index %d out of range [0,%d]", q.CorrectAnswer, OptionCount-1)
	}
	return nil
}

// Validate enforces the structural contract of one generation result:
// exactly questionCount well-formed questions. The title may be empty; the
// assembler substitutes a default when merging. A unit that fails this check
// is unrecoverable for its chunk and fails the whole assembly.
func (u QuizUnit) Validate(questionCount int) error {
	if len(u.Questions) != questionCount {
		return fmt.Errorf("unit has %d questions, want %d", len(u.Questions), questionCount)
	}
	for i, q := range u.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}
