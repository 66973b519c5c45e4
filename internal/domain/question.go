package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// OptionLetters lists the four answer letters in presentation order.
var OptionLetters = []string{"A", "B", "C", "D"}

// Question represents a single multiple-choice exam item.
type Question struct {
	ID            int               `json:"id"`
	Text          string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
	Topic         string            `json:"topic"`
}

// Valid reports whether the question is structurally sound: the four
// options A-D are present (no extras) and the correct answer is one of
// them. Semantic quality of the content is out of scope here.
func (q *Question) Valid() bool {
	if q.Text == "" || len(q.Options) != len(OptionLetters) {
		return false
	}
	for _, letter := range OptionLetters {
		if _, ok := q.Options[letter]; !ok {
			return false
		}
	}
	_, ok := q.Options[q.CorrectAnswer]
	return ok
}

// QuestionList is a custom type for storing question slices as JSON in the
// database.
type QuestionList []Question

// Value implements the driver.Valuer interface for database serialization.
func (l QuestionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (l *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*l = QuestionList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan QuestionList")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, l)
}

// StringArray is a custom type for storing string arrays as JSON in the
// database.
type StringArray []string

// Value implements the driver.Valuer interface for database serialization.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringArray")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, a)
}
