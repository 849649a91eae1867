package pools

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	cases := map[string]string{
		"The Wire":    "the wire",
		"  The Wire ": "the wire",
		"THE  WIRE":   "the wire",
		"":            "",
		"   ":         "",
	}
	for input, want := range cases {
		if got := normalizeAnswer(input); got != want {
			t.Fatalf("normalizeAnswer(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestGradeAnswerCaseAndWhitespaceInsensitive(t *testing.T) {
	correct := normalizeAnswer("The Wire")
	submissions := []struct {
		text    string
		correct bool
	}{
		{"the wire", true},
		{"The Wire ", true},
		{"Breaking Bad", false},
	}
	winners, awarded := 0, 0
	for _, submission := range submissions {
		isCorrect, earned := gradeAnswer(submission.text, correct, 25)
		if isCorrect != submission.correct {
			t.Fatalf("gradeAnswer(%q) correct=%t, want %t", submission.text, isCorrect, submission.correct)
		}
		if isCorrect && earned != 25 {
			t.Fatalf("gradeAnswer(%q) earned %d, want 25", submission.text, earned)
		}
		if !isCorrect && earned != 0 {
			t.Fatalf("gradeAnswer(%q) earned %d, want 0", submission.text, earned)
		}
		if isCorrect {
			winners++
			awarded += earned
		}
	}
	if winners != 2 || awarded != 50 {
		t.Fatalf("expected 2 winners and 50 points, got %d and %d", winners, awarded)
	}
}
