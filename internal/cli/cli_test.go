package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testBank = `questions:
  - id: "t1"
    text: "What does a red light mean?"
    options:
      - {id: "A", text: "Go"}
      - {id: "B", text: "Stop"}
    correct_option_id: "B"
    explanation: "Red means stop."
    category: traffic_rules
    difficulty: easy
  - id: "t2"
    text: "What does a triangular sign usually signal?"
    options:
      - {id: "A", text: "Information"}
      - {id: "B", text: "Warning"}
    correct_option_id: "B"
    explanation: "Triangles warn about hazards ahead."
    category: road_signs
    difficulty: medium
`

func writeBank(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte(testBank), 0o600); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlayFullSession(t *testing.T) {
	path := writeBank(t)

	out, err := runCLI(t, "Z\nb\n\nB\n\nx\n", "play", "--config=", "--bank", path, "--lang", "en", "--seed", "3")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	for _, want := range []string{
		"Mixed Test | Question 1 of 2 | Correct so far: 0",
		"Unknown option, try again.",
		"Correct!",
		"Explanation: ",
		"Question 2 of 2",
		"Score: 100%",
		"Excellent! Great result!",
		"Total: 2  Correct: 2  Incorrect: 0",
		"Questions and Answers",
		"[Correct]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPlayWrongAnswerAndRestart(t *testing.T) {
	path := writeBank(t)

	// Category with a single question backfills from the rest of the bank.
	input := "A\n\nA\n\nr\nq\n"
	out, err := runCLI(t, input, "play", "--config=", "--bank", path, "--lang", "tr", "--category", "road_signs", "--count", "2")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	for _, want := range []string{
		"Trafik İşaretleri | Soru 1 / 2",
		"Yanlış. Doğru Cevap: B)",
		"Puan: %0",
		"Daha fazla pratik yapmalısınız.",
		"[Yanlış]",
		"Test sonlandırıldı.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Count(out, "Soru 1 / 2") != 2 {
		t.Fatalf("expected the restart to show the first question again, got:\n%s", out)
	}
}

const lowercaseBank = `questions:
  - id: "l1"
    text: "What does a red light mean?"
    options:
      - {id: "a", text: "Go"}
      - {id: "q", text: "Stop"}
    correct_option_id: "q"
    explanation: "Red means stop."
    category: traffic_rules
    difficulty: easy
  - id: "l2"
    text: "Who gives way at a zebra crossing?"
    options:
      - {id: "a", text: "Pedestrians"}
      - {id: "q", text: "Drivers"}
    correct_option_id: "q"
    explanation: "Drivers stop for pedestrians on the crossing."
    category: traffic_rules
    difficulty: easy
`

func TestPlayMatchesOptionIDsIgnoringCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lower.yaml")
	if err := os.WriteFile(path, []byte(lowercaseBank), 0o600); err != nil {
		t.Fatalf("write bank: %v", err)
	}

	// "q" is an option of both questions, so it answers instead of quitting.
	out, err := runCLI(t, "Q\n\nq\n\nx\n", "play", "--config=", "--bank", path, "--lang", "en", "--seed", "1")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if strings.Contains(out, "Unknown option, try again.") {
		t.Fatalf("lowercase option IDs must be accepted, got:\n%s", out)
	}
	if !strings.Contains(out, "Score: 100%") || strings.Contains(out, "Test ended.") {
		t.Fatalf("expected a finished perfect run, got:\n%s", out)
	}
}

func TestPlayQuitImmediately(t *testing.T) {
	out, err := runCLI(t, "q\n", "play", "--config=", "--lang", "en")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out, "Test ended.") {
		t.Fatalf("expected exit message, got:\n%s", out)
	}
	if strings.Contains(out, "Test Results") {
		t.Fatalf("quitting must not show results")
	}
}

func TestPlayRejectsUnknownCategory(t *testing.T) {
	if _, err := runCLI(t, "", "play", "--config=", "--category", "parking"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestBankValidateAndList(t *testing.T) {
	path := writeBank(t)

	out, err := runCLI(t, "", "bank", "validate", "--bank", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "traffic_rules") || !strings.Contains(out, "total") {
		t.Fatalf("unexpected validate output:\n%s", out)
	}

	out, err = runCLI(t, "", "bank", "list", "--category", "road_signs")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "road_signs") || strings.Contains(out, "traffic_rules") {
		t.Fatalf("expected only road signs, got:\n%s", out)
	}

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(broken, []byte("questions: []\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := runCLI(t, "", "bank", "validate", "--bank", broken); err == nil {
		t.Fatalf("expected validation error for empty bank")
	}
}
