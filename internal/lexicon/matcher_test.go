package lexicon

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestMatch_FillerCounts(t *testing.T) {
	counts := Match("Um, I was like, you know, thinking um about it", DefaultPhrases())

	// "um" x2, "like" x1, "you know" x1; "thinking" contains no filler
	if counts.Filler != 4 {
		t.Errorf("Expected 4 filler matches, got %d", counts.Filler)
	}
}

func TestMatch_SubstringNotWordBoundary(t *testing.T) {
	// "actually" appears inside "factually"; substring matching still counts it
	counts := Match("that is factually correct", DefaultPhrases())

	if counts.Filler != 1 {
		t.Errorf("Expected substring match inside longer word, got %d", counts.Filler)
	}
}

func TestMatch_CaseInsensitive(t *testing.T) {
	counts := Match("SORRY, I APOLOGIZE", DefaultPhrases())

	if counts.Apologetic != 2 {
		t.Errorf("Expected 2 apologetic matches, got %d", counts.Apologetic)
	}
}

func TestMatch_EmptyTranscript(t *testing.T) {
	counts := Match("", DefaultPhrases())

	if counts.WordCount != 0 {
		t.Errorf("Expected 0 words for empty transcript, got %d", counts.WordCount)
	}
	if counts.Filler != 0 || counts.Hedging != 0 {
		t.Errorf("Expected zero counts for empty transcript, got %+v", counts)
	}
	if counts.AverageWordLength != 0 {
		t.Errorf("Expected 0 average word length, got %f", counts.AverageWordLength)
	}
}

func TestMatch_WordCountSingleSpaceSplit(t *testing.T) {
	counts := Match("one two three", DefaultPhrases())

	if counts.WordCount != 3 {
		t.Errorf("Expected 3 words, got %d", counts.WordCount)
	}
}

func TestMatch_RepeatedWords(t *testing.T) {
	counts := Match("i i really really really mean it", DefaultPhrases())

	// "i i" is one repeat, "really really really" is two
	if counts.RepeatedWords != 3 {
		t.Errorf("Expected 3 repeated words, got %d", counts.RepeatedWords)
	}
}

func TestMatch_AverageWordLength(t *testing.T) {
	counts := Match("ab abcd", DefaultPhrases())

	if math.Abs(counts.AverageWordLength-3.0) > 1e-9 {
		t.Errorf("Expected average word length 3.0, got %f", counts.AverageWordLength)
	}
}

func TestMatch_SentimentCategories(t *testing.T) {
	counts := Match("i feel great and happy but a bit worried", DefaultPhrases())

	if counts.Positive != 2 {
		t.Errorf("Expected 2 positive matches, got %d", counts.Positive)
	}
	if counts.Negative != 1 {
		t.Errorf("Expected 1 negative match, got %d", counts.Negative)
	}
}

func TestLoadPhrases_EmptyPathUsesDefaults(t *testing.T) {
	phrases, err := LoadPhrases("")
	if err != nil {
		t.Fatalf("LoadPhrases failed: %v", err)
	}
	if len(phrases.Filler) == 0 {
		t.Error("Expected built-in filler list")
	}
}

func TestLoadPhrases_OverrideSingleCategory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := "filler:\n  - \"erm\"\n  - \"ehh\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	phrases, err := LoadPhrases(path)
	if err != nil {
		t.Fatalf("LoadPhrases failed: %v", err)
	}

	if len(phrases.Filler) != 2 || phrases.Filler[0] != "erm" {
		t.Errorf("Expected overridden filler list, got %v", phrases.Filler)
	}
	// Untouched categories keep defaults
	if len(phrases.Hedging) == 0 {
		t.Error("Expected default hedging list preserved")
	}
}

func TestLoadPhrases_MissingFile(t *testing.T) {
	_, err := LoadPhrases("/nonexistent/lexicon.yaml")
	if err == nil {
		t.Error("Expected error for missing lexicon file")
	}
}
