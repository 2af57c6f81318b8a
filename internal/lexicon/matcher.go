package lexicon

import "strings"

// Counts holds the raw lexical measurements for one transcript
type Counts struct {
	Filler        int `json:"filler"`
	Hedging       int `json:"hedging"`
	QuestionWords int `json:"question_words"`
	WeakOpeners   int `json:"weak_openers"`
	Apologetic    int `json:"apologetic"`
	Assertive     int `json:"assertive"`
	Incomplete    int `json:"incomplete"`
	Positive      int `json:"positive"`
	Negative      int `json:"negative"`
	Contractions  int `json:"contractions"`
	Formal        int `json:"formal"`

	RepeatedWords     int     `json:"repeated_words"`
	WordCount         int     `json:"word_count"`
	AverageWordLength float64 `json:"average_word_length"`
}

// Match counts phrase occurrences for every category over the transcript.
// Matching is case-insensitive substring containment, deliberately not
// word-boundary aware: a phrase inside a longer word still counts. Changing
// this changes every downstream score.
func Match(text string, phrases Phrases) Counts {
	lower := strings.ToLower(text)

	counts := Counts{
		Filler:        countAny(lower, phrases.Filler),
		Hedging:       countAny(lower, phrases.Hedging),
		QuestionWords: countAny(lower, phrases.QuestionWords),
		WeakOpeners:   countAny(lower, phrases.WeakOpeners),
		Apologetic:    countAny(lower, phrases.Apologetic),
		Assertive:     countAny(lower, phrases.Assertive),
		Incomplete:    countAny(lower, phrases.IncompleteEndings),
		Positive:      countAny(lower, phrases.Positive),
		Negative:      countAny(lower, phrases.Negative),
		Contractions:  countAny(lower, phrases.Contractions),
		Formal:        countAny(lower, phrases.Formal),
	}

	words := Words(lower)
	counts.WordCount = len(words)
	counts.RepeatedWords = repeatedWords(words)
	counts.AverageWordLength = averageWordLength(words)

	return counts
}

// countAny sums non-overlapping occurrences of each phrase in the category
func countAny(lower string, phrases []string) int {
	total := 0
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		total += strings.Count(lower, phrase)
	}
	return total
}

// Words splits the transcript on single spaces, dropping empty fields.
// Word-level ratios throughout scoring are defined against this split.
func Words(text string) []string {
	if text == "" {
		return nil
	}
	fields := strings.Split(text, " ")
	words := fields[:0]
	for _, f := range fields {
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

// repeatedWords counts adjacent duplicate tokens ("I I think" counts one)
func repeatedWords(words []string) int {
	count := 0
	for i := 1; i < len(words); i++ {
		if words[i] == words[i-1] {
			count++
		}
	}
	return count
}

// averageWordLength returns the mean token length, 0 for an empty transcript
func averageWordLength(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += len(w)
	}
	return float64(total) / float64(len(words))
}
