package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Phrases holds the phrase lists for every lexical category. All phrases are
// matched as lowercase substrings of the full transcript.
type Phrases struct {
	Filler            []string `yaml:"filler"`
	Hedging           []string `yaml:"hedging"`
	QuestionWords     []string `yaml:"question_words"`
	WeakOpeners       []string `yaml:"weak_openers"`
	Apologetic        []string `yaml:"apologetic"`
	Assertive         []string `yaml:"assertive"`
	IncompleteEndings []string `yaml:"incomplete_endings"`
	Positive          []string `yaml:"positive"`
	Negative          []string `yaml:"negative"`
	Contractions      []string `yaml:"contractions"`
	Formal            []string `yaml:"formal"`
}

// DefaultPhrases returns the built-in phrase lists
func DefaultPhrases() Phrases {
	return Phrases{
		Filler: []string{
			"um", "uh", "like", "you know", "sort of", "kind of",
			"basically", "actually", "literally", "i mean",
		},
		Hedging: []string{
			"maybe", "i think", "i guess", "possibly", "perhaps",
			"i feel like", "probably", "it might", "not sure", "i suppose",
		},
		QuestionWords: []string{
			"what", "when", "where", "why", "how", "who", "which",
		},
		WeakOpeners: []string{
			"so basically", "well, i", "um, so", "i just wanted",
			"this is probably", "i'll try to",
		},
		Apologetic: []string{
			"sorry", "i apologize", "my bad", "forgive me", "excuse me",
		},
		Assertive: []string{
			"i will", "i can", "i know", "definitely", "absolutely",
			"i'm confident", "without a doubt", "i am certain",
		},
		IncompleteEndings: []string{
			"and um", "so yeah", "but uh", "or something", "or whatever",
			"and stuff",
		},
		Positive: []string{
			"great", "good", "happy", "excited", "love", "wonderful",
			"appreciate", "confident", "grateful", "glad",
		},
		Negative: []string{
			"bad", "hate", "terrible", "awful", "worried", "afraid",
			"angry", "frustrated", "upset", "annoyed",
		},
		Contractions: []string{
			"i'm", "don't", "can't", "it's", "that's", "we're",
			"you're", "won't", "isn't", "didn't", "i've", "i'll",
		},
		Formal: []string{
			"therefore", "furthermore", "moreover", "consequently",
			"in conclusion", "with respect to", "regarding", "henceforth",
		},
	}
}

// LoadPhrases merges a YAML override file over the built-in lists. Categories
// absent from the file keep their defaults; an empty path returns the
// defaults untouched.
func LoadPhrases(path string) (Phrases, error) {
	phrases := DefaultPhrases()
	if path == "" {
		return phrases, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return phrases, fmt.Errorf("read lexicon file: %w", err)
	}

	var override Phrases
	if err := yaml.Unmarshal(data, &override); err != nil {
		return phrases, fmt.Errorf("parse lexicon file: %w", err)
	}

	merge := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	merge(&phrases.Filler, override.Filler)
	merge(&phrases.Hedging, override.Hedging)
	merge(&phrases.QuestionWords, override.QuestionWords)
	merge(&phrases.WeakOpeners, override.WeakOpeners)
	merge(&phrases.Apologetic, override.Apologetic)
	merge(&phrases.Assertive, override.Assertive)
	merge(&phrases.IncompleteEndings, override.IncompleteEndings)
	merge(&phrases.Positive, override.Positive)
	merge(&phrases.Negative, override.Negative)
	merge(&phrases.Contractions, override.Contractions)
	merge(&phrases.Formal, override.Formal)

	return phrases, nil
}
