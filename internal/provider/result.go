package provider

// FrequencyResult is the structured result from a word frequency provider.
// Frequency is occurrences per million words; nil when the corpus has no
// measurement for the word. Syllables is nil when the provider omits it.
type FrequencyResult struct {
	Word      string
	Frequency *float64
	Syllables *int
}
