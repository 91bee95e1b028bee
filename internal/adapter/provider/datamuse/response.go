package datamuse

// apiWord represents a single word object from the Datamuse API response.
// With md=f,s the tags carry the frequency ("f:0.21") and numSyllables is set.
type apiWord struct {
	Word         string   `json:"word"`
	Score        int      `json:"score"`
	Tags         []string `json:"tags"`
	NumSyllables int      `json:"numSyllables"`
}
