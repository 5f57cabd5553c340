// internal/words/types.go
//
// Puzzle definitions: the target words a player has to find, with the
// display metadata shown on each word's explanation card.

package words

// Entry is one target word.
// Word is uppercase A–Z once normalized; Image and Description are passed
// through untouched to whoever renders the card.
type Entry struct {
	Word        string `yaml:"word" json:"word"`
	Image       string `yaml:"image,omitempty" json:"image,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Puzzle is a named list of target words.
// Size is the preferred grid size; 0 means "use the configured default".
type Puzzle struct {
	Name  string  `yaml:"name" json:"name"`
	Title string  `yaml:"title,omitempty" json:"title,omitempty"`
	Size  int     `yaml:"size,omitempty" json:"size,omitempty"`
	Words []Entry `yaml:"words" json:"words"`
}

// Longest returns the length of the longest target word.
func (p *Puzzle) Longest() int {
	n := 0
	for _, e := range p.Words {
		if len(e.Word) > n {
			n = len(e.Word)
		}
	}
	return n
}
