package sentiment

// lexicon maps words to valence scores, AFINN style. Positive words score
// above zero, negative below.
var lexicon = map[string]int{
	// positive
	"amazing":    4,
	"awesome":    4,
	"excellent":  3,
	"fantastic":  4,
	"great":      3,
	"love":       3,
	"wonderful":  4,
	"best":       3,
	"good":       3,
	"happy":      3,
	"excited":    3,
	"thanks":     2,
	"thank":      2,
	"helpful":    2,
	"nice":       3,
	"perfect":    3,
	"appreciate": 2,
	"glad":       3,
	"enjoy":      2,
	"cool":       1,
	"like":       2,
	"please":     1,

	// negative
	"angry":       -3,
	"annoyed":     -2,
	"annoying":    -2,
	"awful":       -3,
	"bad":         -3,
	"broken":      -1,
	"confused":    -2,
	"confusing":   -2,
	"frustrated":  -2,
	"frustrating": -2,
	"hate":        -3,
	"horrible":    -3,
	"lost":        -3,
	"problem":     -2,
	"problems":    -2,
	"terrible":    -3,
	"upset":       -2,
	"useless":     -2,
	"worst":       -3,
	"wrong":       -2,
	"stuck":       -2,
	"fail":        -2,
	"failed":      -2,
	"stupid":      -2,
	"ridiculous":  -3,
}
