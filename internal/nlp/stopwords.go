package nlp

// PreservedWords survive stopword removal because they carry intent signal
// ("placements" vs "how are placements").
var PreservedWords = []string{
	"how", "what", "when", "where", "why", "who", "which",
	"can", "do", "does", "is", "are", "will", "should",
}

// Stopwords is the English stopword list applied by the Normalizer.
var Stopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
	"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing",
	"down", "during", "each", "few", "for", "from", "further", "had", "has", "have",
	"having", "he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
	"i", "if", "in", "into", "is", "it", "its", "itself", "just", "me",
	"more", "most", "my", "myself", "no", "nor", "not", "now", "of", "off",
	"on", "once", "only", "or", "other", "our", "ours", "ourselves", "out", "over",
	"own", "same", "she", "should", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "themselves", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "very", "was", "we", "were",
	"what", "when", "where", "which", "while", "who", "whom", "why", "will", "with",
	"would", "you", "your", "yours", "yourself", "yourselves", "s", "t", "don", "tell",
	"please", "us", "know", "want", "like", "get", "also",
}

func wordSet(words ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range words {
		for _, w := range list {
			set[w] = struct{}{}
		}
	}
	return set
}
