// Package similarity scores how closely radar windows resemble invader
// patterns.
//
// # String Metrics
//
// Distance is the classic Levenshtein edit distance with unit costs.
//
// Ratio is a normalized similarity in [0, 1] computed from a second edit
// distance in which a substitution costs 2 and an insertion or deletion
// costs 1:
//
//	ratio = (len(a) + len(b) - d) / (len(a) + len(b))
//
// This is not the same number as 1 - Distance/max(len). It equals 1 for
// identical strings and 0 when the strings share no characters in order.
//
// Alternative metrics implement the Metric interface and can be selected by
// name with MetricByName:
//   - "ratio" (default): Ratio
//   - "jaro-winkler": Jaro-Winkler similarity
//
// # Window Scoring
//
// WindowScorer compares two equally shaped blocks row by row and column by
// column, averages each pass and returns the mean of the two averages. The
// column pass is what makes the score sensitive to 2-D shape rather than to
// the bag of characters in each row.
package similarity
