package clair

// Binary operator levels, lowest binding first. Assignment sits below precOr
// and is handled separately because it is right-associative.
const (
	lowestPrec = iota
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
)

var punctPrecedences = map[string]int{
	"==": precEquality,
	"!=": precEquality,
	"<":  precComparison,
	">":  precComparison,
	"<=": precComparison,
	">=": precComparison,
	"+":  precSum,
	"-":  precSum,
	"*":  precProduct,
	"/":  precProduct,
	// "." is an arithmetic operator at product level, not member access.
	".": precProduct,
}

var keywordPrecedences = map[Keyword]int{
	KeywordOu: precOr,
	KeywordEt: precAnd,
}

// binaryPrecedence returns the level of tok as a binary operator, or
// lowestPrec when tok is not one.
func binaryPrecedence(tok Token) int {
	switch tok.Kind {
	case TokenPunctuation:
		return punctPrecedences[tok.Value]
	case TokenKeyword:
		return keywordPrecedences[tok.Keyword()]
	default:
		return lowestPrec
	}
}

func isUnaryOperator(tok Token) bool {
	switch tok.Keyword() {
	case KeywordNon, KeywordTypeof:
		return true
	}
	return tok.isPunct("-")
}
