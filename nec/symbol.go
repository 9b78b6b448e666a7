package nec

// Symbol is the meaning of one measured space.
type Symbol uint8

const (
	SymbolInvalid Symbol = iota
	SymbolZero
	SymbolOne
	SymbolRepeat
	SymbolLeading
)

var symbolNames = [...]string{
	SymbolInvalid: "invalid",
	SymbolZero:    "zero",
	SymbolOne:     "one",
	SymbolRepeat:  "repeat",
	SymbolLeading: "leading",
}

func (s Symbol) String() string {
	if int(s) < len(symbolNames) {
		return symbolNames[s]
	}
	return "invalid"
}

// Classify maps a space duration in microseconds to a Symbol.
func Classify(us uint32) Symbol {
	switch {
	case ZeroWindow.Contains(us):
		return SymbolZero
	case OneWindow.Contains(us):
		return SymbolOne
	case RepeatWindow.Contains(us):
		return SymbolRepeat
	case LeadingWindow.Contains(us):
		return SymbolLeading
	}
	return SymbolInvalid
}
