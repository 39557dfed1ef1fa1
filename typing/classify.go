package typing

import "fmt"

// ModShift is the only modifier the classifier ever asks for.
const ModShift = "shift"

// Kind tells an Instruction apart.
type Kind int

const (
	// KindTap presses and releases one named key, optionally with modifiers.
	KindTap Kind = iota
	// KindLiteral hands the text to the platform string injection.
	KindLiteral
)

// Instruction is how a single character reaches the keyboard.
type Instruction struct {
	Kind      Kind
	Key       string
	Modifiers []string
	Literal   string
}

// Tap builds a key tap instruction.
func Tap(key string, modifiers ...string) Instruction {
	return Instruction{Kind: KindTap, Key: key, Modifiers: modifiers}
}

// Literal builds a literal injection instruction.
func Literal(s string) Instruction {
	return Instruction{Kind: KindLiteral, Literal: s}
}

func (in Instruction) String() string {
	if in.Kind == KindLiteral {
		return fmt.Sprintf("literal(%q)", in.Literal)
	}
	if len(in.Modifiers) > 0 {
		return fmt.Sprintf("tap(%s+%v)", in.Key, in.Modifiers)
	}
	return fmt.Sprintf("tap(%s)", in.Key)
}

// shiftedSymbols maps glyphs typed with shift to their unshifted base key
// on a US layout.
var shiftedSymbols = map[rune]string{
	'!': "1", '@': "2", '#': "3", '$': "4", '%': "5",
	'^': "6", '&': "7", '*': "8", '(': "9", ')': "0",
	'_': "-", '+': "=", '{': "[", '}': "]", '|': "\\",
	':': ";", '"': "'", '<': ",", '>': ".", '?': "/",
}

// plainSymbols maps unshifted punctuation to named keys.
var plainSymbols = map[rune]string{
	'-': "minus", '=': "equal", '[': "left_bracket", ']': "right_bracket",
	'\\': "backslash", ';': "semicolon", '\'': "quote", ',': "comma",
	'.': "period", '/': "slash", '`': "backquote",
}

// Classify maps one character to the instruction that reproduces it.
// It is total: anything without a discrete key becomes a literal.
func Classify(r rune) Instruction {
	switch {
	case r == '\n' || r == '\r':
		return Tap("enter")
	case r == '\t':
		return Tap("tab")
	case r == ' ':
		return Tap("space")
	case r >= 'A' && r <= 'Z':
		return Tap(string(r-'A'+'a'), ModShift)
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return Tap(string(r))
	}
	if base, ok := shiftedSymbols[r]; ok {
		return Tap(base, ModShift)
	}
	if name, ok := plainSymbols[r]; ok {
		return Tap(name)
	}
	return Literal(string(r))
}
