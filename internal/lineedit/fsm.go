package lineedit

// The input loop is a three-state machine over single bytes. Escape
// sequences for the arrow keys arrive as ESC '[' A..D, so the parser
// needs one state for "saw ESC" and one for "saw ESC [". Everything a
// byte can trigger lives in the transition table below; the editor just
// executes the action it is handed.

type state int

const (
	stateNormal state = iota
	stateEscape
	stateBracket
)

type action int

const (
	actNone action = iota
	actInsert
	actSubmit
	actAbort
	actErase
	actHistPrev
	actHistClear
	actCursorRight
	actCursorLeft
)

// class buckets every byte into one table column. The arrow letters and
// '[' get their own classes because they mean different things inside an
// escape sequence than as plain text.
type class int

const (
	classPrint class = iota
	classEnter
	classCtrlC
	classBackspace
	classEsc
	classBracket
	classUpA
	classDownB
	classRightC
	classLeftD
	classOther
	numClasses
)

func classify(b byte) class {
	switch b {
	case '\r', '\n':
		return classEnter
	case 0x03:
		return classCtrlC
	case 0x7f, 0x08:
		return classBackspace
	case 0x1b:
		return classEsc
	case '[':
		return classBracket
	case 'A':
		return classUpA
	case 'B':
		return classDownB
	case 'C':
		return classRightC
	case 'D':
		return classLeftD
	}
	if b >= 0x20 && b <= 0x7e {
		return classPrint
	}
	return classOther
}

type transition struct {
	next state
	act  action
}

// transitions is the whole grammar. Unlisted cells fall back to the zero
// transition {stateNormal, actNone}, which is exactly the "swallow the
// byte and reset" rule for malformed sequences.
var transitions = [3][numClasses]transition{
	stateNormal: {
		classPrint:     {stateNormal, actInsert},
		classBracket:   {stateNormal, actInsert},
		classUpA:       {stateNormal, actInsert},
		classDownB:     {stateNormal, actInsert},
		classRightC:    {stateNormal, actInsert},
		classLeftD:     {stateNormal, actInsert},
		classEnter:     {stateNormal, actSubmit},
		classCtrlC:     {stateNormal, actAbort},
		classBackspace: {stateNormal, actErase},
		classEsc:       {stateEscape, actNone},
	},
	stateEscape: {
		classBracket: {stateBracket, actNone},
	},
	stateBracket: {
		classUpA:    {stateNormal, actHistPrev},
		classDownB:  {stateNormal, actHistClear},
		classRightC: {stateNormal, actCursorRight},
		classLeftD:  {stateNormal, actCursorLeft},
	},
}
