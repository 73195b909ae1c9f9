package models

// Arg is a flag with an optional value token.
//
// A flag and its value are one unit: removing the flag always removes its value.
type Arg struct {
	Flag     string
	Value    string
	HasValue bool
}

// ArgList is an ordered yt-dlp argument vector.
type ArgList []Arg

// Flag appends a bare flag.
func (l ArgList) Flag(flag string) ArgList {
	return append(l, Arg{Flag: flag})
}

// Pair appends a flag followed by its value.
func (l ArgList) Pair(flag, value string) ArgList {
	return append(l, Arg{Flag: flag, Value: value, HasValue: true})
}

// Concat returns a new list holding l followed by other.
func (l ArgList) Concat(other ArgList) ArgList {
	out := make(ArgList, 0, len(l)+len(other))
	out = append(out, l...)
	return append(out, other...)
}

// Without returns a copy of l with every unit whose flag is in flags removed.
func (l ArgList) Without(flags ...string) ArgList {
	out := make(ArgList, 0, len(l))
	for _, a := range l {
		drop := false
		for _, f := range flags {
			if a.Flag == f {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, a)
		}
	}
	return out
}

// Has reports whether flag is present.
func (l ArgList) Has(flag string) bool {
	for _, a := range l {
		if a.Flag == flag {
			return true
		}
	}
	return false
}

// Value returns the value of the first unit with the given flag.
func (l ArgList) Value(flag string) (string, bool) {
	for _, a := range l {
		if a.Flag == flag && a.HasValue {
			return a.Value, true
		}
	}
	return "", false
}

// Strings flattens the list into argv tokens.
func (l ArgList) Strings() []string {
	out := make([]string, 0, len(l)*2)
	for _, a := range l {
		out = append(out, a.Flag)
		if a.HasValue {
			out = append(out, a.Value)
		}
	}
	return out
}
