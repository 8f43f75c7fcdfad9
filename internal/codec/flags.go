package codec

// Bits del campo flags de ProximityChange. La semántica la define quien
// produce el evento; estos son los valores que usan los peers RACE.
const (
	FlagNew       int32 = 1 << 0
	FlagChange    int32 = 1 << 1
	FlagDrop      int32 = 1 << 2
	FlagCollision int32 = 1 << 3
)

var flagNames = []struct {
	bit  int32
	name string
}{
	{FlagNew, "new"},
	{FlagChange, "change"},
	{FlagDrop, "drop"},
	{FlagCollision, "collision"},
}

// FlagNames devuelve los nombres de los bits conocidos presentes en flags.
func FlagNames(flags int32) []string {
	var out []string
	for _, f := range flagNames {
		if flags&f.bit != 0 {
			out = append(out, f.name)
		}
	}
	return out
}
