// Package nocopy provides a zero-size marker that makes go vet's copylocks
// checker flag accidental copies of the struct it's embedded in.
package nocopy

// Flag is embedded in types that own unique, non-shareable state (buffers,
// SGR trackers, profilers — all non-copyable by contract).
// It has no runtime effect; it exists purely for `go vet`.
type Flag struct{}

func (*Flag) Lock()   {}
func (*Flag) Unlock() {}
