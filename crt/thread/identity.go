package thread

// Identity names the occupant of a thread slot.
//
// ID is the ordering key: unique per live thread, stable for the thread's
// lifetime, but reusable by the host once the thread dies. Token is the
// uniqueness component that tells a new occupant of a recycled ID apart from
// its dead predecessor. Ordering considers ID only; Token is compared solely
// after a positional match.
type Identity struct {
	ID    uint64
	Token uint64
}

// Same reports whether other names the same occupant: equal ID and equal
// Token.
func (id Identity) Same(other Identity) bool {
	return id == other
}

// tokenShift drops the low bits of the host identifiers before packing.
// Host process and thread ids are multiples of four, so the low two bits
// carry no information.
const tokenShift = 2

// PackToken derives the 64-bit uniqueness token from the owning-process and
// thread identifiers: the shifted process id in the high 32 bits, the shifted
// thread id in the low 32 bits.
//
// The token is not globally unique across all time. It only needs to make a
// collision between two successive occupants of the same thread id extremely
// unlikely within the lifetime of one registry.
func PackToken(pid, tid uint64) uint64 {
	high := (pid >> tokenShift) & 0xFFFFFFFF
	low := (tid >> tokenShift) & 0xFFFFFFFF
	return high<<32 | low
}

// Provider is the capability interface behind identity resolution. Current
// returns the identity of the calling thread. Implementations are pure
// functions of host-provided identifiers and have no failure modes.
type Provider interface {
	Current() Identity
}
