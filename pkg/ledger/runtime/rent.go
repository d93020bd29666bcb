package runtime

// AccountStorageOverhead is the per-account metadata size billed on top of the data length.
const AccountStorageOverhead = 128

// MaxPermittedDataLength bounds a single allocation.
const MaxPermittedDataLength = 10 * 1024 * 1024

// Rent prices account storage. An account holding MinimumBalance(len(data))
// lamports is exempt from rent collection for its lifetime.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
}

// DefaultRent matches the public network parameters.
var DefaultRent = Rent{
	LamportsPerByteYear: 3480,
	ExemptionThreshold:  2.0,
}

// MinimumBalance returns the lamports an account with dataLen bytes must hold.
func (r Rent) MinimumBalance(dataLen uint64) uint64 {
	bytes := AccountStorageOverhead + dataLen
	return uint64(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold)
}
