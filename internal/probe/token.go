package probe

import "github.com/google/uuid"

// TokenSize is the length of the correlation token carried as echo payload.
const TokenSize = len(uuid.UUID{})

// NewToken returns random bytes used to recognise this session's reply
// among all ICMP traffic on the socket. Safe for concurrent use.
func NewToken() []byte {
	id := uuid.New()
	return id[:]
}
