package common

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns a unique opaque record identifier: a base-36 millisecond
// timestamp prefix followed by a random UUID suffix. The prefix keeps ids
// roughly sortable by creation time, the suffix makes collisions practically
// impossible within a store's lifetime.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + uuid.NewString()
}
