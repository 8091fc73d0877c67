package lookup

import "time"

const (
	storageClassTTL      = 24 * time.Hour
	storageClassCapacity = 20
)
