package ids

import "github.com/segmentio/ksuid"

// New returns a k-sortable unique id, used to correlate log lines belonging
// to one export run.
func New() string {
	return ksuid.New().String()
}
