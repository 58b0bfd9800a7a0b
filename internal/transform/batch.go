package transform

import (
	"time"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/logging"
	"go.uber.org/zap"
)

// Func transforms one raw entity of kind R into its output form O
type Func[R any, O any] func(raw *R, now time.Time) (*O, error)

// List is the result of a batch transformation. Omitted counts the raw items
// that failed to transform and were dropped.
type List[O any] struct {
	Items   []*O `json:"items"`
	Omitted int  `json:"omitted,omitempty"`
}

// Batch transforms every item independently. An item that fails is logged
// with its reason and omitted; the batch itself never fails.
func Batch[R any, O any](kind string, items []R, fn Func[R, O], now time.Time, log *logging.Logger) *List[O] {
	if log == nil {
		log = logging.NewNopLogger()
	}

	list := &List[O]{Items: make([]*O, 0, len(items))}
	for i := range items {
		out, err := fn(&items[i], now)
		if err != nil {
			list.Omitted++
			log.Warn("Omitted entity that could not be transformed",
				zap.String("kind", kind),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		list.Items = append(list.Items, out)
	}
	return list
}
