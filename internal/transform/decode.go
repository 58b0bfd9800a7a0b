package transform

import (
	"encoding/json"
	"time"

	apperrors "github.com/redhat-data-and-ai/gitlab-mcp/internal/errors"
)

// Decode adapts fn to take the raw JSON of one entity, so that a malformed
// entity fails on its own instead of failing the page it arrived in.
func Decode[R any, O any](kind string, fn Func[R, O]) Func[json.RawMessage, O] {
	return func(raw *json.RawMessage, now time.Time) (*O, error) {
		var entity R
		if err := json.Unmarshal(*raw, &entity); err != nil {
			return nil, apperrors.NewDecodeError(kind, err)
		}
		return fn(&entity, now)
	}
}
