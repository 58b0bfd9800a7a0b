package tools

import (
	"context"
	"encoding/json"

	"github.com/redhat-data-and-ai/gitlab-mcp/internal/gitlab"
	"github.com/redhat-data-and-ai/gitlab-mcp/internal/transform"
)

// ListResult is the envelope of every list tool
type ListResult[O any] struct {
	Items      []*O `json:"items"`
	Count      int  `json:"count"`
	Omitted    int  `json:"omitted,omitempty"`
	Page       int  `json:"page,omitempty"`
	NextPage   int  `json:"next_page,omitempty"`
	Total      int  `json:"total,omitempty"`
	TotalPages int  `json:"total_pages,omitempty"`
}

func newListResult[O any](list *transform.List[O], page *gitlab.Page) *ListResult[O] {
	result := &ListResult[O]{
		Items:   list.Items,
		Count:   len(list.Items),
		Omitted: list.Omitted,
	}
	if page != nil {
		result.Page = page.Current
		result.NextPage = page.Next
		result.Total = page.TotalItems
		result.TotalPages = page.TotalPages
	}
	return result
}

// listEntities fetches one page from path and transforms every entry. Each
// entry is decoded on its own so a malformed one is omitted, not fatal.
func listEntities[R any, O any](ctx context.Context, inv *Invocation, client gitlab.API, kind, path string, opt interface{}, fn transform.Func[R, O]) (interface{}, error) {
	var raw []json.RawMessage
	page, err := client.List(ctx, path, opt, &raw)
	if err != nil {
		return nil, err
	}
	return newListResult(transform.Batch(kind, raw, transform.Decode(kind, fn), inv.Now(), inv.Log), page), nil
}

// getEntity fetches one entity from path and transforms it
func getEntity[R any, O any](ctx context.Context, inv *Invocation, client gitlab.API, path string, opt interface{}, fn transform.Func[R, O]) (interface{}, error) {
	var raw R
	if err := client.Get(ctx, path, opt, &raw); err != nil {
		return nil, err
	}
	return fn(&raw, inv.Now())
}

// postEntity creates an entity at path and transforms the response
func postEntity[R any, O any](ctx context.Context, inv *Invocation, client gitlab.API, path string, body interface{}, fn transform.Func[R, O]) (interface{}, error) {
	var raw R
	if err := client.Post(ctx, path, body, &raw); err != nil {
		return nil, err
	}
	return fn(&raw, inv.Now())
}

// putEntity updates the entity at path and transforms the response
func putEntity[R any, O any](ctx context.Context, inv *Invocation, client gitlab.API, path string, body interface{}, fn transform.Func[R, O]) (interface{}, error) {
	var raw R
	if err := client.Put(ctx, path, body, &raw); err != nil {
		return nil, err
	}
	return fn(&raw, inv.Now())
}

// DeleteResult acknowledges a deletion
type DeleteResult struct {
	Deleted bool   `json:"deleted"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
}
