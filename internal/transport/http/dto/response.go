package dto

// ListResp is the list payload for campaign events.
type ListResp[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResp never emits a null items array.
func NewListResp[T any](items []T) ListResp[T] {
	if items == nil {
		items = []T{}
	}
	return ListResp[T]{Items: items, Total: len(items)}
}
