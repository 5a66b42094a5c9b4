package event

import "fmt"

const cacheKindEvent = "event_graph"

func cacheKeyEventGraph(id int) string {
	return fmt.Sprintf("volunteer:event:%d", id)
}
