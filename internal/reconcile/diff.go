package reconcile

// plan is the partition of a desired-state set against the current
// name -> remote id mapping: entities to create, entities whose remote
// copy may need editing to match the desired one, and current names no
// longer present in the desired state (candidates for deletion, subject
// to the on-delete policy).
type plan[T any] struct {
	Create []namedEntity[T]
	Update []updateEntity[T]
	Delete []string
}

type namedEntity[T any] struct {
	Name   string
	Entity T
}

type updateEntity[T any] struct {
	Name     string
	RemoteID int64
	Entity   T
}

// buildPlan partitions desired (keyed by stable name) against stored,
// the current id mapping for that entity kind: the identifier store's
// for notifications and docker hosts, the live marker-tag scan topped up
// by the store for monitors.
func buildPlan[T any](desired map[string]T, stored map[string]int64) plan[T] {
	var p plan[T]

	for name, entity := range desired {
		if id, ok := stored[name]; ok {
			p.Update = append(p.Update, updateEntity[T]{Name: name, RemoteID: id, Entity: entity})
		} else {
			p.Create = append(p.Create, namedEntity[T]{Name: name, Entity: entity})
		}
	}

	for name := range stored {
		if _, ok := desired[name]; !ok {
			p.Delete = append(p.Delete, name)
		}
	}

	return p
}
