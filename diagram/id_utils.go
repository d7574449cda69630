package diagram

// EnsureUniqueIDs ensures every shape and connection in a scene has a unique, non-zero ID.
// Shapes keep their IDs when possible because connections refer to them; connections
// with a missing or clashing ID are reassigned.
func EnsureUniqueIDs(scene *Scene) {
	if scene == nil {
		return
	}

	used := make(map[int]bool)
	next := scene.NextID()
	take := func() int {
		for used[next] {
			next++
		}
		used[next] = true
		return next
	}

	for i := range scene.Shapes {
		id := scene.Shapes[i].ID
		if id != 0 && !used[id] {
			used[id] = true
			continue
		}
		// A zero or duplicated shape ID cannot be referenced unambiguously,
		// so the first holder keeps it and later ones are renumbered.
		scene.Shapes[i].ID = take()
	}

	for i := range scene.Connections {
		id := scene.Connections[i].ID
		if id != 0 && !used[id] {
			used[id] = true
			continue
		}
		scene.Connections[i].ID = take()
	}
}
