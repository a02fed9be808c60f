package trimesh

// Connectivity is derived on demand and cached on the mesh. All of it is
// invalidated when the vertex or face arrays are replaced.

// Neighbors returns, per vertex, the vertices sharing a face with it.
// Order is first-discovery order while scanning the face list; there are
// no duplicates. The membership guard is a linear scan, which is fine
// because mesh degree is small and bounded.
func (m *Mesh) Neighbors() [][]int {
	if m.vNeighbors != nil {
		return m.vNeighbors
	}
	nv := len(m.vertices)

	counts := make([]int, nv)
	for _, f := range m.faces {
		counts[f[0]]++
		counts[f[1]]++
		counts[f[2]]++
	}
	nbrs := make([][]int, nv)
	for i := range nbrs {
		nbrs[i] = make([]int, 0, counts[i]+2) // slop for boundaries
	}

	contains := func(s []int, v int) bool {
		for _, x := range s {
			if x == v {
				return true
			}
		}
		return false
	}
	for _, f := range m.faces {
		for j := 0; j < 3; j++ {
			me := f[j]
			n1, n2 := f[(j+1)%3], f[(j+2)%3]
			if !contains(nbrs[me], n1) {
				nbrs[me] = append(nbrs[me], n1)
			}
			if !contains(nbrs[me], n2) {
				nbrs[me] = append(nbrs[me], n2)
			}
		}
	}
	m.vNeighbors = nbrs
	return nbrs
}

// AdjacentFaces returns, per vertex, the indices of the faces touching it,
// in face-scan order.
func (m *Mesh) AdjacentFaces() [][]int {
	if m.vAdjFaces != nil {
		return m.vAdjFaces
	}
	nv := len(m.vertices)

	counts := make([]int, nv)
	for _, f := range m.faces {
		counts[f[0]]++
		counts[f[1]]++
		counts[f[2]]++
	}
	adj := make([][]int, nv)
	for i := range adj {
		adj[i] = make([]int, 0, counts[i])
	}
	for i, f := range m.faces {
		adj[f[0]] = append(adj[f[0]], i)
		adj[f[1]] = append(adj[f[1]], i)
		adj[f[2]] = append(adj[f[2]], i)
	}
	m.vAdjFaces = adj
	return adj
}

// AcrossEdge returns, per face, the index of the face across each of its
// three edges, or -1 for a boundary edge. Slot j of face i is the edge
// (f[j+1], f[j+2]). The match requires the other face to traverse the same
// edge in the opposite winding; a non-manifold or inconsistently wound
// mesh leaves unmatched slots at -1 without raising an error.
func (m *Mesh) AcrossEdge() [][3]int {
	if m.fAcrossEdge != nil {
		return m.fAcrossEdge
	}
	adj := m.AdjacentFaces()
	nf := len(m.faces)

	across := make([][3]int, nf)
	for i := range across {
		across[i] = [3]int{-1, -1, -1}
	}

	contains := func(s []int, v int) bool {
		for _, x := range s {
			if x == v {
				return true
			}
		}
		return false
	}
	for i := 0; i < nf; i++ {
		for j := 0; j < 3; j++ {
			if across[i][j] != -1 {
				continue
			}
			v1 := m.faces[i][(j+1)%3]
			v2 := m.faces[i][(j+2)%3]
			for _, other := range adj[v1] {
				if other == i {
					continue
				}
				if !contains(adj[v2], other) {
					continue
				}
				vidx := -1
				switch v1 {
				case m.faces[other][0]:
					vidx = 0
				case m.faces[other][1]:
					vidx = 1
				case m.faces[other][2]:
					vidx = 2
				}
				ind := (vidx + 1) % 3
				if m.faces[other][(ind+1)%3] != v2 {
					continue
				}
				across[i][j] = other
				across[other][ind] = i
				break
			}
		}
	}
	m.fAcrossEdge = across
	return across
}

// BoundaryEdges returns the boundary edges of the mesh, each oriented
// (f[j+1], f[j+2]) per face winding, reordered so that consecutive edges
// chain end-to-start around a single closed loop. If the edges cannot be
// chained (more than one boundary component, or bad topology) a diagnostic
// is logged and the possibly unordered edges are returned as-is: callers
// often only need the set of boundary vertices.
func (m *Mesh) BoundaryEdges() [][2]int {
	if m.bComputed {
		return m.bEdges
	}
	across := m.AcrossEdge()

	var bedges [][2]int
	for i := range m.faces {
		for j := 0; j < 3; j++ {
			if across[i][j] == -1 {
				bedges = append(bedges, [2]int{m.faces[i][(j+1)%3], m.faces[i][(j+2)%3]})
			}
		}
	}

	// Chain the edges: swap the successor of edge b into slot b+1. An edge
	// whose end has no successor is tolerated when the chain has already
	// closed back onto edge 0 (single closed loop); anything else means
	// multiple boundary components or inconsistent winding.
	for b := 0; b+1 < len(bedges); b++ {
		found := false
		j := b + 1
		for ; j < len(bedges); j++ {
			if bedges[j][0] == bedges[b][1] {
				found = true
				break
			}
		}
		if found {
			bedges[b+1], bedges[j] = bedges[j], bedges[b+1]
			continue
		}
		if bedges[b][1] == bedges[0][0] {
			continue
		}
		m.log.Warn("could not chain boundary edges into a single loop; returning possibly unoriented edges (multiple boundary components?)")
		break
	}

	m.bEdges = bedges
	m.bComputed = true
	return bedges
}
