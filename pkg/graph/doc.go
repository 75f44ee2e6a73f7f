// Package graph provides the JSON exchange format for puzzle instances.
//
// A puzzle file records a generated graph together with the positions of its
// vertices so that an instance can be checked or replayed later:
//
//	{
//	  "id": "5c1e0c5e-...",
//	  "vertices": 3,
//	  "edges": [[0, 1], [0, 2], [1, 2]],
//	  "positions": [{"x": 0, "y": 0}, {"x": 4, "y": 0}, {"x": 0, "y": 4}]
//	}
//
// Edges are written in canonical order with the smaller endpoint first.
// Readers accept either endpoint order and canonicalise on load.
//
// Common operations:
//
//	p, _ := graph.ReadPuzzleFile("puzzle.json")  // File → Puzzle
//	graph.WritePuzzleFile(p, "out.json")         // Puzzle → File
//	data, _ := graph.MarshalPuzzle(p)            // Puzzle → []byte
//
// The format describes an instance only. Play progress is not saved.
package graph
