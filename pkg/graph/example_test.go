package graph_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fsh/qplanarity/pkg/geom"
	"github.com/fsh/qplanarity/pkg/graph"
	"github.com/fsh/qplanarity/pkg/planar"
)

func ExampleWritePuzzle() {
	g := &planar.Graph{Vertices: 2, Edges: []planar.Edge{planar.NewEdge(1, 0)}}
	p := graph.FromGraph("demo", g, []geom.Point{geom.Pt(0, 0), geom.Pt(1.5, -2)})

	var buf bytes.Buffer
	if err := graph.WritePuzzle(p, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "id": "demo",
	//   "vertices": 2,
	//   "edges": [
	//     [
	//       0,
	//       1
	//     ]
	//   ],
	//   "positions": [
	//     {
	//       "x": 0,
	//       "y": 0
	//     },
	//     {
	//       "x": 1.5,
	//       "y": -2
	//     }
	//   ]
	// }
}

func ExampleReadPuzzle() {
	data := `{"vertices": 3, "edges": [[1, 0], [2, 1], [0, 2]]}`

	p, err := graph.ReadPuzzle(strings.NewReader(data))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	g, _ := p.Graph()
	fmt.Println(g.Edges)
	fmt.Println("positions:", p.HasPositions())
	// Output:
	// [(0,1) (0,2) (1,2)]
	// positions: false
}
