package backend_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/redpiler/internal/backend"
	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/graph"
)

func TestBackend(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Backend Suite")
}

var _ = Describe("Engine", func() {
	It("lights a lamp fed directly by a powered constant", func() {
		g := graph.New()
		src := g.AddNode(graph.Node{Pos: cell.Pos{X: 0}, Type: graph.NodeConstant, State: graph.State{Output: 0}})
		lamp := g.AddNode(graph.Node{Pos: cell.Pos{X: 1}, Type: graph.NodeLamp, IsOutput: true})
		g.AddEdge(src, lamp, graph.LinkDefault, 0)

		e := backend.Build(g)
		idx, ok := e.IndexAt(cell.Pos{X: 1})
		Expect(ok).To(BeTrue())

		n, _ := e.Inspect(idx)
		Expect(n.Powered).To(BeFalse(), "lamp should not yet be lit before any tick propagates the constant")

		srcIdx, _ := e.IndexAt(cell.Pos{X: 0})
		e.SetNode(srcIdx, 15)

		n, _ = e.Inspect(idx)
		Expect(n.Powered).To(BeTrue())
		Expect(n.Output).To(Equal(uint8(15)))
	})

	It("reports InspectionMiss for a position outside the compiled graph", func() {
		e := backend.Build(graph.New())
		_, ok := e.Inspect(0)
		Expect(ok).To(BeFalse())
	})

	It("clamps an out-of-range scheduled delay to the last ring slot", func() {
		g := graph.New()
		g.AddNode(graph.Node{Pos: cell.Pos{X: 0}, Type: graph.NodeLever})
		e := backend.Build(g)

		idx, ok := e.IndexAt(cell.Pos{X: 0})
		Expect(ok).To(BeTrue())

		e.LoadPendingTick(idx, 200, cell.PriorityNormal)

		pending := e.Drain()
		Expect(pending).To(HaveLen(1))
		Expect(pending[0].Delay).To(Equal(uint8(15)))
	})

	It("Flush only writes changed nodes, FlushAll writes every node", func() {
		g := graph.New()
		g.AddNode(graph.Node{Pos: cell.Pos{X: 0}, Type: graph.NodeLever, State: graph.State{Powered: false}})
		g.AddNode(graph.Node{Pos: cell.Pos{X: 1}, Type: graph.NodeLever, State: graph.State{Powered: false}})
		e := backend.Build(g)

		idx0, _ := e.IndexAt(cell.Pos{X: 0})
		e.SetSource(idx0, 15)

		written := map[cell.Pos]bool{}
		storage := &fakeStorage{onSet: func(pos cell.Pos, c cell.Cell) { written[pos] = true }}

		Expect(e.Flush(storage, false)).To(Succeed())
		Expect(written).To(HaveLen(1))
		Expect(written[cell.Pos{X: 0}]).To(BeTrue())
		Expect(written[cell.Pos{X: 1}]).To(BeFalse())

		written = map[cell.Pos]bool{}
		e.FlushAll(storage)
		Expect(written).To(HaveLen(2))
	})
})

type fakeStorage struct {
	onSet func(cell.Pos, cell.Cell)
}

func (f *fakeStorage) Get(cell.Pos) (cell.Cell, bool)        { return cell.Cell{}, false }
func (f *fakeStorage) Set(pos cell.Pos, c cell.Cell)         { f.onSet(pos, c) }
func (f *fakeStorage) GetBlockEntity(cell.Pos) (cell.BlockEntity, bool) { return nil, false }
func (f *fakeStorage) SetBlockEntity(cell.Pos, cell.BlockEntity)       {}
func (f *fakeStorage) DeleteBlockEntity(cell.Pos)                      {}
func (f *fakeStorage) ScheduleTick(cell.Pos, uint8, cell.TickPriority) {}
func (f *fakeStorage) PendingTickAt(cell.Pos) (cell.PendingTick, bool) { return cell.PendingTick{}, false }
func (f *fakeStorage) CancelTick(cell.Pos)                             {}

var _ cell.Storage = (*fakeStorage)(nil)
