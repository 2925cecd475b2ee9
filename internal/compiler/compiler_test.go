package compiler

import (
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/redpiler/internal/builder"
	"github.com/sarchlab/redpiler/internal/cell"
)

var _ = Describe("Driver", func() {
	var (
		mockCtrl *gomock.Controller
		storage  *MockStorage
		driver   *Driver
		bounds   builder.Bounds
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		storage = NewMockStorage(mockCtrl)
		driver = New(storage)
		bounds = builder.Bounds{
			Min: cell.Pos{X: 0, Y: 0, Z: 0},
			Max: cell.Pos{X: 0, Y: 0, Z: 0},
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("starts inactive", func() {
		Expect(driver.Active()).To(BeFalse())
	})

	It("rejects Tick before Compile", func() {
		Expect(driver.Tick()).To(MatchError(ErrNotActive))
	})

	It("rejects OnUseBlock before Compile", func() {
		Expect(driver.OnUseBlock(cell.Pos{})).To(MatchError(ErrNotActive))
	})

	It("rejects Flush before Compile", func() {
		Expect(driver.Flush(false)).To(MatchError(ErrNotActive))
	})

	It("reports InspectionMiss before Compile", func() {
		_, ok := driver.Inspect(cell.Pos{})
		Expect(ok).To(BeFalse())
	})

	It("compiles an empty region and goes active", func() {
		storage.EXPECT().Get(gomock.Any()).Return(cell.Cell{}, false).AnyTimes()

		err := driver.Compile(Options{Bounds: bounds, Optimize: false}, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(driver.Active()).To(BeTrue())
		Expect(driver.NodeCount()).To(Equal(0))
	})

	It("rejects a second Compile while active", func() {
		storage.EXPECT().Get(gomock.Any()).Return(cell.Cell{}, false).AnyTimes()
		Expect(driver.Compile(Options{Bounds: bounds, Optimize: false}, nil)).To(Succeed())

		err := driver.Compile(Options{Bounds: bounds, Optimize: false}, nil)

		Expect(err).To(MatchError(ErrAlreadyActive))
	})

	It("compiles a single lever and Resets it back to inactive", func() {
		leverPos := cell.Pos{X: 0, Y: 0, Z: 0}
		storage.EXPECT().Get(leverPos).Return(cell.Cell{Kind: cell.Lever, Powered: true}, true).AnyTimes()

		Expect(driver.Compile(Options{Bounds: bounds, Optimize: false}, nil)).To(Succeed())
		Expect(driver.NodeCount()).To(Equal(1))

		storage.EXPECT().Set(leverPos, gomock.Any()).AnyTimes()

		driver.Reset()

		Expect(driver.Active()).To(BeFalse())
	})
})
