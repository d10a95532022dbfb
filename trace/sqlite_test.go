package trace

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SQLiteWriter", func() {
	var w *SQLiteWriter

	BeforeEach(func() {
		w = NewSQLiteWriter(filepath.Join(GinkgoT().TempDir(), "trace.sqlite3"))
		Expect(w.Init()).To(Succeed())
	})

	AfterEach(func() {
		Expect(w.Close()).To(Succeed())
	})

	It("should store samples under the run ID", func() {
		w.Record(Sample{Cycle: 3, Time: 3e-9, Name: "a", Width: 1, Value: 1})
		w.Record(Sample{Cycle: 4, Name: "b", Width: 64, Value: ^uint64(0)})
		Expect(w.Flush()).To(Succeed())

		var n int
		err := w.QueryRow(
			`SELECT COUNT(*) FROM signal_change WHERE run_id = ?`,
			w.RunID()).Scan(&n)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))

		var v int64
		err = w.QueryRow(
			`SELECT value FROM signal_change WHERE name = 'b'`).Scan(&v)
		Expect(err).NotTo(HaveOccurred())
		Expect(uint64(v)).To(Equal(^uint64(0)))
	})

	It("should do nothing when flushing an empty buffer", func() {
		Expect(w.Flush()).To(Succeed())
	})
})
