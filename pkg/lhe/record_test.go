package lhe_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sbinet-staging/lhetools/pkg/lhe"
)

// captureStdout runs fn with os.Stdout redirected and returns what was
// written to it.
func captureStdout(fn func()) string {
	rd, wr, err := os.Pipe()
	Expect(err).NotTo(HaveOccurred())

	stdout := os.Stdout
	os.Stdout = wr
	defer func() { os.Stdout = stdout }()

	done := make(chan string)
	go func() {
		b, _ := io.ReadAll(rd)
		done <- string(b)
	}()

	fn()
	Expect(wr.Close()).To(Succeed())
	return <-done
}

const (
	initBlock = `<init>
  2212  2212  0.70000000000E+04  0.70000000000E+04 0 0 10042 10042 2 1
  0.50871390000E+03  0.12000000000E+01  0.50871390000E+03 1
</init>
`
	header   = " 1   0  0.5087139E+03  0.9118800E+02  0.7546771E-02  0.1180000E+00\n"
	electron = "       11  1    0    0    0    0 +3.0e+01 +4.0e+01 +0.0e+00 5.0e+01 0.0e+00 0. 9.\n"
)

func readAll(src string) (int, error) {
	r, err := lhe.NewReader(strings.NewReader(src))
	if err != nil {
		return 0, err
	}
	for r.Next() {
	}
	return r.Index(), r.Err()
}

var _ = Describe("Record checks", func() {
	It("reads a root tag without a version", func() {
		evt, found, err := lhe.ReadEvent(context.Background(), filepath.Join("testdata", "no_version.lhe"), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(evt.Particles).To(HaveLen(2))
		Expect(evt.Particles[1].PID).To(Equal(int64(-11)))
	})

	It("reads a bare root tag with trailing spaces", func() {
		n, err := readAll("<LesHouchesEvents  >\n" + initBlock + "<event>\n" + header + electron + "</event>\n</LesHouchesEvents>\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
	})

	It("stops at a record with a non-numeric momentum without writing to stdout", func() {
		path := filepath.Join("testdata", "bad_px.lhe")

		var (
			seen []int
			err  error
		)
		out := captureStdout(func() {
			r, oerr := lhe.Open(path)
			Expect(oerr).NotTo(HaveOccurred())
			defer r.Close()
			for r.Next() {
				seen = append(seen, len(r.Event().Particles))
			}
			err = r.Err()
		})

		Expect(out).To(BeEmpty())
		Expect(seen).To(Equal([]int{2}))
		Expect(errors.Is(err, lhe.ErrMalformed)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("event 2"))
		Expect(err.Error()).To(ContainSubstring("line 11"))
	})

	It("still finds the events before a malformed record", func() {
		evt, found, err := lhe.ReadEvent(context.Background(), filepath.Join("testdata", "bad_px.lhe"), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(evt.Particles[0].PID).To(Equal(int64(11)))
	})

	DescribeTable("rejects records the decoder cannot scan",
		func(record string) {
			var err error
			out := captureStdout(func() {
				_, err = readAll("<LesHouchesEvents version=\"1.0\">\n" + initBlock + record + "</LesHouchesEvents>\n")
			})
			Expect(out).To(BeEmpty())
			Expect(errors.Is(err, lhe.ErrMalformed)).To(BeTrue())
		},
		Entry("bad header weight", "<event>\n 1 0 abc 0.9E+02 0.75E-02 0.11\n"+electron+"</event>\n"),
		Entry("short header", "<event>\n 1 0 0.5E+03 0.9E+02 0.75E-02\n"+electron+"</event>\n"),
		Entry("header on the tag line", "<event> 1 0 0.5E+03 0.9E+02 0.75E-02 0.11\n"+electron+"</event>\n"),
		Entry("missing particle line", "<event>\n 2 0 0.5E+03 0.9E+02 0.75E-02 0.11\n"+electron+"</event>\n"),
		Entry("blank line before particles", "<event>\n"+header+"\n"+electron+"</event>\n"),
		Entry("extra particle field", "<event>\n"+header+strings.TrimSuffix(electron, "\n")+" 1.\n</event>\n"),
		Entry("status out of range", "<event>\n"+header+"       11  99999999999    0    0    0    0 +3.0e+01 +4.0e+01 +0.0e+00 5.0e+01 0.0e+00 0. 9.\n</event>\n"),
	)

	It("ignores event tags inside comments", func() {
		src := "<LesHouchesEvents version=\"1.0\">\n<!--\n <event> not a record\n-->\n" + initBlock +
			"<event>\n" + header + electron + "</event>\n</LesHouchesEvents>\n"
		n, err := readAll(src)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
	})

	It("reads an opening tag split over two lines", func() {
		n, err := lhe.CountEvents(context.Background(), filepath.Join("testdata", "split_tag.lhe"))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
	})

	It("turns a decoder panic into an error", func() {
		err := lhe.Guard(func() error {
			var attrs []string
			_ = attrs[0]
			return nil
		})
		Expect(err).To(MatchError(ContainSubstring("decoder panic")))
	})

	It("passes decoder errors through the guard", func() {
		err := lhe.Guard(func() error { return io.ErrUnexpectedEOF })
		Expect(err).To(MatchError(io.ErrUnexpectedEOF))
	})
})
