package lhe_test

import (
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sbinet-staging/lhetools/pkg/lhe"
)

var _ = Describe("IsEventStart", func() {
	DescribeTable("detects opening event tags",
		func(line string, want bool) {
			Expect(lhe.IsEventStart(line)).To(Equal(want))
		},
		Entry("bare tag", "<event>", true),
		Entry("indented tag", "   <event>", true),
		Entry("tag with attributes", `<event id="3" npLO="-1">`, true),
		Entry("closing tag", "</event>", false),
		Entry("event group", "<eventgroup>", false),
		Entry("group then event", "<eventgroup><event>", true),
		Entry("dangling prefix", "<event", false),
		Entry("plain text", "# no tags here", false),
	)
})

var _ = Describe("LocateEventLine", func() {
	const raw = "<LesHouchesEvents>\n<event>\n1\n</event>\n<event id=\"2\">\n2\n</event>\n<event></event><event>\n</LesHouchesEvents>\n"

	It("returns the line of the n-th opening tag", func() {
		line, err := lhe.LocateEventLine(strings.NewReader(raw), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(line).To(Equal(2))

		line, err = lhe.LocateEventLine(strings.NewReader(raw), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(line).To(Equal(5))
	})

	It("counts a line with several tags once", func() {
		line, err := lhe.LocateEventLine(strings.NewReader(raw), 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(line).To(Equal(8))

		line, err = lhe.LocateEventLine(strings.NewReader(raw), 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(line).To(Equal(lhe.NoLine))
	})

	It("returns NoLine for numbers below 1", func() {
		line, err := lhe.LocateEventLine(strings.NewReader(raw), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(line).To(Equal(lhe.NoLine))
	})

	It("returns NoLine on empty input", func() {
		line, err := lhe.LocateEventLine(strings.NewReader(""), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(line).To(Equal(lhe.NoLine))
	})
})

var _ = Describe("LocateEventLineInFile", func() {
	It("finds the events of the fixture at lines 10 and 50", func() {
		path := filepath.Join("testdata", "two_events.lhe")

		line, err := lhe.LocateEventLineInFile(path, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(line).To(Equal(10))

		line, err = lhe.LocateEventLineInFile(path, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(line).To(Equal(50))

		line, err = lhe.LocateEventLineInFile(path, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(line).To(Equal(lhe.NoLine))
	})

	It("counts tags outside of event records", func() {
		path := filepath.Join("testdata", "tag_in_comment.lhe")

		line, err := lhe.LocateEventLineInFile(path, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(line).To(Equal(3))
	})

	It("fails on a missing file", func() {
		line, err := lhe.LocateEventLineInFile(filepath.Join("testdata", "missing.lhe"), 1)
		Expect(err).To(HaveOccurred())
		Expect(line).To(Equal(lhe.NoLine))
	})
})

var _ = Describe("CountEventTags", func() {
	It("counts lines holding an opening tag", func() {
		n, err := lhe.CountEventTags(strings.NewReader("<event>\n</event>\n<event a=\"1\">\n<event><event>\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(3))
	})
})
