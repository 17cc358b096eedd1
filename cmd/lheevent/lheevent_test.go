package lheeventcmder_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	lheeventcmder "github.com/sbinet-staging/lhetools/cmd/lheevent"
)

var fixture = filepath.Join("..", "..", "pkg", "lhe", "testdata", "two_events.lhe")

var _ = Describe("lheevent", func() {
	var stdout, stderr bytes.Buffer

	execute := func(args ...string) error {
		cmd := lheeventcmder.NewLHEEventCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		if args == nil {
			args = []string{}
		}
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	BeforeEach(func() {
		stdout.Reset()
		stderr.Reset()
		GinkgoT().Setenv("LHETOOLS_CONFIG_DIR", GinkgoT().TempDir())
		GinkgoT().Setenv("LHETOOLS_EVENT_FORMAT", "")
		GinkgoT().Setenv("LHETOOLS_EVENT_WHERE", "")
	})

	It("prints the requested event", func() {
		Expect(execute(fixture, "2")).To(Succeed())
		Expect(stdout.String()).To(HavePrefix("Details of Event 2 (Line 50):\n\nNumber of particles: 4\n\nParticles:\n  PID: 1, Px: 0.0, Py: 0.0, Pz: 45.6, E: 45.6, Status: -1\n"))
	})

	It("prints the not found message", func() {
		Expect(execute(fixture, "3")).To(Succeed())
		Expect(stdout.String()).To(Equal("Event 3 not found. Total events may be fewer than 3.\n"))
	})

	It("reports a missing file without failing", func() {
		missing := filepath.Join(GinkgoT().TempDir(), "missing.lhe")
		Expect(execute(missing, "1")).To(Succeed())
		Expect(stdout.String()).To(HavePrefix("An error occurred: open " + missing))
	})

	It("reports an invalid selection without failing", func() {
		Expect(execute(fixture, "1", "--where", "charge > 0")).To(Succeed())
		Expect(stdout.String()).To(HavePrefix("An error occurred: failed to compile selection"))
	})

	It("filters particles", func() {
		Expect(execute(fixture, "2", "-w", "abs(pid) == 11")).To(Succeed())
		Expect(strings.Count(stdout.String(), "  PID: ")).To(Equal(2))
	})

	It("takes the format from the environment", func() {
		GinkgoT().Setenv("LHETOOLS_EVENT_FORMAT", "json")
		Expect(execute(fixture, "1")).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring(`"line": 10`))
	})

	It("lets the flag override the config file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "lhetools.toml")
		Expect(os.WriteFile(path, []byte("[event]\nformat = \"json\"\n"), 0o600)).To(Succeed())

		Expect(execute(fixture, "1", "--config", path, "--format", "yaml")).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring("line: 10\n"))
	})

	It("reads a root tag without a version", func() {
		noVersion := filepath.Join("..", "..", "pkg", "lhe", "testdata", "no_version.lhe")
		Expect(execute(noVersion, "1")).To(Succeed())
		Expect(stdout.String()).To(HavePrefix("Details of Event 1 (Line 6):\n\nNumber of particles: 2\n"))
	})

	It("reports a malformed event record without failing", func() {
		badPx := filepath.Join("..", "..", "pkg", "lhe", "testdata", "bad_px.lhe")
		Expect(execute(badPx, "2")).To(Succeed())
		Expect(stdout.String()).To(HavePrefix("An error occurred: malformed LHE file: event 2: event record at line 11"))
		Expect(strings.Count(stdout.String(), "\n")).To(Equal(1))
	})

	It("fails on a malformed lhetools.toml in the config dir", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "lhetools.toml"), []byte("[event\nformat = \"json\"\n"), 0o600)).To(Succeed())
		GinkgoT().Setenv("LHETOOLS_CONFIG_DIR", dir)

		Expect(execute(fixture, "1")).To(MatchError(ContainSubstring("reading config")))
		Expect(stdout.String()).NotTo(ContainSubstring("Details of Event"))
	})

	It("rejects an unknown format", func() {
		Expect(execute(fixture, "1", "--format", "xml")).NotTo(Succeed())
	})

	It("rejects a non integer event number", func() {
		Expect(execute(fixture, "two")).To(MatchError(ContainSubstring(`invalid event number "two"`)))
	})

	It("requires two arguments", func() {
		Expect(execute(fixture)).NotTo(Succeed())
	})

	It("logs debug output to stderr only", func() {
		Expect(execute(fixture, "2", "--debug")).To(Succeed())
		Expect(stderr.String()).To(ContainSubstring("event located"))
		Expect(stdout.String()).NotTo(ContainSubstring("event located"))
	})

	It("prints the version", func() {
		Expect(execute("version")).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring("Version: dev"))
	})

	It("prints the effective config", func() {
		Expect(execute("config")).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring(`format = "text"`))
	})
})
